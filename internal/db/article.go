package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const articlesOrder = `"t"."publishedAt" DESC NULLS LAST, "t"."createdAt" DESC`

// ArticleSearch holds optional article filters. Nil fields are ignored.
type ArticleSearch struct {
	Status *string
	// Pattern is a case-insensitive regular expression matched against
	// title, excerpt and body text.
	Pattern *string
	TagSlug *string
}

func (s *ArticleSearch) apply(query *orm.Query) *orm.Query {
	if s == nil {
		return query
	}

	if s.Status != nil {
		query = query.Where(`"t"."status" = ?`, *s.Status)
	}

	if s.Pattern != nil {
		pattern := *s.Pattern
		query = query.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			q = q.WhereOr(`"t"."title" ~* ?`, pattern).
				WhereOr(`"t"."excerpt" ~* ?`, pattern).
				WhereOr(`"t"."bodyText" ~* ?`, pattern)
			return q, nil
		})
	}

	if s.TagSlug != nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM "articleTags" AS "at"
			WHERE "at"."articleId" = "t"."articleId" AND "at"."tagSlug" = ?
		)`, *s.TagSlug)
	}

	return query
}

// Pager limits a list query. Zero Limit means no limit.
type Pager struct {
	Limit  int
	Offset int
}

// Articles returns articles matching search sorted by publishedAt DESC
// (drafts last), then createdAt DESC.
func (r *Repository) Articles(ctx context.Context, search *ArticleSearch, pager Pager) ([]Article, error) {
	if pager.Limit < 0 || pager.Offset < 0 {
		return nil, fmt.Errorf(
			"limit and offset must not be negative: limit=%d, offset=%d",
			pager.Limit, pager.Offset,
		)
	}

	var articles []Article
	query := search.apply(r.db.ModelContext(ctx, &articles)).
		OrderExpr(articlesOrder)

	if pager.Limit > 0 {
		query = query.Limit(pager.Limit)
	}
	if pager.Offset > 0 {
		query = query.Offset(pager.Offset)
	}

	if err := query.Select(); err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	return articles, nil
}

func (r *Repository) ArticlesCount(ctx context.Context, search *ArticleSearch) (int, error) {
	count, err := search.apply(r.db.ModelContext(ctx, (*Article)(nil))).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get articles count: %w", err)
	}

	return count, nil
}

// ArticleByID returns nil, nil when no article has the id.
func (r *Repository) ArticleByID(ctx context.Context, id string) (*Article, error) {
	return r.oneArticle(ctx, `"t"."articleId" = ?`, id)
}

// ArticleBySlug returns nil, nil when no article has the slug.
func (r *Repository) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	return r.oneArticle(ctx, `"t"."slug" = ?`, slug)
}

func (r *Repository) oneArticle(ctx context.Context, where string, param interface{}) (*Article, error) {
	article := &Article{}
	err := r.db.ModelContext(ctx, article).
		Where(where, param).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

func (r *Repository) InsertArticle(ctx context.Context, article *Article) error {
	if _, err := r.db.ModelContext(ctx, article).Insert(); err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

// UpdateArticle writes every column except createdAt. Returns ErrNotFound
// when the article no longer exists.
func (r *Repository) UpdateArticle(ctx context.Context, article *Article) error {
	res, err := r.db.ModelContext(ctx, article).
		ExcludeColumn(Columns.Article.CreatedAt).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteArticle removes the article tag links and then the article itself in
// one transaction. Returns ErrNotFound when the article does not exist.
func (r *Repository) DeleteArticle(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *pg.Tx) error {
		_, err := tx.ModelContext(ctx, (*ArticleTag)(nil)).
			Where(`"t"."articleId" = ?`, id).
			Delete()
		if err != nil {
			return fmt.Errorf("failed to delete article tags: %w", err)
		}

		res, err := tx.ModelContext(ctx, (*Article)(nil)).
			Where(`"t"."articleId" = ?`, id).
			Delete()
		if err != nil {
			return fmt.Errorf("failed to delete article: %w", err)
		}
		if res.RowsAffected() == 0 {
			return ErrNotFound
		}

		return nil
	})
}
