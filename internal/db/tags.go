package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pg/pg/v10"
)

// TagName derives the display name of a tag from its slug.
func TagName(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// SyncTags makes the article linked to exactly tagSlugs, in the given order.
// Repeated slugs collapse to their first position. Missing tags are created; existing tags are left untouched, so concurrent
// syncs of the same slug never double-create. Tags that lose their last link
// are kept.
func (r *Repository) SyncTags(ctx context.Context, articleID string, tagSlugs []string) error {
	tagSlugs = uniqueSlugs(tagSlugs)

	return r.inTx(ctx, func(tx *pg.Tx) error {
		if len(tagSlugs) > 0 {
			tags := make([]Tag, len(tagSlugs))
			for i, slug := range tagSlugs {
				tags[i] = Tag{Slug: slug, Name: TagName(slug)}
			}

			_, err := tx.ModelContext(ctx, &tags).
				OnConflict(`("slug") DO NOTHING`).
				Insert()
			if err != nil {
				return fmt.Errorf("failed to upsert tags: %w", err)
			}
		}

		_, err := tx.ModelContext(ctx, (*ArticleTag)(nil)).
			Where(`"t"."articleId" = ?`, articleID).
			Delete()
		if err != nil {
			return fmt.Errorf("failed to clear article tags: %w", err)
		}

		if len(tagSlugs) == 0 {
			return nil
		}

		links := make([]ArticleTag, len(tagSlugs))
		for i, slug := range tagSlugs {
			links[i] = ArticleTag{ArticleID: articleID, TagSlug: slug, Position: i}
		}

		if _, err := tx.ModelContext(ctx, &links).Insert(); err != nil {
			return fmt.Errorf("failed to link article tags: %w", err)
		}

		return nil
	})
}

func uniqueSlugs(slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	res := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		res = append(res, slug)
	}

	return res
}

// Tags retrieves all tags ordered by name.
func (r *Repository) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	err := r.db.ModelContext(ctx, &tags).
		OrderExpr(`"t"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}

	return tags, nil
}

// ArticleTags loads the tag links of the given articles with the tag rows
// attached, ordered by article and position.
func (r *Repository) ArticleTags(ctx context.Context, articleIDs []string) ([]ArticleTag, error) {
	if len(articleIDs) == 0 {
		return []ArticleTag{}, nil
	}

	links := []ArticleTag{}
	err := r.db.ModelContext(ctx, &links).
		Relation(Columns.ArticleTag.Tag).
		Where(`"t"."articleId" IN (?)`, pg.In(articleIDs)).
		OrderExpr(`"t"."articleId" ASC, "t"."position" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query article tags: %w", err)
	}

	return links, nil
}
