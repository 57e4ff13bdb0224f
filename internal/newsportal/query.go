package newsportal

import (
	"context"
	"regexp"
	"strings"

	"github.com/daniilsolovey/campus-news/internal/db"
)

const (
	defaultPageLimit   = 12
	defaultLatestLimit = 6
	maxLimit           = 50
)

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxLimit)
}

func publishedOnly() *db.ArticleSearch {
	status := db.StatusPublished
	return &db.ArticleSearch{Status: &status}
}

func (m *Manager) articles(ctx context.Context, search *db.ArticleSearch, pager db.Pager) ([]Article, error) {
	list, err := m.repo.Articles(ctx, search, pager)
	if err != nil {
		return nil, &StorageError{Op: "list articles", Err: err}
	}

	return m.withTags(ctx, list)
}

// ListPublished returns one page of published articles, newest first.
func (m *Manager) ListPublished(ctx context.Context, req PageRequest) (*ArticlePage, error) {
	limit := clampLimit(req.Limit, defaultPageLimit)
	page := max(req.Page, 1)
	skip := (page - 1) * limit

	search := publishedOnly()
	items, err := m.articles(ctx, search, db.Pager{Limit: limit, Offset: skip})
	if err != nil {
		return nil, err
	}

	total, err := m.repo.ArticlesCount(ctx, search)
	if err != nil {
		return nil, &StorageError{Op: "count articles", Err: err}
	}

	return &ArticlePage{
		Items: items,
		Pagination: Pagination{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: skip+len(items) < total,
		},
	}, nil
}

func (m *Manager) Latest(ctx context.Context, limit int) ([]Article, error) {
	return m.articles(ctx, publishedOnly(), db.Pager{Limit: clampLimit(limit, defaultLatestLimit)})
}

// ListAll returns articles of every status, or of status when it is set.
func (m *Manager) ListAll(ctx context.Context, status *Status) ([]Article, error) {
	search := &db.ArticleSearch{}
	if status != nil {
		if !status.Valid() {
			return nil, &ValidationError{Field: "status", Message: "must be one of DRAFT, PUBLISHED"}
		}
		s := string(*status)
		search.Status = &s
	}

	return m.articles(ctx, search, db.Pager{})
}

// Search matches term literally and case-insensitively against title,
// excerpt and body text of published articles. A blank term matches nothing.
func (m *Manager) Search(ctx context.Context, term string) ([]Article, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []Article{}, nil
	}

	search := publishedOnly()
	pattern := regexp.QuoteMeta(term)
	search.Pattern = &pattern

	return m.articles(ctx, search, db.Pager{})
}

// ListByTag returns published articles linked to the slug of tag.
func (m *Manager) ListByTag(ctx context.Context, tag string) ([]Article, error) {
	slug := truncateSlug(Slugify(tag))
	if slug == "" {
		return []Article{}, nil
	}

	search := publishedOnly()
	search.TagSlug = &slug

	return m.articles(ctx, search, db.Pager{})
}

func (m *Manager) Tags(ctx context.Context) ([]Tag, error) {
	list, err := m.repo.Tags(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list tags", Err: err}
	}

	return NewTags(list), nil
}
