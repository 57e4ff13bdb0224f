package rpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/daniilsolovey/campus-news/internal/newsportal"
	"github.com/vmkteam/zenrpc/v2"
)

//go:generate zenrpc

// ArticleService provides RPC methods for reading and managing articles.
type ArticleService struct {
	zenrpc.Service
	manager *newsportal.Manager
	log     *slog.Logger
}

func NewArticleService(manager *newsportal.Manager, logger *slog.Logger) *ArticleService {
	return &ArticleService{manager: manager, log: logger}
}

// newError maps domain errors to zenrpc errors with HTTP-like codes.
func (s ArticleService) newError(ctx context.Context, err error) error {
	var (
		validationErr *newsportal.ValidationError
		notFoundErr   *newsportal.NotFoundError
		conflictErr   *newsportal.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		return zenrpc.NewError(400, err)
	case errors.As(err, &notFoundErr):
		return zenrpc.NewError(404, err)
	case errors.As(err, &conflictErr):
		return zenrpc.NewError(409, err)
	}

	s.log.ErrorContext(ctx, "rpc call failed", "error", err)
	return zenrpc.NewStringError(500, "internal error")
}

// List returns one page of published articles sorted by publishedAt DESC.
//
//zenrpc:filter page and size
//zenrpc:return page of articles with pagination info
//zenrpc:500 internal server error
func (s ArticleService) List(ctx context.Context, filter ArticleFilter) (*ArticlePage, error) {
	page, err := s.manager.ListPublished(ctx, filter.ToModel())
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	result := NewArticlePage(*page)
	return &result, nil
}

// Latest returns the newest published articles.
//
//zenrpc:limit=6 number of articles, at most 50
//zenrpc:return list of articles
//zenrpc:500 internal server error
func (s ArticleService) Latest(ctx context.Context, limit *int) ([]Article, error) {
	var n int
	if limit != nil {
		n = *limit
	}

	list, err := s.manager.Latest(ctx, n)
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	return NewArticles(list), nil
}

// Get returns a published article by id or slug.
//
//zenrpc:id article UUID or slug
//zenrpc:return article
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s ArticleService) Get(ctx context.Context, id string) (*Article, error) {
	article, err := s.manager.PublishedArticle(ctx, id)
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	result := NewArticle(*article)
	return &result, nil
}

// Search matches the term against title, excerpt and body of published articles.
//
//zenrpc:searchTerm literal, case-insensitive
//zenrpc:return list of articles
//zenrpc:500 internal server error
func (s ArticleService) Search(ctx context.Context, searchTerm string) ([]Article, error) {
	list, err := s.manager.Search(ctx, searchTerm)
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	return NewArticles(list), nil
}

// ByTag returns published articles with the tag.
//
//zenrpc:tag tag name or slug
//zenrpc:return list of articles
//zenrpc:500 internal server error
func (s ArticleService) ByTag(ctx context.Context, tag string) ([]Article, error) {
	list, err := s.manager.ListByTag(ctx, tag)
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	return NewArticles(list), nil
}

// Tags retrieves all tags ordered by name.
//
//zenrpc:return list of tags
//zenrpc:500 internal server error
func (s ArticleService) Tags(ctx context.Context) ([]Tag, error) {
	tags, err := s.manager.Tags(ctx)
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	return NewTags(tags), nil
}

// AdminList returns articles of every status.
//
//zenrpc:status optional DRAFT or PUBLISHED filter
//zenrpc:return list of articles
//zenrpc:400 invalid status
//zenrpc:500 internal server error
func (s ArticleService) AdminList(ctx context.Context, status *string) ([]Article, error) {
	var filter *newsportal.Status
	if status != nil && *status != "" {
		st := newsportal.Status(*status)
		filter = &st
	}

	list, err := s.manager.ListAll(ctx, filter)
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	return NewArticles(list), nil
}

// Create stores a new article.
//
//zenrpc:article article fields
//zenrpc:return created article
//zenrpc:400 validation failed
//zenrpc:409 slug already exists
//zenrpc:500 internal server error
func (s ArticleService) Create(ctx context.Context, article ArticleInput) (*Article, error) {
	created, err := s.manager.CreateArticle(ctx, article.ToModel())
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	result := NewArticle(*created)
	return &result, nil
}

// Update changes the supplied fields of an article.
//
//zenrpc:id article UUID
//zenrpc:article changed fields
//zenrpc:return updated article
//zenrpc:400 validation failed
//zenrpc:404 article not found
//zenrpc:409 slug already exists
//zenrpc:500 internal server error
func (s ArticleService) Update(ctx context.Context, id string, article ArticlePatch) (*Article, error) {
	updated, err := s.manager.UpdateArticle(ctx, id, article.ToModel())
	if err != nil {
		return nil, s.newError(ctx, err)
	}

	result := NewArticle(*updated)
	return &result, nil
}

// Delete removes an article and its tag links.
//
//zenrpc:id article UUID
//zenrpc:return true on success
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s ArticleService) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.manager.DeleteArticle(ctx, id); err != nil {
		return false, s.newError(ctx, err)
	}

	return true, nil
}
