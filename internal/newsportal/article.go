package newsportal

import (
	"context"
	"errors"
	"strings"

	"github.com/daniilsolovey/campus-news/internal/db"
	"github.com/google/uuid"
)

func notFound(key string) error {
	return &NotFoundError{Entity: "article", Key: key}
}

// optional trims s and turns a blank value into nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func titleSlug(title string) (string, error) {
	slug := truncateSlug(Slugify(title))
	if slug == "" {
		return "", &ValidationError{Field: "title", Message: "must contain at least one letter or digit"}
	}
	return slug, nil
}

// CreateArticle validates in and stores a new article. Tags are synced after
// the row is written; when that fails the article stays and a TagSyncError is
// returned.
func (m *Manager) CreateArticle(ctx context.Context, in CreateInput) (*Article, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = optional(in.Slug)
	in.CoverURL = optional(in.CoverURL)
	in.AuthorID = optional(in.AuthorID)
	if err := m.validateStruct(in); err != nil {
		return nil, err
	}

	bodyText, err := BodyText(in.Body)
	if err != nil {
		return nil, err
	}

	slug := ""
	if in.Slug != nil {
		slug = *in.Slug
	} else if slug, err = titleSlug(in.Title); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusDraft
	}

	var authorID string
	switch {
	case in.AuthorID != nil:
		authorID = *in.AuthorID
	case m.author != nil:
		authorID = m.author.ID
	default:
		return nil, &ValidationError{Field: "authorId", Message: "is required"}
	}

	now := m.now().UTC()
	article := &db.Article{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Slug:      slug,
		Body:      in.Body,
		BodyText:  bodyText,
		Excerpt:   strings.TrimSpace(in.Excerpt),
		CoverURL:  in.CoverURL,
		Status:    string(status),
		CreatedAt: now,
		UpdatedAt: now,
		AuthorID:  authorID,
	}
	if status == StatusPublished {
		article.PublishedAt = &now
	}

	if err := m.repo.InsertArticle(ctx, article); err != nil {
		return nil, storeError("insert article", err, article.ID, slug)
	}
	m.log.InfoContext(ctx, "article created", "id", article.ID, "slug", slug, "status", article.Status)

	if in.Tags != nil {
		if err := m.syncTags(ctx, article.ID, in.Tags); err != nil {
			return nil, err
		}
	}

	return m.ArticleByID(ctx, article.ID)
}

// UpdateArticle applies the non-nil fields of in. A new title without an
// explicit slug renames the slug too.
func (m *Manager) UpdateArticle(ctx context.Context, id string, in UpdateInput) (*Article, error) {
	current, err := m.articleRow(ctx, id)
	if err != nil {
		return nil, err
	}
	id = current.ID

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	in.Slug = optional(in.Slug)

	clearCover := in.CoverURL != nil && strings.TrimSpace(*in.CoverURL) == ""
	in.CoverURL = optional(in.CoverURL)

	if err := m.validateStruct(in); err != nil {
		return nil, err
	}

	article := *current
	if in.Title != nil {
		article.Title = *in.Title
		if in.Slug == nil {
			if article.Slug, err = titleSlug(article.Title); err != nil {
				return nil, err
			}
		}
	}
	if in.Slug != nil {
		article.Slug = *in.Slug
	}

	if in.Body != nil {
		if article.BodyText, err = BodyText(in.Body); err != nil {
			return nil, err
		}
		article.Body = in.Body
	}

	if in.Excerpt != nil {
		article.Excerpt = strings.TrimSpace(*in.Excerpt)
	}

	switch {
	case clearCover:
		article.CoverURL = nil
	case in.CoverURL != nil:
		article.CoverURL = in.CoverURL
	}

	now := m.now().UTC()
	if in.Status != nil && string(*in.Status) != current.Status {
		article.Status = string(*in.Status)
		if *in.Status == StatusPublished {
			article.PublishedAt = &now
		} else {
			article.PublishedAt = nil
		}
	}

	article.UpdatedAt = now
	if article.UpdatedAt.Before(article.CreatedAt) {
		article.UpdatedAt = article.CreatedAt
	}

	if err := m.repo.UpdateArticle(ctx, &article); err != nil {
		return nil, storeError("update article", err, id, article.Slug)
	}
	m.log.InfoContext(ctx, "article updated", "id", id, "slug", article.Slug, "status", article.Status)

	if in.Tags != nil {
		if err := m.syncTags(ctx, id, *in.Tags); err != nil {
			return nil, err
		}
	}

	return m.ArticleByID(ctx, id)
}

// DeleteArticle removes the article and its tag links.
func (m *Manager) DeleteArticle(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return notFound(id)
	}

	if err := m.repo.DeleteArticle(ctx, parsed.String()); err != nil {
		return storeError("delete article", err, id, "")
	}
	m.log.InfoContext(ctx, "article deleted", "id", id)

	return nil
}

func (m *Manager) syncTags(ctx context.Context, articleID string, tags []string) error {
	if err := m.repo.SyncTags(ctx, articleID, NormalizeTags(tags)); err != nil {
		m.log.WarnContext(ctx, "tag sync failed", "id", articleID, "error", err)
		return &TagSyncError{ArticleID: articleID, Err: err}
	}

	return nil
}

func (m *Manager) articleRow(ctx context.Context, id string) (*db.Article, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound(id)
	}

	row, err := m.repo.ArticleByID(ctx, parsed.String())
	if err != nil {
		return nil, &StorageError{Op: "get article", Err: err}
	} else if row == nil {
		return nil, notFound(id)
	}

	return row, nil
}

func (m *Manager) attachTags(ctx context.Context, row *db.Article) (*Article, error) {
	list, err := m.withTags(ctx, []db.Article{*row})
	if err != nil {
		return nil, err
	}

	return &list[0], nil
}

// ArticleByID returns the article in any status.
func (m *Manager) ArticleByID(ctx context.Context, id string) (*Article, error) {
	row, err := m.articleRow(ctx, id)
	if err != nil {
		return nil, err
	}

	return m.attachTags(ctx, row)
}

// ArticleBySlug returns the article in any status.
func (m *Manager) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	row, err := m.repo.ArticleBySlug(ctx, slug)
	if err != nil {
		return nil, &StorageError{Op: "get article by slug", Err: err}
	} else if row == nil {
		return nil, notFound(slug)
	}

	return m.attachTags(ctx, row)
}

// PublishedArticle resolves idOrSlug as an id when it is a UUID and as a slug
// otherwise. Drafts are reported as not found.
func (m *Manager) PublishedArticle(ctx context.Context, idOrSlug string) (*Article, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)

	var (
		article *Article
		err     error
	)
	if _, perr := uuid.Parse(idOrSlug); perr == nil {
		article, err = m.ArticleByID(ctx, idOrSlug)
	} else {
		article, err = m.ArticleBySlug(ctx, idOrSlug)
	}

	var nf *NotFoundError
	switch {
	case errors.As(err, &nf):
		return nil, notFound(idOrSlug)
	case err != nil:
		return nil, err
	case !article.IsPublished():
		return nil, notFound(idOrSlug)
	}

	return article, nil
}
