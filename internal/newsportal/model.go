package newsportal

import (
	"encoding/json"
	"time"

	"github.com/daniilsolovey/campus-news/internal/db"
)

type Status string

const (
	StatusDraft     Status = db.StatusDraft
	StatusPublished Status = db.StatusPublished
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

type Tag struct {
	db.Tag
}

type User struct {
	db.User
}

type Article struct {
	db.Article
	Tags []Tag
}

func (a Article) IsPublished() bool {
	return Status(a.Status) == StatusPublished
}

// DisplayDate is the date shown to readers: publishedAt, or createdAt for
// articles that were never published.
func (a Article) DisplayDate() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

// CreateInput is the payload of CreateArticle.
type CreateInput struct {
	Title string `json:"title" validate:"required,min=3,max=255"`
	// Slug is derived from Title when nil or empty.
	Slug     *string         `json:"slug" validate:"omitempty,min=3,max=120,slug"`
	Body     json.RawMessage `json:"body"`
	Excerpt  string          `json:"excerpt"`
	CoverURL *string         `json:"coverUrl" validate:"omitempty,url"`
	// Tags are slugified before sync. Nil leaves the article untagged.
	Tags   []string `json:"tags"`
	Status Status   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	// AuthorID defaults to the bootstrap admin.
	AuthorID *string `json:"authorId" validate:"omitempty,uuid"`
}

// UpdateInput is the payload of UpdateArticle. Nil fields are left unchanged.
type UpdateInput struct {
	Title    *string         `json:"title" validate:"omitempty,min=3,max=255"`
	Slug     *string         `json:"slug" validate:"omitempty,min=3,max=120,slug"`
	Body     json.RawMessage `json:"body"`
	Excerpt  *string         `json:"excerpt"`
	CoverURL *string         `json:"coverUrl" validate:"omitempty,url"`
	Tags     *[]string       `json:"tags"`
	Status   *Status         `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

type PageRequest struct {
	Limit int
	Page  int
}

type Pagination struct {
	Page    int
	Limit   int
	Total   int
	HasMore bool
}

type ArticlePage struct {
	Items      []Article
	Pagination Pagination
}
