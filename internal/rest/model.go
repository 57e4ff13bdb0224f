package rest

import (
	"encoding/json"
	"time"

	"github.com/daniilsolovey/campus-news/internal/newsportal"
)

type Tag struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Article struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Body        json.RawMessage `json:"body" swaggertype:"object"`
	Excerpt     string          `json:"excerpt"`
	CoverURL    *string         `json:"coverUrl"`
	Tags        []string        `json:"tags"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	PublishedAt *time.Time      `json:"publishedAt"`
	DisplayDate time.Time       `json:"displayDate"`
	AuthorID    string          `json:"authorId"`
}

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

type ArticlePage struct {
	Items      []Article  `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type ListRequest struct {
	Limit int `urlstruct:"limit"`
	Page  int `urlstruct:"page"`
}

type LatestRequest struct {
	Limit int `urlstruct:"limit"`
}

type AdminListRequest struct {
	Status string `urlstruct:"status"`
}

type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type TagRequest struct {
	Tag string `json:"tag"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// CreateArticleRequest is the body of POST /api/admin/articles.
type CreateArticleRequest struct {
	Title    string          `json:"title"`
	Slug     *string         `json:"slug"`
	Body     json.RawMessage `json:"body" swaggertype:"object"`
	Excerpt  string          `json:"excerpt"`
	CoverURL *string         `json:"coverUrl"`
	Tags     []string        `json:"tags"`
	Status   string          `json:"status"`
	AuthorID *string         `json:"authorId"`
}

func (r CreateArticleRequest) ToModel() newsportal.CreateInput {
	return newsportal.CreateInput{
		Title:    r.Title,
		Slug:     r.Slug,
		Body:     r.Body,
		Excerpt:  r.Excerpt,
		CoverURL: r.CoverURL,
		Tags:     r.Tags,
		Status:   newsportal.Status(r.Status),
		AuthorID: r.AuthorID,
	}
}

// UpdateArticleRequest is the body of PUT /api/admin/articles/:id. Omitted
// fields keep their value; an empty tags array clears the tags.
type UpdateArticleRequest struct {
	Title    *string         `json:"title"`
	Slug     *string         `json:"slug"`
	Body     json.RawMessage `json:"body" swaggertype:"object"`
	Excerpt  *string         `json:"excerpt"`
	CoverURL *string         `json:"coverUrl"`
	Tags     *[]string       `json:"tags"`
	Status   *string         `json:"status"`
}

func (r UpdateArticleRequest) ToModel() newsportal.UpdateInput {
	in := newsportal.UpdateInput{
		Title:    r.Title,
		Slug:     r.Slug,
		Body:     r.Body,
		Excerpt:  r.Excerpt,
		CoverURL: r.CoverURL,
		Tags:     r.Tags,
	}
	if r.Status != nil {
		status := newsportal.Status(*r.Status)
		in.Status = &status
	}

	return in
}
