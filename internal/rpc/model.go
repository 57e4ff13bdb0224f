package rpc

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
	Body        json.RawMessage `json:"body"`
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

type ArticleFilter struct {
	//limit=12 page size, at most 50
	Limit *int `json:"limit,omitempty"`
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
}

func (f ArticleFilter) ToModel() newsportal.PageRequest {
	var req newsportal.PageRequest
	if f.Limit != nil {
		req.Limit = *f.Limit
	}
	if f.Page != nil {
		req.Page = *f.Page
	}
	return req
}

type ArticleInput struct {
	Title    string          `json:"title"`
	Slug     *string         `json:"slug,omitempty"`
	Body     json.RawMessage `json:"body"`
	Excerpt  string          `json:"excerpt"`
	CoverURL *string         `json:"coverUrl,omitempty"`
	Tags     []string        `json:"tags"`
	Status   string          `json:"status"`
	AuthorID *string         `json:"authorId,omitempty"`
}

func (in ArticleInput) ToModel() newsportal.CreateInput {
	return newsportal.CreateInput{
		Title:    in.Title,
		Slug:     in.Slug,
		Body:     in.Body,
		Excerpt:  in.Excerpt,
		CoverURL: in.CoverURL,
		Tags:     in.Tags,
		Status:   newsportal.Status(in.Status),
		AuthorID: in.AuthorID,
	}
}

// ArticlePatch holds the fields to change; omitted fields are kept.
type ArticlePatch struct {
	Title    *string         `json:"title,omitempty"`
	Slug     *string         `json:"slug,omitempty"`
	Body     json.RawMessage `json:"body,omitempty"`
	Excerpt  *string         `json:"excerpt,omitempty"`
	CoverURL *string         `json:"coverUrl,omitempty"`
	Tags     *[]string       `json:"tags,omitempty"`
	Status   *string         `json:"status,omitempty"`
}

func (p ArticlePatch) ToModel() newsportal.UpdateInput {
	in := newsportal.UpdateInput{
		Title:    p.Title,
		Slug:     p.Slug,
		Body:     p.Body,
		Excerpt:  p.Excerpt,
		CoverURL: p.CoverURL,
		Tags:     p.Tags,
	}
	if p.Status != nil {
		status := newsportal.Status(*p.Status)
		in.Status = &status
	}
	return in
}
