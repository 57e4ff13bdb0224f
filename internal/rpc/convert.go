package rpc

import "github.com/daniilsolovey/campus-news/internal/newsportal"

func NewTag(t newsportal.Tag) Tag {
	return Tag{
		Slug: t.Slug,
		Name: t.Name,
	}
}

func NewTags(list []newsportal.Tag) []Tag {
	tags := make([]Tag, len(list))
	for i := range list {
		tags[i] = NewTag(list[i])
	}
	return tags
}

func NewArticle(a newsportal.Article) Article {
	tags := make([]string, len(a.Tags))
	for i := range a.Tags {
		tags[i] = a.Tags[i].Slug
	}

	return Article{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Body:        a.Body,
		Excerpt:     a.Excerpt,
		CoverURL:    a.CoverURL,
		Tags:        tags,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		PublishedAt: a.PublishedAt,
		DisplayDate: a.DisplayDate(),
		AuthorID:    a.AuthorID,
	}
}

func NewArticles(list []newsportal.Article) []Article {
	articles := make([]Article, len(list))
	for i := range list {
		articles[i] = NewArticle(list[i])
	}
	return articles
}

func NewArticlePage(p newsportal.ArticlePage) ArticlePage {
	return ArticlePage{
		Items: NewArticles(p.Items),
		Pagination: Pagination{
			Page:    p.Pagination.Page,
			Limit:   p.Pagination.Limit,
			Total:   p.Pagination.Total,
			HasMore: p.Pagination.HasMore,
		},
	}
}
