package rest

import "github.com/daniilsolovey/campus-news/internal/newsportal"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewTag(t newsportal.Tag) Tag {
	return Tag{
		Slug: t.Slug,
		Name: t.Name,
	}
}

func NewTags(list []newsportal.Tag) []Tag {
	return Map(list, NewTag)
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
	return Map(list, NewArticle)
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
