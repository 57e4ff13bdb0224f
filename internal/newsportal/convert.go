package newsportal

import "github.com/daniilsolovey/campus-news/internal/db"

func NewTag(t *db.Tag) Tag {
	return Tag{Tag: *t}
}

func NewTags(list []db.Tag) []Tag {
	tags := make([]Tag, len(list))
	for i := range list {
		tags[i] = NewTag(&list[i])
	}
	return tags
}

func NewArticle(a *db.Article, links []db.ArticleTag) Article {
	article := Article{
		Article: *a,
		Tags:    make([]Tag, 0, len(links)),
	}

	for i := range links {
		if links[i].Tag != nil {
			article.Tags = append(article.Tags, NewTag(links[i].Tag))
		} else {
			article.Tags = append(article.Tags, Tag{Tag: db.Tag{Slug: links[i].TagSlug, Name: db.TagName(links[i].TagSlug)}})
		}
	}

	return article
}

// NewArticleList pairs each article with its tag links.
func NewArticleList(list []db.Article, links []db.ArticleTag) []Article {
	linksByArticle := make(map[string][]db.ArticleTag, len(list))
	for _, link := range links {
		linksByArticle[link.ArticleID] = append(linksByArticle[link.ArticleID], link)
	}

	articles := make([]Article, len(list))
	for i := range list {
		articles[i] = NewArticle(&list[i], linksByArticle[list[i].ID])
	}

	return articles
}
