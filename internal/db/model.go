// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"encoding/json"
	"time"
)

var Columns = struct {
	Article struct {
		ID, Title, Slug, Body, BodyText, Excerpt, CoverURL, Status, PublishedAt, CreatedAt, UpdatedAt, AuthorID string

		Author string
	}
	ArticleTag struct {
		ArticleID, TagSlug, Position string

		Tag string
	}
	Tag struct {
		Slug, Name string
	}
	User struct {
		ID, Email, Role, CreatedAt string
	}
}{
	Article: struct {
		ID, Title, Slug, Body, BodyText, Excerpt, CoverURL, Status, PublishedAt, CreatedAt, UpdatedAt, AuthorID string

		Author string
	}{
		ID:          "articleId",
		Title:       "title",
		Slug:        "slug",
		Body:        "body",
		BodyText:    "bodyText",
		Excerpt:     "excerpt",
		CoverURL:    "coverUrl",
		Status:      "status",
		PublishedAt: "publishedAt",
		CreatedAt:   "createdAt",
		UpdatedAt:   "updatedAt",
		AuthorID:    "authorId",

		Author: "Author",
	},
	ArticleTag: struct {
		ArticleID, TagSlug, Position string

		Tag string
	}{
		ArticleID: "articleId",
		TagSlug:   "tagSlug",
		Position:  "position",

		Tag: "Tag",
	},
	Tag: struct {
		Slug, Name string
	}{
		Slug: "slug",
		Name: "name",
	},
	User: struct {
		ID, Email, Role, CreatedAt string
	}{
		ID:        "userId",
		Email:     "email",
		Role:      "role",
		CreatedAt: "createdAt",
	},
}

var Tables = struct {
	Article struct {
		Name, Alias string
	}
	ArticleTag struct {
		Name, Alias string
	}
	Tag struct {
		Name, Alias string
	}
	User struct {
		Name, Alias string
	}
}{
	Article: struct {
		Name, Alias string
	}{
		Name:  "articles",
		Alias: "t",
	},
	ArticleTag: struct {
		Name, Alias string
	}{
		Name:  "articleTags",
		Alias: "t",
	},
	Tag: struct {
		Name, Alias string
	}{
		Name:  "tags",
		Alias: "t",
	},
	User: struct {
		Name, Alias string
	}{
		Name:  "users",
		Alias: "t",
	},
}

type Article struct {
	tableName struct{} `pg:"articles,alias:t,discard_unknown_columns"`

	ID          string          `pg:"articleId,pk,type:uuid"`
	Title       string          `pg:"title,use_zero"`
	Slug        string          `pg:"slug,use_zero"`
	Body        json.RawMessage `pg:"body,type:jsonb,use_zero"`
	BodyText    string          `pg:"bodyText,use_zero"`
	Excerpt     string          `pg:"excerpt,use_zero"`
	CoverURL    *string         `pg:"coverUrl"`
	Status      string          `pg:"status,use_zero"`
	PublishedAt *time.Time      `pg:"publishedAt"`
	CreatedAt   time.Time       `pg:"createdAt,use_zero"`
	UpdatedAt   time.Time       `pg:"updatedAt,use_zero"`
	AuthorID    string          `pg:"authorId,type:uuid,use_zero"`

	Author *User `pg:"fk:authorId,rel:has-one"`
}

type ArticleTag struct {
	tableName struct{} `pg:"articleTags,alias:t,discard_unknown_columns"`

	ArticleID string `pg:"articleId,pk,type:uuid"`
	TagSlug   string `pg:"tagSlug,pk"`
	Position  int    `pg:"position,use_zero"`

	Tag *Tag `pg:"fk:tagSlug,rel:has-one"`
}

type Tag struct {
	tableName struct{} `pg:"tags,alias:t,discard_unknown_columns"`

	Slug string `pg:"slug,pk"`
	Name string `pg:"name,use_zero"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID        string    `pg:"userId,pk,type:uuid"`
	Email     string    `pg:"email,use_zero"`
	Role      string    `pg:"role,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`
}
