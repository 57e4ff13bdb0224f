package newsportal

import (
	"context"
	"errors"
	"regexp"
	"sort"

	"github.com/daniilsolovey/campus-news/internal/db"
)

// uniqueViolation mimics the error go-pg returns for SQLSTATE 23505.
type uniqueViolation struct{}

func (uniqueViolation) Error() string {
	return "ERROR #23505 duplicate key value violates unique constraint"
}
func (uniqueViolation) Field(f byte) string      { return map[byte]string{'C': "23505"}[f] }
func (uniqueViolation) IntegrityViolation() bool { return true }

// memRepo is an in-memory Repository. calls counts every method call.
type memRepo struct {
	articles map[string]db.Article
	tags     map[string]db.Tag
	links    map[string][]string
	users    map[string]db.User

	syncErr error
	calls   int
}

func newMemRepo() *memRepo {
	return &memRepo{
		articles: map[string]db.Article{},
		tags:     map[string]db.Tag{},
		links:    map[string][]string{},
		users:    map[string]db.User{},
	}
}

func (r *memRepo) match(a db.Article, s *db.ArticleSearch) bool {
	if s == nil {
		return true
	}
	if s.Status != nil && a.Status != *s.Status {
		return false
	}
	if s.Pattern != nil {
		re := regexp.MustCompile("(?i)" + *s.Pattern)
		if !re.MatchString(a.Title) && !re.MatchString(a.Excerpt) && !re.MatchString(a.BodyText) {
			return false
		}
	}
	if s.TagSlug != nil {
		found := false
		for _, slug := range r.links[a.ID] {
			found = found || slug == *s.TagSlug
		}
		if !found {
			return false
		}
	}
	return true
}

func newerFirst(a, b db.Article) bool {
	switch {
	case a.PublishedAt != nil && b.PublishedAt == nil:
		return true
	case a.PublishedAt == nil && b.PublishedAt != nil:
		return false
	case a.PublishedAt != nil && !a.PublishedAt.Equal(*b.PublishedAt):
		return a.PublishedAt.After(*b.PublishedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (r *memRepo) Articles(_ context.Context, search *db.ArticleSearch, pager db.Pager) ([]db.Article, error) {
	r.calls++
	var list []db.Article
	for _, a := range r.articles {
		if r.match(a, search) {
			list = append(list, a)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return newerFirst(list[i], list[j]) })

	if pager.Offset >= len(list) {
		return []db.Article{}, nil
	}
	list = list[pager.Offset:]
	if pager.Limit > 0 && pager.Limit < len(list) {
		list = list[:pager.Limit]
	}
	return list, nil
}

func (r *memRepo) ArticlesCount(_ context.Context, search *db.ArticleSearch) (int, error) {
	r.calls++
	count := 0
	for _, a := range r.articles {
		if r.match(a, search) {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) ArticleByID(_ context.Context, id string) (*db.Article, error) {
	r.calls++
	if a, ok := r.articles[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *memRepo) ArticleBySlug(_ context.Context, slug string) (*db.Article, error) {
	r.calls++
	for _, a := range r.articles {
		if a.Slug == slug {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *memRepo) slugTaken(slug, exceptID string) bool {
	for id, a := range r.articles {
		if a.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (r *memRepo) InsertArticle(_ context.Context, article *db.Article) error {
	r.calls++
	if r.slugTaken(article.Slug, "") {
		return uniqueViolation{}
	}
	r.articles[article.ID] = *article
	return nil
}

func (r *memRepo) UpdateArticle(_ context.Context, article *db.Article) error {
	r.calls++
	current, ok := r.articles[article.ID]
	if !ok {
		return db.ErrNotFound
	}
	if r.slugTaken(article.Slug, article.ID) {
		return uniqueViolation{}
	}
	updated := *article
	updated.CreatedAt = current.CreatedAt
	r.articles[article.ID] = updated
	return nil
}

func (r *memRepo) DeleteArticle(_ context.Context, id string) error {
	r.calls++
	if _, ok := r.articles[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.links, id)
	delete(r.articles, id)
	return nil
}

func (r *memRepo) SyncTags(_ context.Context, articleID string, tagSlugs []string) error {
	r.calls++
	if r.syncErr != nil {
		return r.syncErr
	}
	for _, slug := range tagSlugs {
		if _, ok := r.tags[slug]; !ok {
			r.tags[slug] = db.Tag{Slug: slug, Name: db.TagName(slug)}
		}
	}
	r.links[articleID] = append([]string(nil), tagSlugs...)
	return nil
}

func (r *memRepo) Tags(context.Context) ([]db.Tag, error) {
	r.calls++
	list := make([]db.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memRepo) ArticleTags(_ context.Context, articleIDs []string) ([]db.ArticleTag, error) {
	r.calls++
	var links []db.ArticleTag
	for _, id := range articleIDs {
		for pos, slug := range r.links[id] {
			tag := r.tags[slug]
			links = append(links, db.ArticleTag{ArticleID: id, TagSlug: slug, Position: pos, Tag: &tag})
		}
	}
	return links, nil
}

func (r *memRepo) SelectOrInsertUser(_ context.Context, user *db.User) (*db.User, error) {
	r.calls++
	if user.Email == "" {
		return nil, errors.New("email is empty")
	}
	if existing, ok := r.users[user.Email]; ok {
		*user = existing
		return user, nil
	}
	r.users[user.Email] = *user
	return user, nil
}
