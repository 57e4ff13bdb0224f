package newsportal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/daniilsolovey/campus-news/config"
	"github.com/daniilsolovey/campus-news/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminID = "00000000-0000-4000-8000-000000000001"

var baseTime = time.Date(2024, 11, 14, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func statusPtr(s Status) *Status { return &s }

func htmlBody(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// newTestManager returns a Manager over an empty memRepo whose clock moves
// one minute forward on every read.
func newTestManager(t *testing.T) (*Manager, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	admin := &User{User: db.User{ID: testAdminID, Email: "admin@local", Role: db.RoleAdmin}}
	m := NewManager(repo, admin, slog.New(slog.NewTextHandler(io.Discard, nil)))

	clock := baseTime
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	return m, repo
}

func createArticle(t *testing.T, m *Manager, title string, status Status, tags ...string) *Article {
	t.Helper()
	a, err := m.CreateArticle(context.Background(), CreateInput{
		Title:  title,
		Body:   htmlBody("<p>" + title + " body</p>"),
		Status: status,
		Tags:   tags,
	})
	require.NoError(t, err)
	return a
}

func tagSlugs(a *Article) []string {
	slugs := make([]string, len(a.Tags))
	for i := range a.Tags {
		slugs[i] = a.Tags[i].Slug
	}
	return slugs
}

func TestManager_CreateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToDraft", func(t *testing.T) {
		m, _ := newTestManager(t)
		a, err := m.CreateArticle(ctx, CreateInput{
			Title:   "  Library Extends Hours ",
			Body:    htmlBody("<p>Open until <b>2 a.m.</b></p>"),
			Excerpt: "Late study",
		})
		require.NoError(t, err)

		assert.Equal(t, "Library Extends Hours", a.Title)
		assert.Equal(t, "library-extends-hours", a.Slug)
		assert.Equal(t, db.StatusDraft, a.Status)
		assert.Nil(t, a.PublishedAt)
		assert.Equal(t, testAdminID, a.AuthorID)
		assert.Equal(t, "Open until 2 a.m.", a.BodyText)
		assert.Equal(t, a.CreatedAt, a.UpdatedAt)
		assert.Equal(t, a.CreatedAt, a.DisplayDate())
		assert.Empty(t, a.Tags)
		assert.False(t, a.IsPublished())
	})

	t.Run("PublishedSetsPublishedAt", func(t *testing.T) {
		m, _ := newTestManager(t)
		a := createArticle(t, m, "Football Team Wins", StatusPublished)

		require.NotNil(t, a.PublishedAt)
		assert.Equal(t, a.CreatedAt, *a.PublishedAt)
		assert.Equal(t, *a.PublishedAt, a.DisplayDate())
		assert.True(t, a.IsPublished())
	})

	t.Run("ExplicitSlugAndAuthor", func(t *testing.T) {
		m, _ := newTestManager(t)
		author := "00000000-0000-4000-8000-0000000000aa"
		a, err := m.CreateArticle(ctx, CreateInput{
			Title:    "Sendai Event Roundup",
			Slug:     strPtr("events-in-sendai"),
			Body:     htmlBody("<p>Jazz</p>"),
			CoverURL: strPtr("https://cdn.example.com/a.png"),
			AuthorID: &author,
		})
		require.NoError(t, err)
		assert.Equal(t, "events-in-sendai", a.Slug)
		assert.Equal(t, author, a.AuthorID)
		require.NotNil(t, a.CoverURL)
		assert.Equal(t, "https://cdn.example.com/a.png", *a.CoverURL)
	})

	t.Run("BlankSlugDerivedFromTitle", func(t *testing.T) {
		m, _ := newTestManager(t)
		a, err := m.CreateArticle(ctx, CreateInput{Title: "Exam Week", Slug: strPtr("  "), Body: htmlBody("x")})
		require.NoError(t, err)
		assert.Equal(t, "exam-week", a.Slug)
	})

	t.Run("LongTitleSlugTruncated", func(t *testing.T) {
		m, _ := newTestManager(t)
		a, err := m.CreateArticle(ctx, CreateInput{Title: strings.Repeat("word ", 40), Body: htmlBody("x")})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(a.Slug), maxSlugLength)
		assert.Regexp(t, slugPattern, a.Slug)
	})

	t.Run("TagsNormalized", func(t *testing.T) {
		m, repo := newTestManager(t)
		a := createArticle(t, m, "Career Insights", StatusPublished, "Research", "Career Day", "research", " ")

		assert.Equal(t, []string{"research", "career-day"}, tagSlugs(a))
		assert.Equal(t, "career day", repo.tags["career-day"].Name)
	})

	t.Run("DuplicateSlugConflict", func(t *testing.T) {
		m, repo := newTestManager(t)
		createArticle(t, m, "Same Title", StatusDraft)

		_, err := m.CreateArticle(ctx, CreateInput{Title: "Same Title", Body: htmlBody("x")})
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "slug", conflict.Field)
		assert.Equal(t, "same-title", conflict.Value)
		assert.Len(t, repo.articles, 1)
	})

	t.Run("TagSyncFailureKeepsArticle", func(t *testing.T) {
		m, repo := newTestManager(t)
		repo.syncErr = errors.New("connection reset")

		_, err := m.CreateArticle(ctx, CreateInput{Title: "Tagged", Body: htmlBody("x"), Tags: []string{"a"}})
		var syncErr *TagSyncError
		require.ErrorAs(t, err, &syncErr)
		assert.Contains(t, repo.articles, syncErr.ArticleID)
	})
}

func TestManager_CreateArticle_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateInput
		wantField string
	}{
		{name: "MissingTitle", input: CreateInput{Body: htmlBody("x")}, wantField: "title"},
		{name: "ShortTitle", input: CreateInput{Title: " ab ", Body: htmlBody("x")}, wantField: "title"},
		{name: "TitleWithoutLetters", input: CreateInput{Title: "!!! ???", Body: htmlBody("x")}, wantField: "title"},
		{name: "MissingBody", input: CreateInput{Title: "Valid title"}, wantField: "body"},
		{name: "NullBody", input: CreateInput{Title: "Valid title", Body: json.RawMessage("null")}, wantField: "body"},
		{name: "BadSlug", input: CreateInput{Title: "Valid title", Slug: strPtr("Bad Slug"), Body: htmlBody("x")}, wantField: "slug"},
		{name: "ShortSlug", input: CreateInput{Title: "Valid title", Slug: strPtr("ab"), Body: htmlBody("x")}, wantField: "slug"},
		{name: "DoubleDashSlug", input: CreateInput{Title: "Valid title", Slug: strPtr("a--b"), Body: htmlBody("x")}, wantField: "slug"},
		{name: "BadCoverURL", input: CreateInput{Title: "Valid title", Body: htmlBody("x"), CoverURL: strPtr("not a url")}, wantField: "coverUrl"},
		{name: "BadStatus", input: CreateInput{Title: "Valid title", Body: htmlBody("x"), Status: "ARCHIVED"}, wantField: "status"},
		{name: "BadAuthor", input: CreateInput{Title: "Valid title", Body: htmlBody("x"), AuthorID: strPtr("admin")}, wantField: "authorId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo := newTestManager(t)

			_, err := m.CreateArticle(context.Background(), tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Empty(t, repo.articles)
		})
	}
}

func TestManager_UpdateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("TitleRenamesSlug", func(t *testing.T) {
		m, _ := newTestManager(t)
		a := createArticle(t, m, "Old Title", StatusDraft)

		got, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Title: strPtr("New Title")})
		require.NoError(t, err)
		assert.Equal(t, "New Title", got.Title)
		assert.Equal(t, "new-title", got.Slug)
		assert.Equal(t, a.CreatedAt, got.CreatedAt)
		assert.True(t, got.UpdatedAt.After(a.UpdatedAt))
		assert.Equal(t, a.BodyText, got.BodyText)
	})

	t.Run("ExplicitSlugWins", func(t *testing.T) {
		m, _ := newTestManager(t)
		a := createArticle(t, m, "Old Title", StatusDraft)

		got, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Title: strPtr("New Title"), Slug: strPtr("kept-slug")})
		require.NoError(t, err)
		assert.Equal(t, "kept-slug", got.Slug)
	})

	t.Run("StatusTransitions", func(t *testing.T) {
		m, _ := newTestManager(t)
		a := createArticle(t, m, "Status Article", StatusDraft)

		published, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Status: statusPtr(StatusPublished)})
		require.NoError(t, err)
		require.NotNil(t, published.PublishedAt)
		assert.Equal(t, published.UpdatedAt, *published.PublishedAt)

		same, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Status: statusPtr(StatusPublished), Excerpt: strPtr("edited")})
		require.NoError(t, err)
		require.NotNil(t, same.PublishedAt)
		assert.Equal(t, *published.PublishedAt, *same.PublishedAt)
		assert.Equal(t, "edited", same.Excerpt)

		draft, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Status: statusPtr(StatusDraft)})
		require.NoError(t, err)
		assert.Nil(t, draft.PublishedAt)
		assert.Equal(t, draft.CreatedAt, draft.DisplayDate())
	})

	t.Run("BodyAndCover", func(t *testing.T) {
		m, _ := newTestManager(t)
		a, err := m.CreateArticle(ctx, CreateInput{Title: "Covered", Body: htmlBody("old"), CoverURL: strPtr("https://x.test/c.png")})
		require.NoError(t, err)

		got, err := m.UpdateArticle(ctx, a.ID, UpdateInput{
			Body:     json.RawMessage(`{"type":"doc","content":[{"type":"text","text":"new body"}]}`),
			CoverURL: strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "new body", got.BodyText)
		assert.Nil(t, got.CoverURL)
	})

	t.Run("TagsReplacedAndCleared", func(t *testing.T) {
		m, _ := newTestManager(t)
		a := createArticle(t, m, "Tagged", StatusDraft, "a", "b")

		got, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Tags: &[]string{"c", "A"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, tagSlugs(got))

		untouched, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Excerpt: strPtr("x")})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, tagSlugs(untouched))

		cleared, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Tags: &[]string{}})
		require.NoError(t, err)
		assert.Empty(t, cleared.Tags)
	})

	t.Run("SlugConflict", func(t *testing.T) {
		m, _ := newTestManager(t)
		createArticle(t, m, "First Article", StatusDraft)
		second := createArticle(t, m, "Second Article", StatusDraft)

		_, err := m.UpdateArticle(ctx, second.ID, UpdateInput{Title: strPtr("First Article")})
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "first-article", conflict.Value)
	})

	t.Run("Validation", func(t *testing.T) {
		m, _ := newTestManager(t)
		a := createArticle(t, m, "Valid", StatusDraft)

		_, err := m.UpdateArticle(ctx, a.ID, UpdateInput{Title: strPtr("x")})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)

		_, err = m.UpdateArticle(ctx, a.ID, UpdateInput{Body: json.RawMessage("null")})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "body", verr.Field)
	})

	t.Run("NotFound", func(t *testing.T) {
		m, repo := newTestManager(t)

		_, err := m.UpdateArticle(ctx, "00000000-0000-4000-8000-00000000ffff", UpdateInput{Title: strPtr("Nothing")})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)

		calls := repo.calls
		_, err = m.UpdateArticle(ctx, "not-a-uuid", UpdateInput{})
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, calls, repo.calls)
	})
}

func TestManager_DeleteArticle(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager(t)
	a := createArticle(t, m, "To Delete", StatusPublished, "gone")

	require.NoError(t, m.DeleteArticle(ctx, a.ID))
	assert.NotContains(t, repo.articles, a.ID)
	assert.NotContains(t, repo.links, a.ID)
	assert.Contains(t, repo.tags, "gone")

	var nf *NotFoundError
	require.ErrorAs(t, m.DeleteArticle(ctx, a.ID), &nf)
	require.ErrorAs(t, m.DeleteArticle(ctx, "bogus"), &nf)

	_, err := m.ArticleByID(ctx, a.ID)
	require.ErrorAs(t, err, &nf)
}

func TestManager_Lookup(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	published := createArticle(t, m, "Published Story", StatusPublished, "news")
	draft := createArticle(t, m, "Draft Story", StatusDraft)

	t.Run("BySlugAnyStatus", func(t *testing.T) {
		got, err := m.ArticleBySlug(ctx, "draft-story")
		require.NoError(t, err)
		assert.Equal(t, draft.ID, got.ID)
	})

	t.Run("PublishedByID", func(t *testing.T) {
		got, err := m.PublishedArticle(ctx, published.ID)
		require.NoError(t, err)
		assert.Equal(t, "published-story", got.Slug)
		assert.Equal(t, []string{"news"}, tagSlugs(got))
	})

	t.Run("PublishedBySlug", func(t *testing.T) {
		got, err := m.PublishedArticle(ctx, "published-story")
		require.NoError(t, err)
		assert.Equal(t, published.ID, got.ID)
	})

	t.Run("DraftHidden", func(t *testing.T) {
		var nf *NotFoundError
		_, err := m.PublishedArticle(ctx, draft.ID)
		require.ErrorAs(t, err, &nf)
		_, err = m.PublishedArticle(ctx, "draft-story")
		require.ErrorAs(t, err, &nf)
		_, err = m.PublishedArticle(ctx, "missing")
		require.ErrorAs(t, err, &nf)
	})
}

func TestManager_ListPublished(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	for i := 0; i < 15; i++ {
		createArticle(t, m, fmt.Sprintf("Published %02d", i), StatusPublished)
	}
	createArticle(t, m, "Hidden Draft", StatusDraft)

	tests := []struct {
		name     string
		req      PageRequest
		wantLen  int
		wantPage Pagination
	}{
		{name: "Defaults", req: PageRequest{}, wantLen: 12, wantPage: Pagination{Page: 1, Limit: 12, Total: 15, HasMore: true}},
		{name: "SecondPage", req: PageRequest{Page: 2}, wantLen: 3, wantPage: Pagination{Page: 2, Limit: 12, Total: 15, HasMore: false}},
		{name: "PageFloored", req: PageRequest{Page: -3, Limit: 5}, wantLen: 5, wantPage: Pagination{Page: 1, Limit: 5, Total: 15, HasMore: true}},
		{name: "LimitCapped", req: PageRequest{Limit: 500}, wantLen: 15, wantPage: Pagination{Page: 1, Limit: 50, Total: 15, HasMore: false}},
		{name: "PastTheEnd", req: PageRequest{Page: 9}, wantLen: 0, wantPage: Pagination{Page: 9, Limit: 12, Total: 15, HasMore: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := m.ListPublished(ctx, tt.req)
			require.NoError(t, err)
			assert.Len(t, page.Items, tt.wantLen)
			assert.Equal(t, tt.wantPage, page.Pagination)
			for i := range page.Items {
				assert.True(t, page.Items[i].IsPublished())
			}
		})
	}

	t.Run("NewestFirst", func(t *testing.T) {
		page, err := m.ListPublished(ctx, PageRequest{Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, "published-14", page.Items[0].Slug)
		assert.Equal(t, "published-13", page.Items[1].Slug)
	})
}

func TestManager_LatestAndListAll(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	for i := 0; i < 8; i++ {
		createArticle(t, m, fmt.Sprintf("Story %d", i), StatusPublished)
	}
	createArticle(t, m, "Draft One", StatusDraft)

	latest, err := m.Latest(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, latest, 6)
	assert.Equal(t, "story-7", latest[0].Slug)

	all, err := m.ListAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 9)
	assert.Equal(t, "draft-one", all[len(all)-1].Slug)

	drafts, err := m.ListAll(ctx, statusPtr(StatusDraft))
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	_, err = m.ListAll(ctx, statusPtr("ARCHIVED"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestManager_Search(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager(t)

	_, err := m.CreateArticle(ctx, CreateInput{Title: "Materials Lab", Body: htmlBody("<p>a.b testing</p>"), Status: StatusPublished})
	require.NoError(t, err)
	_, err = m.CreateArticle(ctx, CreateInput{Title: "Other Lab", Body: htmlBody("<p>axb testing</p>"), Status: StatusPublished})
	require.NoError(t, err)
	_, err = m.CreateArticle(ctx, CreateInput{Title: "Secret Lab", Body: htmlBody("<p>a.b draft</p>")})
	require.NoError(t, err)

	t.Run("BlankSkipsStore", func(t *testing.T) {
		calls := repo.calls
		got, err := m.Search(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, calls, repo.calls)
	})

	t.Run("MetacharactersLiteral", func(t *testing.T) {
		got, err := m.Search(ctx, "A.B")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "materials-lab", got[0].Slug)
	})

	t.Run("CaseInsensitiveTitle", func(t *testing.T) {
		got, err := m.Search(ctx, "lab")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("UnbalancedPattern", func(t *testing.T) {
		got, err := m.Search(ctx, "(lab")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestManager_ListByTag(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager(t)
	createArticle(t, m, "Research One", StatusPublished, "research")
	createArticle(t, m, "Research Two", StatusPublished, "Research", "campus")
	createArticle(t, m, "Research Draft", StatusDraft, "research")

	got, err := m.ListByTag(ctx, " Research ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "research-two", got[0].Slug)

	calls := repo.calls
	got, err = m.ListByTag(ctx, "!!")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, calls, repo.calls)

	tags, err := m.Tags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "campus", tags[0].Slug)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	first, err := EnsureAdmin(ctx, repo, " Admin@Local.Test ")
	require.NoError(t, err)
	assert.Equal(t, "admin@local.test", first.Email)
	assert.Equal(t, db.RoleAdmin, first.Role)
	assert.NotEmpty(t, first.ID)

	second, err := EnsureAdmin(ctx, repo, "admin@local.test")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.users, 1)

	_, err = EnsureAdmin(ctx, repo, "not-an-email")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestEnsureAdmin_DefaultConfigEmail(t *testing.T) {
	var cfg config.Config
	cfg.SetDefaults()

	repo := newMemRepo()
	admin, err := EnsureAdmin(context.Background(), repo, cfg.Admin.Email)
	require.NoError(t, err)
	assert.Equal(t, "admin@local", admin.Email)
	assert.Equal(t, db.RoleAdmin, admin.Role)

	_, err = EnsureAdmin(context.Background(), repo, "admin@elsewhere")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestStoreError(t *testing.T) {
	wrapped := fmt.Errorf("failed to insert article: %w", uniqueViolation{})

	var conflict *ConflictError
	require.ErrorAs(t, storeError("insert", wrapped, "id", "dup"), &conflict)
	assert.Equal(t, "dup", conflict.Value)

	var nf *NotFoundError
	require.ErrorAs(t, storeError("update", db.ErrNotFound, "id", ""), &nf)

	cause := errors.New("boom")
	var se *StorageError
	err := storeError("delete", cause, "id", "")
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, cause)
}
