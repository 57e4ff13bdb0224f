package newsportal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/daniilsolovey/campus-news/internal/db"
	"github.com/go-playground/validator/v10"
)

// Repository is the storage used by Manager. *db.Repository implements it.
type Repository interface {
	Articles(ctx context.Context, search *db.ArticleSearch, pager db.Pager) ([]db.Article, error)
	ArticlesCount(ctx context.Context, search *db.ArticleSearch) (int, error)
	ArticleByID(ctx context.Context, id string) (*db.Article, error)
	ArticleBySlug(ctx context.Context, slug string) (*db.Article, error)
	InsertArticle(ctx context.Context, article *db.Article) error
	UpdateArticle(ctx context.Context, article *db.Article) error
	DeleteArticle(ctx context.Context, id string) error
	SyncTags(ctx context.Context, articleID string, tagSlugs []string) error
	Tags(ctx context.Context) ([]db.Tag, error)
	ArticleTags(ctx context.Context, articleIDs []string) ([]db.ArticleTag, error)
	SelectOrInsertUser(ctx context.Context, user *db.User) (*db.User, error)
}

var _ Repository = (*db.Repository)(nil)

type Manager struct {
	repo     Repository
	author   *User
	log      *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewManager returns a Manager that attributes new articles to author unless
// the input names another author.
func NewManager(repo Repository, author *User, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		repo:     repo,
		author:   author,
		log:      logger,
		validate: newValidator(),
		now:      time.Now,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so errors point at request fields
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return v
}

func (m *Manager) validateStruct(s interface{}) error {
	err := m.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := errs[0]
	return &ValidationError{Field: fe.Field(), Message: validationMessage(fe)}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a UUID"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "slug":
		return "must contain only lowercase letters, digits and single dashes"
	}

	return "is invalid"
}

// storeError maps repository failures to domain errors. slug is reported on
// unique violations.
func storeError(op string, err error, id, slug string) error {
	switch {
	case db.IsUniqueViolation(err):
		return &ConflictError{Field: "slug", Value: slug}
	case errors.Is(err, db.ErrNotFound):
		return &NotFoundError{Entity: "article", Key: id}
	}

	return &StorageError{Op: op, Err: err}
}

// withTags loads the tags of list in one query.
func (m *Manager) withTags(ctx context.Context, list []db.Article) ([]Article, error) {
	if len(list) == 0 {
		return []Article{}, nil
	}

	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}

	links, err := m.repo.ArticleTags(ctx, ids)
	if err != nil {
		return nil, &StorageError{Op: "load article tags", Err: err}
	}

	return NewArticleList(list, links), nil
}
