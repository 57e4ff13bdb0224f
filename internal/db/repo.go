package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"

	RoleAdmin = "ADMIN"
)

// ErrNotFound is returned by mutations that matched no rows.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// inTx runs fn inside a transaction. When the repository is already bound to
// a transaction, fn joins it and the caller keeps control of commit/rollback.
func (r *Repository) inTx(ctx context.Context, fn func(tx *pg.Tx) error) error {
	if tx, ok := r.db.(*pg.Tx); ok {
		return fn(tx)
	}

	return r.db.RunInTransaction(ctx, fn)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr pg.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}

	return false
}

// SelectOrInsertUser returns the user with user.Email, inserting user when absent.
func (r *Repository) SelectOrInsertUser(ctx context.Context, user *User) (*User, error) {
	_, err := r.db.ModelContext(ctx, user).
		Where(`"t"."email" = ?`, user.Email).
		OnConflict("DO NOTHING").
		SelectOrInsert()
	if err != nil {
		return nil, fmt.Errorf("failed to select or insert user: %w", err)
	}

	return user, nil
}
