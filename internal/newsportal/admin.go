package newsportal

import (
	"context"
	"strings"
	"time"

	"github.com/daniilsolovey/campus-news/internal/db"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// adminEmailRule accepts regular addresses and the single-label "@local"
// bootstrap identity, which the email rule rejects for lacking a dotted domain.
const adminEmailRule = "required,email|endswith=@local"

// EnsureAdmin returns the admin user with email, creating it on first start.
func EnsureAdmin(ctx context.Context, repo Repository, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validator.New().Var(email, adminEmailRule); err != nil {
		return nil, &ValidationError{Field: "email", Message: "must be a valid email"}
	}

	user, err := repo.SelectOrInsertUser(ctx, &db.User{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      db.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, &StorageError{Op: "ensure admin", Err: err}
	}

	return &User{User: *user}, nil
}
