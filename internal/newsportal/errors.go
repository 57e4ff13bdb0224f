package newsportal

import "fmt"

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// ConflictError reports a unique constraint violation.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// StorageError wraps any other failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// TagSyncError is returned when the article row was written but its tags
// could not be synchronized. The article is not rolled back.
type TagSyncError struct {
	ArticleID string
	Err       error
}

func (e *TagSyncError) Error() string {
	return fmt.Sprintf("sync tags of article %s: %v", e.ArticleID, e.Err)
}

func (e *TagSyncError) Unwrap() error {
	return e.Err
}
