package rest

import (
	"errors"
	"net/http"

	"github.com/daniilsolovey/campus-news/internal/newsportal"
	"github.com/labstack/echo/v4"
)

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	var (
		validationErr *newsportal.ValidationError
		notFoundErr   *newsportal.NotFoundError
		conflictErr   *newsportal.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

func (h *ArticleHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// fail writes err with its mapped status. Internal errors are not exposed,
// except the id of an article whose tags failed to sync.
func (h *ArticleHandler) fail(c echo.Context, err error) error {
	status := errorStatus(err)

	var syncErr *newsportal.TagSyncError
	if errors.As(err, &syncErr) {
		h.log.Error("handleError", "error", err, "statusCode", status, "articleId", syncErr.ArticleID)
		return c.JSON(status, map[string]string{"error": "article saved but tags not updated", "articleId": syncErr.ArticleID})
	}

	if status == http.StatusInternalServerError {
		return h.handleError(c, err, status, "internal error")
	}

	h.log.Debug("request rejected", "error", err, "statusCode", status)
	return c.JSON(status, map[string]string{"error": err.Error()})
}
