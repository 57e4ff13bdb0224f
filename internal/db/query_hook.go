package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"
)

// QueryHook logs every statement sent through go-pg. Failed statements are
// logged at warn level so they show up without -debug.
type QueryHook struct {
	logger *slog.Logger
}

func NewQueryHook(logger *slog.Logger) *QueryHook {
	return &QueryHook{logger: logger}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *pg.QueryEvent) error {
	query, err := event.FormattedQuery()
	if err != nil {
		h.logger.WarnContext(ctx, "unformattable query", "error", err)
		return nil
	}

	attrs := []any{"query", string(query), "took", time.Since(event.StartTime)}
	if event.Result != nil {
		attrs = append(attrs, "rows", event.Result.RowsAffected())
	}

	if event.Err != nil {
		h.logger.WarnContext(ctx, "query failed", append(attrs, "error", event.Err)...)
		return nil
	}

	h.logger.DebugContext(ctx, "query", attrs...)
	return nil
}
