package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/daniilsolovey/campus-news/config"
	"github.com/daniilsolovey/campus-news/internal/db"
	"github.com/daniilsolovey/campus-news/internal/newsportal"
	"github.com/daniilsolovey/campus-news/internal/rest"
	"github.com/daniilsolovey/campus-news/internal/rpc"
	"github.com/daniilsolovey/campus-news/internal/upload"
	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
)

const rpcPath = "/v1/rpc/"

type App struct {
	DB      *db.Repository
	Logger  *slog.Logger
	Echo    *echo.Echo
	Config  *config.Config
	Manager *newsportal.Manager
}

// New ensures the admin user exists and wires the REST and RPC transports.
func New(ctx context.Context, cfg *config.Config, dbConnect *pg.DB, logger *slog.Logger) (*App, error) {
	database := db.New(dbConnect)

	admin, err := newsportal.EnsureAdmin(ctx, database, cfg.Admin.Email)
	if err != nil {
		return nil, fmt.Errorf("ensure admin: %w", err)
	}
	logger.Info("admin ready", "id", admin.ID, "email", admin.Email)

	storage, err := upload.New(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		return nil, err
	}

	manager := newsportal.NewManager(database, admin, logger)
	handler := rest.NewArticleHandler(manager, storage, logger)

	e := handler.RegisterRoutes()
	e.Any(rpcPath, echo.WrapHandler(rpc.New(logger, manager)))

	return &App{
		DB:      database,
		Logger:  logger,
		Echo:    e,
		Config:  cfg,
		Manager: manager,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, a.Config.App.Port)
	a.Logger.InfoContext(ctx, "service starting", "addr", addr)

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
