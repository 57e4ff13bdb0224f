package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/campus-news/config"
	_ "github.com/daniilsolovey/campus-news/docs"
	"github.com/daniilsolovey/campus-news/internal/app"
	"github.com/daniilsolovey/campus-news/internal/db"
)

var (
	flConfig     = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug      = flag.Bool("debug", false, "enable debug mode")
	flMigrate    = flag.Bool("migrate", true, "apply database migrations on start")
	flLogQueries = flag.Bool("log-queries", false, "log every SQL query at debug level")
	cfg          config.Config
	lg           *slog.Logger
)

// @title Campus News API
// @version 1.0
// @description Articles and tags of the university newspaper
// @host localhost:4000
// @BasePath /

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	_, err := toml.DecodeFile(*flConfig, &cfg)
	if err != nil {
		exitOnError(err)
	}
	cfg.SetDefaults()

	ctx := context.Background()

	if *flMigrate {
		if err := db.Migrate(ctx, &cfg.Database); err != nil {
			exitOnError(err)
		}
		lg.Info("migrations applied")
	}

	dbc := pg.Connect(&cfg.Database)
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		exitOnError(err)
	}
	if *flLogQueries {
		dbc.AddQueryHook(db.NewQueryHook(lg))
	}

	service, err := app.New(ctx, &cfg, dbc, lg)
	if err != nil {
		dbc.Close()
		exitOnError(err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}

	if err := service.DB.Close(); err != nil {
		lg.Error("db close failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
