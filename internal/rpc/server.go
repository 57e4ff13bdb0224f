package rpc

import (
	"log/slog"

	"github.com/daniilsolovey/campus-news/internal/newsportal"
	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"
)

func New(logger *slog.Logger, manager *newsportal.Manager) *zenrpc.Server {
	rpcService := NewArticleService(manager, logger)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("article", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "campus-news", nil))

	return rpcServer
}
