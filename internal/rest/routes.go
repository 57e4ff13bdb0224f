package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	apiPrefix = "/api"

	healthPath   = "/health"
	articlesPath = "/articles"
	latestPath   = articlesPath + "/latest"
	byTagPath    = articlesPath + "/by-tag"
	postPath     = "/post/:id"
	searchPath   = "/search"
	tagsPath     = "/tags"
	uploadsPath  = "/uploads"

	adminArticlesPath = "/admin/articles"
	adminArticlePath  = adminArticlesPath + "/:id"

	swaggerDocPath = "/swagger/doc.json"
)

// RegisterRoutes builds the echo instance serving the JSON API, uploaded
// files and the swagger document.
func (h *ArticleHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(h.requestLogger())

	api := e.Group(apiPrefix)
	api.GET(healthPath, h.Health)
	api.GET(articlesPath, h.Articles)
	api.GET(latestPath, h.Latest)
	api.POST(byTagPath, h.ByTag)
	api.GET(postPath, h.Post)
	api.POST(searchPath, h.Search)
	api.GET(tagsPath, h.Tags)

	api.GET(adminArticlesPath, h.AdminArticles)
	api.POST(adminArticlesPath, h.CreateArticle)
	api.GET(adminArticlePath, h.AdminArticle)
	api.PUT(adminArticlePath, h.UpdateArticle)
	api.DELETE(adminArticlePath, h.DeleteArticle)

	if h.uploads != nil {
		api.POST(uploadsPath, h.Upload)
		e.Static(h.uploads.URLPrefix(), h.uploads.Dir())
	}

	e.GET(swaggerDocPath, h.SwaggerDoc)

	return e
}

func (h *ArticleHandler) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
				slog.String("remote_addr", c.RealIP()),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			h.log.LogAttrs(c.Request().Context(), slog.LevelInfo, "HTTP request", attrs...)
			return nil
		},
	})
}
