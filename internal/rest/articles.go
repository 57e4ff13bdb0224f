package rest

import (
	"log/slog"
	"net/http"

	"github.com/daniilsolovey/campus-news/internal/newsportal"
	"github.com/daniilsolovey/campus-news/internal/upload"
	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

type ArticleHandler struct {
	uc      *newsportal.Manager
	uploads *upload.Storage
	log     *slog.Logger
}

func NewArticleHandler(uc *newsportal.Manager, uploads *upload.Storage, log *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		uc:      uc,
		uploads: uploads,
		log:     log,
	}
}

// Health handles GET /api/health
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/health [get]
func (h *ArticleHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// SwaggerDoc serves the registered swagger document.
func (h *ArticleHandler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "swagger doc is not registered")
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}

// Articles handles GET /api/articles
// @Summary List published articles
// @Description Returns one page of published articles sorted by publishedAt DESC
// @Tags articles
// @Produce json
// @Param limit query int false "Page size (default: 12, max: 50)"
// @Param page query int false "Page number (default: 1)"
// @Success 200 {object} rest.ArticlePage
// @Failure 400,500 {object} map[string]string
// @Router /api/articles [get]
func (h *ArticleHandler) Articles(c echo.Context) error {
	var req ListRequest
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), &req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	page, err := h.uc.ListPublished(c.Request().Context(), newsportal.PageRequest{Limit: req.Limit, Page: req.Page})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewArticlePage(*page))
}

// Latest handles GET /api/articles/latest
// @Summary Latest published articles
// @Tags articles
// @Produce json
// @Param limit query int false "Number of articles (default: 6, max: 50)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} map[string]string
// @Router /api/articles/latest [get]
func (h *ArticleHandler) Latest(c echo.Context) error {
	var req LatestRequest
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), &req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	list, err := h.uc.Latest(c.Request().Context(), req.Limit)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewArticles(list))
}

// Post handles GET /api/post/:id
// @Summary Get published article
// @Description Resolves the path segment as an article id when it is a UUID, as a slug otherwise
// @Tags articles
// @Produce json
// @Param id path string true "Article ID or slug"
// @Success 200 {object} rest.Article
// @Failure 404,500 {object} map[string]string
// @Router /api/post/{id} [get]
func (h *ArticleHandler) Post(c echo.Context) error {
	article, err := h.uc.PublishedArticle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// Search handles POST /api/search
// @Summary Search published articles
// @Description Case-insensitive literal match against title, excerpt and body text. A blank term returns an empty list
// @Tags articles
// @Accept json
// @Produce json
// @Param request body rest.SearchRequest true "Search term"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} map[string]string
// @Router /api/search [post]
func (h *ArticleHandler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	list, err := h.uc.Search(c.Request().Context(), req.SearchTerm)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewArticles(list))
}

// ByTag handles POST /api/articles/by-tag
// @Summary Published articles by tag
// @Tags articles
// @Accept json
// @Produce json
// @Param request body rest.TagRequest true "Tag name or slug"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} map[string]string
// @Router /api/articles/by-tag [post]
func (h *ArticleHandler) ByTag(c echo.Context) error {
	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	list, err := h.uc.ListByTag(c.Request().Context(), req.Tag)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewArticles(list))
}

// Tags handles GET /api/tags
// @Summary Get all tags
// @Description Retrieves all tags ordered by name
// @Tags tags
// @Produce json
// @Success 200 {array} rest.Tag
// @Failure 500 {object} map[string]string
// @Router /api/tags [get]
func (h *ArticleHandler) Tags(c echo.Context) error {
	tags, err := h.uc.Tags(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewTags(tags))
}
