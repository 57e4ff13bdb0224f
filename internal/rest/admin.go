package rest

import (
	"net/http"

	"github.com/daniilsolovey/campus-news/internal/newsportal"
	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"
)

// AdminArticles handles GET /api/admin/articles
// @Summary List all articles
// @Tags admin
// @Produce json
// @Param status query string false "DRAFT or PUBLISHED"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} map[string]string
// @Router /api/admin/articles [get]
func (h *ArticleHandler) AdminArticles(c echo.Context) error {
	var req AdminListRequest
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), &req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	var status *newsportal.Status
	if req.Status != "" {
		s := newsportal.Status(req.Status)
		status = &s
	}

	list, err := h.uc.ListAll(c.Request().Context(), status)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewArticles(list))
}

// AdminArticle handles GET /api/admin/articles/:id
// @Summary Get article in any status
// @Tags admin
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 404,500 {object} map[string]string
// @Router /api/admin/articles/{id} [get]
func (h *ArticleHandler) AdminArticle(c echo.Context) error {
	article, err := h.uc.ArticleByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// CreateArticle handles POST /api/admin/articles
// @Summary Create article
// @Tags admin
// @Accept json
// @Produce json
// @Param request body rest.CreateArticleRequest true "Article"
// @Success 201 {object} rest.Article
// @Failure 400,409,500 {object} map[string]string
// @Router /api/admin/articles [post]
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	var req CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	article, err := h.uc.CreateArticle(c.Request().Context(), req.ToModel())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, NewArticle(*article))
}

// UpdateArticle handles PUT /api/admin/articles/:id
// @Summary Update article
// @Description Applies the supplied fields only
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param request body rest.UpdateArticleRequest true "Changed fields"
// @Success 200 {object} rest.Article
// @Failure 400,404,409,500 {object} map[string]string
// @Router /api/admin/articles/{id} [put]
func (h *ArticleHandler) UpdateArticle(c echo.Context) error {
	var req UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	article, err := h.uc.UpdateArticle(c.Request().Context(), c.Param("id"), req.ToModel())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// DeleteArticle handles DELETE /api/admin/articles/:id
// @Summary Delete article
// @Tags admin
// @Param id path string true "Article ID"
// @Success 204
// @Failure 404,500 {object} map[string]string
// @Router /api/admin/articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	if err := h.uc.DeleteArticle(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Upload handles POST /api/uploads
// @Summary Upload a file
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Success 200 {object} rest.UploadResponse
// @Failure 400,500 {object} map[string]string
// @Router /api/uploads [post]
func (h *ArticleHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "No file uploaded")
	}

	src, err := fh.Open()
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "No file uploaded")
	}
	defer src.Close()

	url, err := h.uploads.Save(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, UploadResponse{URL: url})
}
