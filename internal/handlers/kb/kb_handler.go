// internal/handlers/kb/kb_handler.go
package kb

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"diaspora-portal-service/internal/domain/kb"
	xerrors "diaspora-portal-service/internal/pkg/errors"
	"diaspora-portal-service/internal/pkg/response"
	kbsvc "diaspora-portal-service/internal/service/kb"
)

type ArticleHandler struct {
	articleService *kbsvc.ArticleService
}

func NewArticleHandler(articleService *kbsvc.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List returns all published articles.
func (h *ArticleHandler) List(c *gin.Context) {
	list, err := h.articleService.ListPublished(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load articles", err)
		return
	}
	response.Success(c, http.StatusOK, "articles", list)
}

// Search filters published articles by substring. ?q=
func (h *ArticleHandler) Search(c *gin.Context) {
	list, err := h.articleService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "search failed", err)
		return
	}
	response.Success(c, http.StatusOK, "search results", list)
}

// Get returns one article by slug.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articleService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "article not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load article", err)
		return
	}
	response.Success(c, http.StatusOK, "article", article)
}

// Save creates or updates an article (admin).
func (h *ArticleHandler) Save(c *gin.Context) {
	var req kb.SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid article", err)
		return
	}

	article, err := h.articleService.Save(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.ValidationError(c, "invalid article", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to save article", err)
		return
	}
	response.Success(c, http.StatusOK, "article saved", article)
}

// Delete removes an article by slug (admin).
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.articleService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "article not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete article", err)
		return
	}
	response.Success(c, http.StatusOK, "article deleted", nil)
}
