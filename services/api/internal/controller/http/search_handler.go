package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchUseCase usecase.SearchUseCase
	logger        *logger.Logger
}

func NewSearchHandler(searchUseCase usecase.SearchUseCase, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{searchUseCase: searchUseCase, logger: logger}
}

// Search godoc
// @Summary      Search videos
// @Description  Full-text search with a substring fallback
// @Tags         search
// @Produce      json
// @Param        q    query     string  false  "Query"
// @Success      200  {object}  VideosResponse
// @Router       /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	videos, err := h.searchUseCase.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, VideosResponse{Videos: videos})
}

// Suggestions godoc
// @Summary      Title suggestions
// @Tags         search
// @Produce      json
// @Param        q    query     string  false  "Prefix or fragment"
// @Success      200  {object}  map[string][]string
// @Router       /search/suggestions [get]
func (h *SearchHandler) Suggestions(c *gin.Context) {
	suggestions, err := h.searchUseCase.Suggestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
