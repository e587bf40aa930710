package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{postUseCase: postUseCase, logger: logger}
}

type CreatePostRequest struct {
	Content   string `json:"content"`
	ChannelID string `json:"channel_id"`
	ImageURL  string `json:"image_url"`
}

// ListPosts godoc
// @Summary      List community posts
// @Tags         posts
// @Produce      json
// @Param        channel  query    string  false  "Channel ID"
// @Success      200  {array}  entity.Post
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	channelID := c.Query("channel")
	if channelID != "" {
		if _, err := uuid.Parse(channelID); err != nil {
			c.JSON(http.StatusOK, []*entity.Post{})
			return
		}
	}

	posts, err := h.postUseCase.List(c.Request.Context(), channelID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary      Create a community post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if !bodyID(c, req.ChannelID, "Channel") {
		return
	}

	post, err := h.postUseCase.Create(c.Request.Context(), actorFrom(c), req.ChannelID, req.Content, req.ImageURL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// DeletePost godoc
// @Summary      Delete a community post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id", "Post")
	if !ok {
		return
	}

	if err := h.postUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// LikePost godoc
// @Summary      Like or unlike a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  entity.LikeResult
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	id, ok := pathID(c, "id", "Post")
	if !ok {
		return
	}

	result, err := h.postUseCase.Like(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
