package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase, logger: logger}
}

type CreateCommentRequest struct {
	VideoID string `json:"video_id"`
	Text    string `json:"text"`
}

type ReplyRequest struct {
	Text string `json:"text"`
}

// ListRecentComments godoc
// @Summary      Recent comments
// @Description  Latest comments across all videos (admin)
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.Comment
// @Failure      403  {object}  map[string]string
// @Router       /comments [get]
func (h *CommentHandler) ListRecentComments(c *gin.Context) {
	comments, err := h.commentUseCase.ListRecent(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// ListVideoComments godoc
// @Summary      Comments of a video
// @Tags         comments
// @Produce      json
// @Param        videoId  path     string  true  "Video ID"
// @Success      200  {array}  entity.Comment
// @Router       /comments/{videoId} [get]
func (h *CommentHandler) ListVideoComments(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", "Video")
	if !ok {
		return
	}

	comments, err := h.commentUseCase.ListByVideo(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment godoc
// @Summary      Comment on a video
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCommentRequest true "Comment"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if !bodyID(c, req.VideoID, "Video") {
		return
	}

	comment, err := h.commentUseCase.Create(c.Request.Context(), actorFrom(c), req.VideoID, req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id", "Comment")
	if !ok {
		return
	}

	if err := h.commentUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// LikeComment godoc
// @Summary      Like or unlike a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment ID"
// @Success      200  {object}  entity.LikeResult
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id}/like [post]
func (h *CommentHandler) LikeComment(c *gin.Context) {
	id, ok := pathID(c, "id", "Comment")
	if !ok {
		return
	}

	result, err := h.commentUseCase.Like(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ReplyComment godoc
// @Summary      Reply to a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string        true  "Comment ID"
// @Param        request  body  ReplyRequest  true  "Reply"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id}/reply [post]
func (h *CommentHandler) ReplyComment(c *gin.Context) {
	id, ok := pathID(c, "id", "Comment")
	if !ok {
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Text is required")
		return
	}

	comment, err := h.commentUseCase.Reply(c.Request.Context(), actorFrom(c), id, req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
