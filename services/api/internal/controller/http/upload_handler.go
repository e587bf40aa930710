package http

import (
	"errors"
	"fmt"
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for boundaries and part headers on top
// of the file itself.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadUseCase usecase.UploadUseCase
	maxBytes      int64
	logger        *logger.Logger
}

// NewUploadHandler caps request bodies at maxBytes plus multipart overhead.
// A non-positive maxBytes leaves the body unbounded.
func NewUploadHandler(uploadUseCase usecase.UploadUseCase, maxBytes int64, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{uploadUseCase: uploadUseCase, maxBytes: maxBytes, logger: logger}
}

// Upload godoc
// @Summary      Upload a media file
// @Description  Stores an image or video in object storage and returns its URL
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Media file (max 50 MB)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			badRequest(c, fmt.Sprintf("File exceeds the %d MB limit", h.maxBytes/(1<<20)))
			return
		}
		badRequest(c, "No file uploaded")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file: %v", err)
		badRequest(c, "No file uploaded")
		return
	}
	defer file.Close()

	url, err := h.uploadUseCase.Upload(
		c.Request.Context(),
		actorFrom(c),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
