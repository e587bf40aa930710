package http

import (
	"errors"
	"net/http"

	"opftube/pkg/logger"
	"opftube/pkg/middleware"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError writes the status matching err. Unexpected errors are logged
// and reported without detail.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var ucErr *usecase.Error
	message := ""
	if errors.As(err, &ucErr) {
		message = ucErr.Message
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": message})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message})
	case errors.Is(err, usecase.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Uploads are unavailable"})
	default:
		log.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func actorFrom(c *gin.Context) entity.Actor {
	return entity.Actor{
		UserID: c.GetString(middleware.UserIDKey),
		Role:   c.GetString(middleware.UserRoleKey),
	}
}

// pathID returns the named path parameter when it is a UUID. Anything else
// cannot name a stored row, so it is answered with 404 for resource.
func pathID(c *gin.Context, name, resource string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return "", false
	}
	return id, true
}

// bodyID accepts an empty id, which the use case rejects as missing, or a
// UUID. Anything else is answered with 404 for resource.
func bodyID(c *gin.Context, id, resource string) bool {
	if id == "" {
		return true
	}
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return false
	}
	return true
}

// uuidsOnly drops entries that cannot name a stored row.
func uuidsOnly(ids []string) []string {
	if ids == nil {
		return nil
	}
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	return valid
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
