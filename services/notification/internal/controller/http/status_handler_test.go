package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"opftube/pkg/logger"
	"opftube/pkg/queue"
	"opftube/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) HandleEvent(ctx context.Context, event queue.Event) error {
	return m.Called(event).Error(0)
}

func (m *MockNotificationUseCase) QueueLength() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

var _ usecase.NotificationUseCase = (*MockNotificationUseCase)(nil)

func setupStatusRouter(uc usecase.NotificationUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", NewStatusHandler(uc, logger.New()).Health)
	return router
}

func TestHealth_ReportsBacklog(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	mockUseCase.On("QueueLength").Return(7, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	setupStatusRouter(mockUseCase).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, float64(7), response["queue_length"])
	mockUseCase.AssertExpectations(t)
}

func TestHealth_QueueDown(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	mockUseCase.On("QueueLength").Return(0, errors.New("channel closed"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	setupStatusRouter(mockUseCase).ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
