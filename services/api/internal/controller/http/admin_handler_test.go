package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	mockUseCase := new(MockCategoryUseCase)
	handler := NewCategoryHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/categories", handler.CreateCategory)

	mockUseCase.On("Create", "Music", "").Return(&entity.Category{ID: testCategoryID, Name: "Music"}, nil)
	mockUseCase.On("Create", "Music", "🎵").
		Return(nil, &usecase.Error{Kind: usecase.ErrValidation, Message: "Category already exists"})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"created", `{"name":"Music"}`, http.StatusCreated},
		{"duplicate", `{"name":"Music","icon":"🎵"}`, http.StatusBadRequest},
		{"missing name", `{"icon":"🎵"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/categories", bytes.NewBufferString(tt.body))
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
	mockUseCase.AssertNumberOfCalls(t, "Create", 2)
}

func TestUpdateCategory_PartialFields(t *testing.T) {
	mockUseCase := new(MockCategoryUseCase)
	handler := NewCategoryHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/categories/:id", handler.UpdateCategory)

	icon := "🎮"
	mockUseCase.On("Update", testCategoryID, (*string)(nil), &icon).
		Return(&entity.Category{ID: testCategoryID, Name: "Gaming", Icon: icon}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/categories/"+testCategoryID, bytes.NewBufferString(`{"icon":"🎮"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "🎮", decode(t, w)["icon"])
	mockUseCase.AssertExpectations(t)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PUT", "/categories/music", bytes.NewBufferString(`{"icon":"🎮"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decode(t, w)["error"])
}

func TestDeleteCategory_NotFound(t *testing.T) {
	mockUseCase := new(MockCategoryUseCase)
	handler := NewCategoryHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/categories/:id", handler.DeleteCategory)

	mockUseCase.On("Delete", testCategoryID).
		Return(&usecase.Error{Kind: usecase.ErrNotFound, Message: "Category not found"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/categories/"+testCategoryID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHistory(t *testing.T) {
	mockUseCase := new(MockHistoryUseCase)
	handler := NewHistoryHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/history/:userId", withActor(testUserID, "user", handler.GetHistory))

	watchedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mockUseCase.On("List", entity.Actor{UserID: testUserID, Role: "user"}, testUserID).
		Return([]*entity.HistoryEntry{{Video: &entity.Video{ID: testVideoID}, WatchedAt: watchedAt}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/history/"+testUserID, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testVideoID)
	assert.Contains(t, w.Body.String(), "2024-05-01T12:00:00Z")
}

func TestHistory_OtherUserIsForbidden(t *testing.T) {
	mockUseCase := new(MockHistoryUseCase)
	handler := NewHistoryHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/history/:userId", withActor(testUserID, "user", handler.ClearHistory))

	mockUseCase.On("Clear", entity.Actor{UserID: testUserID, Role: "user"}, testChannelID).
		Return(&usecase.Error{Kind: usecase.ErrForbidden, Message: "Access denied"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/history/"+testChannelID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied", decode(t, w)["error"])
}

func TestRemoveFromHistory_MalformedIDs(t *testing.T) {
	mockUseCase := new(MockHistoryUseCase)
	handler := NewHistoryHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/history/:userId/:videoId", withActor(testUserID, "user", handler.RemoveFromHistory))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/history/"+testUserID+"/abc", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Video not found", decode(t, w)["error"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/history/abc/"+testVideoID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["error"])

	mockUseCase.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminStats(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/admin/stats", withActor(testUserID, "admin", handler.Stats))

	mockUseCase.On("Stats").Return(&entity.DashboardStats{TotalUsers: 3, TotalVideos: 5, TotalViews: 120}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(3), response["total_users"])
	assert.Equal(t, float64(120), response["total_views"])
}

func TestAdminLists_HideInternalErrors(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/admin/videos", handler.Videos)
	router.GET("/admin/channels", handler.Channels)
	router.GET("/admin/users", handler.Users)
	router.GET("/admin/reports", handler.Reports)

	failure := errors.New("pq: relation does not exist")
	mockUseCase.On("Videos").Return(nil, failure)
	mockUseCase.On("Channels").Return(nil, failure)
	mockUseCase.On("Users").Return(nil, failure)
	mockUseCase.On("Reports").Return(nil, failure)

	for _, path := range []string{"/admin/videos", "/admin/channels", "/admin/users", "/admin/reports"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Equal(t, "Internal server error", decode(t, w)["error"], path)
		assert.NotContains(t, w.Body.String(), "pq:", path)
	}
}
