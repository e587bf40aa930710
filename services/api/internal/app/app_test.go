package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"opftube/pkg/config"
	"opftube/pkg/database"
	"opftube/pkg/jwt"
	"opftube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New()
	db, err := database.NewSQLiteDB("file::memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		CORSOrigins:     []string{"http://localhost:3000"},
		UploadMaxBytes:  1 << 20,
		RateLimit:       300,
		RateLimitWindow: time.Minute,
	}
	return NewRouter(cfg, log, Deps{DB: db, JWT: jwt.NewService("test-secret")})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w, body := doJSON(t, r, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestRegisterCreateChannelFlow(t *testing.T) {
	r := setupRouter(t)

	w, body := doJSON(t, r, "POST", "/api/auth/register", "", gin.H{
		"name": "Ann", "email": "ann@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	userID := body["user"].(map[string]interface{})["id"].(string)

	w, _ = doJSON(t, r, "POST", "/api/auth/register", "", gin.H{
		"name": "Ann", "email": "ann@example.com", "password": "secret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = doJSON(t, r, "POST", "/api/channels", token, gin.H{"name": "Ann TV", "handle": "@anntv"})
	require.Equal(t, http.StatusCreated, w.Code)
	channelID := body["id"].(string)

	w, body = doJSON(t, r, "GET", "/api/auth/users/"+userID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, channelID, body["channel_id"])
	assert.NotContains(t, body, "password")

	w, body = doJSON(t, r, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, body["id"])
}

func TestAuthGates(t *testing.T) {
	r := setupRouter(t)

	w, _ := doJSON(t, r, "POST", "/api/videos", "", gin.H{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := doJSON(t, r, "POST", "/api/auth/register", "", gin.H{
		"name": "Bob", "email": "bob@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token := body["token"].(string)

	w, _ = doJSON(t, r, "GET", "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, "POST", "/api/categories", token, gin.H{"name": "Music"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublicListsStartEmpty(t *testing.T) {
	r := setupRouter(t)

	w, body := doJSON(t, r, "GET", "/api/videos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["total"])

	w, body = doJSON(t, r, "GET", "/api/search?q=anything", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["videos"])

	w, _ = doJSON(t, r, "GET", "/api/videos/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadWithoutStorage(t *testing.T) {
	r := setupRouter(t)

	w, body := doJSON(t, r, "POST", "/api/auth/register", "", gin.H{
		"name": "Cy", "email": "cy@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = doJSON(t, r, "POST", "/api/upload", body["token"].(string), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", body["error"])
}
