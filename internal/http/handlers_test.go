package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sujalbistaa/feedhub/internal/auth"
	"github.com/sujalbistaa/feedhub/internal/blob"
	"github.com/sujalbistaa/feedhub/internal/board"
	"github.com/sujalbistaa/feedhub/internal/config"
	"github.com/sujalbistaa/feedhub/internal/models"
	"github.com/sujalbistaa/feedhub/internal/ws"
)

const testAdminToken = "test-admin-token"

func init() {
	gin.SetMode(gin.TestMode)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

// newTestServer wires a full router over a fresh database. Each call gets
// its own rate limiter, so tests do not trip each other's budgets.
func newTestServer(t *testing.T) (*gin.Engine, *Env) {
	t.Helper()
	gdb := testDB(t)

	hub := ws.NewHub()
	go hub.Run()

	dir := t.TempDir()
	blobs, err := blob.NewDiskStore(dir, "/uploads")
	require.NoError(t, err)

	threads := board.NewThreadService(gdb, hub)
	warnings := board.NewWarningService(gdb)
	env := &Env{
		Threads:   threads,
		Reactions: board.NewReactionService(gdb, hub),
		Warnings:  warnings,
		News:      board.NewNewsService(gdb),
		Mod:       board.NewModeration(threads, warnings),
		Admins:    auth.NewAdminStore(gdb),
		Blobs:     blobs,
		Hub:       hub,
	}

	router := gin.New()
	SetupRoutes(router, config.Config{
		Port:       "0",
		CORSOrigin: "*",
		AdminToken: testAdminToken,
		UploadDir:  dir,
	}, env)
	return router, env
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndListThreads(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, "POST", "/api/threads", gin.H{"content": "Great service!", "rating": 5}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Thread
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "Great service!", created.Content)
	require.Equal(t, models.ThreadActive, created.Status)

	w = doJSON(t, router, "GET", "/api/threads", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []models.Thread
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
}

func TestCreateThreadRejectsBadRating(t *testing.T) {
	for _, rating := range []int{0, 6} {
		router, _ := newTestServer(t)
		w := doJSON(t, router, "POST", "/api/threads", gin.H{"content": "meh", "rating": rating}, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
	}
}

func TestVoteCookieToggle(t *testing.T) {
	router, env := newTestServer(t)
	thread, err := env.Threads.Submit("vote here", 4, "", "")
	require.NoError(t, err)

	path := fmt.Sprintf("/api/threads/%d/vote", thread.ID)

	w := doJSON(t, router, "POST", path, gin.H{"type": "like"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var session string
	for _, ck := range cookies {
		if ck.Name == voteCookieName {
			session = ck.Value
		}
	}
	require.NotEmpty(t, session)

	var counts board.Counts
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	require.Equal(t, board.Counts{Likes: 1}, counts)

	// Same identity, same kind: toggle off.
	w = doJSON(t, router, "POST", path, gin.H{"type": "like"},
		map[string]string{"Cookie": voteCookieName + "=" + session})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	require.Equal(t, board.Counts{}, counts)
}

func TestAdminRoutesAreGuarded(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, "GET", "/api/admin/threads", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "GET", "/api/admin/threads", nil, map[string]string{"X-Admin-Token": "wrong"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "GET", "/api/admin/threads", nil, map[string]string{"X-Admin-Token": testAdminToken})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAdminModerationFlow(t *testing.T) {
	router, env := newTestServer(t)
	adminHdr := map[string]string{"X-Admin-Token": testAdminToken}

	thread, err := env.Threads.Submit("rude thread", 1, "", "")
	require.NoError(t, err)

	w := doJSON(t, router, "POST", fmt.Sprintf("/api/admin/threads/%d/archive", thread.ID), nil, adminHdr)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/threads", nil, nil)
	var listed []models.Thread
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Empty(t, listed)

	w = doJSON(t, router, "POST", "/api/admin/warnings", gin.H{
		"anonymousId":  thread.AnonymousID,
		"warningLevel": "high",
		"reason":       "abusive content",
		"threadId":     thread.ID,
		"adminId":      1,
	}, adminHdr)
	require.Equal(t, http.StatusCreated, w.Code)

	// The audit listing carries the thread and its author's badge.
	w = doJSON(t, router, "GET", "/api/admin/threads", nil, adminHdr)
	require.Equal(t, http.StatusOK, w.Code)
	var audit []AuditThread
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &audit))
	require.Len(t, audit, 1)
	require.Equal(t, models.ThreadArchived, audit[0].Status)
	require.Equal(t, models.WarningHigh, audit[0].Warnings[thread.AnonymousID].WarningLevel)

	// Public badge lookup resolves the same warning.
	w = doJSON(t, router, "GET", "/api/warnings/"+thread.AnonymousID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var badge struct {
		Warning *models.UserWarning `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &badge))
	require.NotNil(t, badge.Warning)
	require.Equal(t, models.WarningHigh, badge.Warning.WarningLevel)
}

func TestAdminLogin(t *testing.T) {
	router, env := newTestServer(t)
	adminHdr := map[string]string{"X-Admin-Token": testAdminToken}

	_, err := env.Admins.Create("mod@example.com", "mod", "hunter22")
	require.NoError(t, err)

	w := doJSON(t, router, "POST", "/api/admin/login",
		gin.H{"email": "mod@example.com", "password": "hunter22"}, adminHdr)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/api/admin/login",
		gin.H{"email": "mod@example.com", "password": "nope"}, adminHdr)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	t.Run("accepts an image", func(t *testing.T) {
		router, _ := newTestServer(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "image", "shot.png", pngHeader))
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			URL string `json:"url"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Contains(t, resp.URL, "/uploads/")
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		router, _ := newTestServer(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "image", "nope.txt", []byte("plain text payload")))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing file", func(t *testing.T) {
		router, _ := newTestServer(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "other", "shot.png", pngHeader))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNewsEndpoints(t *testing.T) {
	router, _ := newTestServer(t)
	adminHdr := map[string]string{"X-Admin-Token": testAdminToken}

	w := doJSON(t, router, "POST", "/api/admin/news",
		gin.H{"title": "Welcome", "content": "Board is live", "displayOrder": 1}, adminHdr)
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.News
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = doJSON(t, router, "GET", "/api/news", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.News
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/admin/news/%d", item.ID), nil, adminHdr)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/news", nil, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Empty(t, items)
}
