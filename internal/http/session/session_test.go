package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret-key-32-bytes-long!!!", "booktracker_session", time.Hour)
}

// copyCookies переносит Set-Cookie из ответа в следующий запрос,
// имитируя поведение браузера.
func copyCookies(t *testing.T, rr *httptest.ResponseRecorder, req *http.Request) {
	t.Helper()
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		req.AddCookie(c)
	}
}

func TestManager_SetUserRoundTrip(t *testing.T) {
	manager := newTestManager()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, manager.SetUser(rr, req, "user-1"))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	copyCookies(t, rr, next)

	userID, ok := manager.UserID(next)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestManager_UserID_NoCookie(t *testing.T) {
	manager := newTestManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	userID, ok := manager.UserID(req)
	assert.False(t, ok)
	assert.Empty(t, userID)
}

func TestManager_UserID_TamperedCookie(t *testing.T) {
	manager := newTestManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "booktracker_session", Value: "forged-value"})

	userID, ok := manager.UserID(req)
	assert.False(t, ok)
	assert.Empty(t, userID)
}

func TestManager_UserID_ForeignSecret(t *testing.T) {
	manager := newTestManager()
	foreign := NewManager("another-secret-key-of-same-size!", "booktracker_session", time.Hour)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, foreign.SetUser(rr, req, "user-1"))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	copyCookies(t, rr, next)

	_, ok := manager.UserID(next)
	assert.False(t, ok)
}

func TestManager_Clear(t *testing.T) {
	manager := newTestManager()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, manager.SetUser(rr, req, "user-1"))

	logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	copyCookies(t, rr, logoutReq)

	logoutRR := httptest.NewRecorder()
	require.NoError(t, manager.Clear(logoutRR, logoutReq))

	cookies := logoutRR.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestManager_Clear_WithoutSession(t *testing.T) {
	manager := newTestManager()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)

	assert.NoError(t, manager.Clear(rr, req))
}
