package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Utkarsh4517/fast-chat/internal/store/sqlstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	st, err := sqlstore.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return &AuthHandler{Store: st, Log: testLogger()}
}

func postUser(t *testing.T, h *AuthHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/users/", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)
	return rr
}

func TestCreateUser(t *testing.T) {
	h := newAuthHandler(t)

	rr := postUser(t, h, "alice", "secret")
	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		UserID   int    `json:"user_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.NotZero(t, out.UserID)
	assert.Equal(t, "alice", out.Username)
}

func TestCreateUserDuplicateIsConflict(t *testing.T) {
	h := newAuthHandler(t)

	require.Equal(t, http.StatusOK, postUser(t, h, "alice", "secret").Code)

	rr := postUser(t, h, "alice", "other")
	assert.Equal(t, http.StatusConflict, rr.Code,
		"duplicate username must be a conflict, not a generic failure")
}

func TestCreateUserRejectsMissingFields(t *testing.T) {
	h := newAuthHandler(t)

	rr := postUser(t, h, "", "secret")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postUser(t, h, "alice", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func postToken(t *testing.T, h *AuthHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	return rr
}

func TestLogin(t *testing.T) {
	h := newAuthHandler(t)
	require.Equal(t, http.StatusOK, postUser(t, h, "alice", "secret").Code)

	rr := postToken(t, h, "alice", "secret")
	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, "bearer", out.TokenType)
	assert.NotEmpty(t, out.AccessToken)
}

func TestLoginBadCredentials(t *testing.T) {
	h := newAuthHandler(t)
	require.Equal(t, http.StatusOK, postUser(t, h, "alice", "secret").Code)

	assert.Equal(t, http.StatusBadRequest, postToken(t, h, "alice", "wrong").Code)
	assert.Equal(t, http.StatusBadRequest, postToken(t, h, "nobody", "secret").Code)
}
