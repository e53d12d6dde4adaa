package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Utkarsh4517/fast-chat/internal/store"
)

type AuthHandler struct {
	Store store.Store
	Log   *slog.Logger
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1"`
}

// CreateUser handles POST /users/. Duplicate usernames are a conflict, never
// collapsed into a generic failure, and the existing account is untouched.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := h.Store.CreateUser(r.Context(), req.Username, string(hashed))
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "Username already registered")
			return
		}
		h.Log.Error("create user", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// Login handles POST /token with form fields username and password, as the
// original token endpoint did. The returned token is opaque to this service.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.Store.GetUserByUsername(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Incorrect username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		writeError(w, http.StatusBadRequest, "Incorrect username or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": user.Username,
		"token_type":   "bearer",
	})
}
