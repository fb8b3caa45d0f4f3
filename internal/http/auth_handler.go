package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

type AuthHandler struct {
	users    usecase.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthHandler(users usecase.UserRepository, secret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = auth.DefaultTokenTTL
	}
	return &AuthHandler{users: users, secret: secret, tokenTTL: tokenTTL}
}

// IssueToken handles POST /token. The body is form-encoded username and
// password; a successful login returns a bearer token. Failures are a
// uniform 401 so the response never reveals which part was wrong.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		httpx.JSONError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, usecase.ErrNotFound) {
			log.Printf("login lookup failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
			httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		httpx.JSONError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	if !auth.VerifyPassword(user.HashedPassword, password) {
		httpx.JSONError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	token, _, err := auth.GenerateToken(h.secret, user.Username, h.tokenTTL)
	if err != nil {
		log.Printf("token generation failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
