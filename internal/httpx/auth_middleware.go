package httpx

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/usecase"
)

// authenticate resolves the identity behind the Authorization header. All
// failure modes wrap usecase.ErrUnauthorized; the wrapped detail is for the
// log only and must never reach the response body.
func authenticate(r *http.Request, secret string, users usecase.UserRepository) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("%w: missing bearer token", usecase.ErrUnauthorized)
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := auth.ParseToken(secret, token)
	if err != nil {
		return "", fmt.Errorf("%w: token rejected: %v", usecase.ErrUnauthorized, err)
	}

	// the subject may have been removed since the token was issued
	if _, err := users.GetByUsername(r.Context(), claims.Sub); err != nil {
		return "", fmt.Errorf("%w: subject lookup failed: %v", usecase.ErrUnauthorized, err)
	}

	return claims.Sub, nil
}

// AuthMiddleware extracts and verifies the bearer token, then confirms the
// subject still exists in the credential store. Every failure mode gets the
// same 401 body; the actual cause goes only to the log.
func AuthMiddleware(secret string, users usecase.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := authenticate(r, secret, users)
			if err != nil {
				log.Printf("auth denied request_id=%s path=%s cause=%v", RequestIDFrom(r), r.URL.Path, err)
				w.Header().Set("WWW-Authenticate", "Bearer")
				JSONError(w, http.StatusUnauthorized, "could not validate credentials")
				return
			}

			ctx := ContextWithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
