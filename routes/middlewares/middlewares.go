package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mbolis/formbox/httpx"
	"github.com/mbolis/formbox/session"
)

// Admin middleware rejects requests that do not carry an active admin
// bearer token.
func Admin(guard *session.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				httpx.ErrorJSON(w, http.StatusUnauthorized, "No token provided")
				return
			}

			err := guard.Verify(token)
			switch {
			case errors.Is(err, session.ErrNotAdmin):
				httpx.ErrorJSON(w, http.StatusForbidden, "Not authorized")
				return
			case err != nil:
				httpx.ErrorJSON(w, http.StatusUnauthorized, "Session expired or invalid")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return token, token != ""
}
