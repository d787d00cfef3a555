package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/mbolis/formbox/app"
	"github.com/mbolis/formbox/httpx"
	"github.com/mbolis/formbox/log"
	"github.com/mbolis/formbox/routes/middlewares"
	"github.com/mbolis/formbox/session"
)

func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Password string `json:"password"`
		}{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil || body.Password == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "admin.login.validate", "Password is required")
			return
		}

		token, err := app.Guard.Login(body.Password)
		if errors.Is(err, session.ErrInvalidPassword) {
			httpx.LogStatusMsg(w, http.StatusUnauthorized, log.DebugLevel, "admin.login.password", "Invalid password")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "admin.login", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message":   "Login successful",
			"token":     token,
			"expiresIn": shortDuration(app.Guard.TTL()),
		})
	}
}

func Logout(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := middlewares.BearerToken(r); ok {
			app.Guard.Logout(token)
		}

		render.JSON(w, r, map[string]any{
			"message": "Logout successful",
		})
	}
}

// VerifySession only runs behind the Admin middleware, so reaching it means
// the session is valid.
func VerifySession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"authenticated": true,
			"message":       "Session is valid",
		})
	}
}

// shortDuration renders 24h0m0s as "24h".
func shortDuration(d time.Duration) string {
	s := d.String()
	s = strings.TrimSuffix(s, "0s")
	s = strings.TrimSuffix(s, "0m")
	return s
}
