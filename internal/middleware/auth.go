package middleware

import (
	"context"
	"net/http"

	"pressroom/internal/models"
	"pressroom/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// UserKey is the context key for the current user.
	UserKey contextKey = "user"
)

// LoadUser re-reads the session slot on every request and stores the
// current user in the request context. Downstream handlers access it via
// UserFromCtx(). This middleware does NOT enforce authentication — it just
// loads the identity if one exists. Re-reading per request matters: the
// slot may have changed since the last page load (another tab logged out,
// for example), and views must never hold a stale identity.
func LoadUser(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := store.Get(r.Context(), r)
			if err != nil {
				// Log path handled upstream; treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			if user != nil {
				ctx := context.WithValue(r.Context(), UserKey, user)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser redirects unauthenticated visitors to the login page.
// Must be applied after LoadUser in the middleware chain.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromCtx(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns 403 if the current user is not an admin.
// Must be applied after LoadUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromCtx(r.Context())
		if user == nil || user.Role != models.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFromCtx extracts the current user from the request context.
// Returns nil if no session is loaded (the visitor is anonymous).
func UserFromCtx(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}
