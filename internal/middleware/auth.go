package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/remote"
)

// SessionName is the browser cookie holding the remote session secret
const SessionName = "iz_session"

// SessionSecretField is the session value key for the remote secret
const SessionSecretField = "secret"

const userKey contextKey = "authUser"

// verificationGrace tolerates eventual-consistency lag in verification
// status propagation: an unverified result is re-checked once after this
// delay before the request is rejected
const verificationGrace = time.Second

// IdentityResolver is the interface that wraps identity resolution for
// authenticated requests.
type IdentityResolver interface {
	// Current resolves the identity and role for the session in the context.
	Current(ctx context.Context) (*models.AuthUser, error)
}

// AuthMiddleware reads the session cookie, authenticates the remote
// session, and puts the resolved user into the request context.
// Every request pays the identity + teams round trips; role is never
// cached across requests.
func AuthMiddleware(cookies sessions.Store, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, _ := cookies.Get(r, SessionName)
			secret, ok := cookie.Values[SessionSecretField].(string)
			if !ok || secret == "" {
				respondAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := remote.WithSessionSecret(r.Context(), secret)
			user, err := resolver.Current(ctx)
			if err != nil {
				respondAuthError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx = context.WithValue(ctx, userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose resolved user is not an admin.
// Must run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			respondAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if user.Role != models.RoleAdmin {
			respondAuthError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireVerified rejects unverified users from all routes except the
// verification endpoints. A freshly verified user may still read as
// unverified for a moment, so an unverified result is re-resolved once
// after a short grace delay.
func RequireVerified(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				respondAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !user.EmailVerified {
				time.Sleep(verificationGrace)
				fresh, err := resolver.Current(r.Context())
				if err != nil || !fresh.EmailVerified {
					respondAuthError(w, http.StatusForbidden, "email verification required")
					return
				}
				r = r.WithContext(context.WithValue(r.Context(), userKey, fresh))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(ctx context.Context) (*models.AuthUser, bool) {
	user, ok := ctx.Value(userKey).(*models.AuthUser)
	return user, ok
}

// WithUser returns a context carrying the given user; used by tests and
// by handlers that re-resolve identity mid-request
func WithUser(ctx context.Context, user *models.AuthUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func respondAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
