package middleware

import (
	"context"
	"net/http"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
)

// Cookie names for the credential pair.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// SessionResolver resolves a user from credential cookies. A non-empty
// second return value is a replacement access token to re-issue.
type SessionResolver interface {
	Resolve(ctx context.Context, accessToken, refreshToken string) (model.User, string, error)
}

// Authenticate resolves the current user from cookies and stores it in the
// request context. Unauthenticated requests pass through without a user;
// handlers decide whether to redirect.
type Authenticate struct {
	session        SessionResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(session SessionResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{session: session, contextManager: contextManager, logger: logger}
}

// Handle wraps next with cookie-based user resolution.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access := cookieValue(r, AccessCookie)
		refresh := cookieValue(r, RefreshCookie)
		if access == "" && refresh == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, newAccess, err := m.session.Resolve(r.Context(), access, refresh)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if newAccess != "" {
			SetAccessCookie(w, newAccess)
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetAccessCookie issues the short-lived access token cookie.
func SetAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// SetRefreshCookie issues the long-lived refresh token cookie.
func SetRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearSessionCookies drops both credential cookies on logout.
func ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}
