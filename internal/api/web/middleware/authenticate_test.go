package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozyrev/sneakershop/internal/api/web/webctx"
	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
)

type stubResolver struct {
	user      model.User
	newAccess string
	err       error

	gotAccess  string
	gotRefresh string
}

func (s *stubResolver) Resolve(_ context.Context, accessToken, refreshToken string) (model.User, string, error) {
	s.gotAccess = accessToken
	s.gotRefresh = refreshToken
	return s.user, s.newAccess, s.err
}

func TestAuthenticate_SetsUserFromCookies(t *testing.T) {
	user := model.User{ID: uuid.New(), Name: "A"}
	resolver := &stubResolver{user: user}
	ctxMgr := webctx.NewManager()

	var gotUser model.User
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotOK = ctxMgr.GetUserFromContext(r.Context())
	})

	m := NewAuthenticate(resolver, ctxMgr, logger.New(0))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "acc"})
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "ref"})

	m.Handle(next).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, gotOK)
	assert.Equal(t, user, gotUser)
	assert.Equal(t, "acc", resolver.gotAccess)
	assert.Equal(t, "ref", resolver.gotRefresh)
}

func TestAuthenticate_ReissuesRotatedAccessCookie(t *testing.T) {
	resolver := &stubResolver{user: model.User{ID: uuid.New()}, newAccess: "fresh"}
	m := NewAuthenticate(resolver, webctx.NewManager(), logger.New(0))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "ref"})

	rec := httptest.NewRecorder()
	m.Handle(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, AccessCookie, cookies[0].Name)
	assert.Equal(t, "fresh", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuthenticate_NoCookiesPassesThrough(t *testing.T) {
	resolver := &stubResolver{err: model.ErrNotFound}
	ctxMgr := webctx.NewManager()
	m := NewAuthenticate(resolver, ctxMgr, logger.New(0))

	var called bool
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, gotOK = ctxMgr.GetUserFromContext(r.Context())
	})

	m.Handle(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.False(t, gotOK)
	// Resolve is skipped entirely when no credentials came in.
	assert.Empty(t, resolver.gotAccess)
	assert.Empty(t, resolver.gotRefresh)
}

func TestAuthenticate_FailedResolvePassesThroughWithoutUser(t *testing.T) {
	resolver := &stubResolver{err: model.ErrNotFound}
	ctxMgr := webctx.NewManager()
	m := NewAuthenticate(resolver, ctxMgr, logger.New(0))

	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = ctxMgr.GetUserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "stale"})

	m.Handle(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, gotOK)
}

func TestClearSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookies(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}
