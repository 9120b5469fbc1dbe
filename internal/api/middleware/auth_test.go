package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/auth"
)

type stubResolver struct {
	users map[string]auth.User
}

func (s *stubResolver) ResolveToken(_ context.Context, token string) (auth.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return auth.User{}, auth.ErrInvalidToken
}

func TestRequireUserPassesResolvedUser(t *testing.T) {
	resolver := &stubResolver{users: map[string]auth.User{
		"tok-1": {ID: "u1", Email: "a@x.com"},
	}}

	var seen auth.User
	var seenOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, seenOK = UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	RequireUser(resolver)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, seenOK)
	require.Equal(t, "u1", seen.ID)
	require.Equal(t, "a@x.com", seen.Email)
}

func TestRequireUserRejectsMissingHeader(t *testing.T) {
	resolver := &stubResolver{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequireUser(resolver)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestRequireUserRejectsUnknownToken(t *testing.T) {
	resolver := &stubResolver{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	RequireUser(resolver)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserFromContextMissing(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	require.False(t, ok)
}
