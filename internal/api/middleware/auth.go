package middleware

import (
	"context"
	"net/http"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/apierror"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/auth"
)

type contextKeyUser string

const userKey contextKeyUser = "user"

// TokenResolver maps a bearer token to the user it authenticates.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (auth.User, error)
}

// RequireUser rejects requests without a valid bearer token and puts the
// authenticated user on the request context. Every protected route goes
// through this single gate.
func RequireUser(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", err)
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", err)
				return
			}

			ctx := ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithUser adds the authenticated user to a context.
func ContextWithUser(ctx context.Context, user auth.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the authenticated user from the request context.
func UserFromContext(ctx context.Context) (auth.User, bool) {
	user, ok := ctx.Value(userKey).(auth.User)
	return user, ok
}
