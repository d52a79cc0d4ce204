// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/danielhkuo/contest-hub/auth"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RoleLookup returns the stored role of the principal with email.
type RoleLookup interface {
	ResolveRole(ctx context.Context, email string) (role string, found bool, err error)
}

type claimsKey struct{}

// WithClaims attaches verified claims to ctx.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims attached by Authenticate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

// Authenticate requires "Authorization: Bearer <token>" and attaches the
// verified claims to the request context.
func Authenticate(tokens TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				WriteError(w, r, auth.ErrUnauthorized)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				WriteError(w, r, auth.ErrUnauthorized)
				return
			}

			next(w, r.WithContext(WithClaims(r.Context(), claims)))
		}
	}
}

// RequireRole lets the request through only if the caller's stored role is
// one of allowed. It must run after Authenticate. The role in the token is
// ignored.
func RequireRole(roles RoleLookup, allowed ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				WriteError(w, r, auth.ErrUnauthorized)
				return
			}

			role, found, err := roles.ResolveRole(r.Context(), claims.Email)
			if err != nil {
				WriteError(w, r, err)
				return
			}
			if !found || !slices.Contains(allowed, role) {
				WriteError(w, r, ErrForbidden)
				return
			}

			next(w, r)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
