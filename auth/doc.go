// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token issuance and role lookup.

# Tokens

TokenService signs principal claims with HS256 and a server secret:

	tokens, err := auth.NewTokenService(secret, auth.DefaultTokenTTL)
	token, err := tokens.Issue(auth.Claims{Email: "a@example.com"})
	claims, err := tokens.Verify(token)

Tokens expire after 30 days by default. They are stateless: nothing is
stored server-side and there is no revocation. Verify returns an error
wrapping ErrUnauthorized for any failure (malformed, expired, bad signature,
unexpected algorithm) so callers cannot leak the reason.

# Roles

A token proves identity only. The role embedded at issuance may be stale,
so privilege is always read from the users collection:

	resolver := auth.NewRoleResolver(st.Users)
	role, found, err := resolver.ResolveRole(ctx, claims.Email)

found is false when no user has the email. Callers treat that as "not
authorized", never as an error.
*/
package auth
