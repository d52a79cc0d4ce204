// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every request gets an id, taken from X-Request-ID or
generated, echoed in the response and available via RequestIDFromContext.

# Errors

Handlers return errors instead of writing them:

	mux.HandleFunc("GET /contests/{id}", middleware.WithErrors(h.GetContest))

WriteError is the only place an error becomes a response, with body
{"message": ..., "errors": ...}. auth.ErrUnauthorized maps to 401,
ErrForbidden to 403, store.ErrNotFound to 404, store.ErrInvalidID and
BadRequest to 400, *HTTPError to its own status and anything else to 500.

# Access Guard

Two stages, always in this order:

	middleware.Chain(h,
		middleware.Authenticate(tokens),
		middleware.RequireRole(resolver, models.RoleAdmin),
	)

Authenticate verifies "Authorization: Bearer <token>" and stores the claims
in the request context (ClaimsFromContext). RequireRole looks up the
caller's current role in the user store on every request; the role inside
the token is never consulted, because roles can change after issuance.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ParseJSONBody(r, &req)
	doc, err := middleware.ParseDocument(r)
*/
package middleware
