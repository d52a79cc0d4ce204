// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Contest-Hub API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, tokens)

# Endpoints

Liveness:

	GET /        - "Contest-Hub Server Started"
	GET /health  - "Contest-Hub is running...."

Tokens (public):

	POST /jwt - Issue a token for the posted claims

Users:

	GET    /users                  - List users (admin)
	POST   /users                  - Register (public, idempotent per email)
	GET    /users/admin/{email}    - Is the caller an admin (own email only)
	GET    /users/creator/{email}  - Is the caller a creator (own email only)
	PATCH  /users/updateRole/{id}  - Change role (admin)
	PATCH  /users/{id}             - Partial profile update (authenticated)
	DELETE /users/{id}             - Remove user (admin)

Contests:

	GET    /contests?email=         - List, optionally by owner (public)
	GET    /contests/search?query=  - Tag search, name and image only (public)
	GET    /contests/{id}           - Single contest (public)
	POST   /contests                - Create, starts pending (creator)
	PATCH  /contests/{id}           - Replace the editable fields (creator)
	PATCH  /contests/approved/{id}  - Approve (admin)
	DELETE /contests/{id}           - Remove (admin or creator)

Participation:

	GET   /participates?email=       - List by creator or participant (authenticated)
	POST  /participates              - Enter a contest (authenticated)
	PATCH /participates/winner/{id}  - Mark winner (creator)

Any other method/path gets 404 {"message": "Can't find <path> on the server"}.

# Guards

Every route is wrapped with middleware.WithLogging; the JSON routes are also
wrapped with middleware.WithErrors.
Authenticated routes add middleware.Authenticate; role routes add
middleware.RequireRole after it, which checks the role currently stored for
the caller rather than the one in the token.
*/
package router
