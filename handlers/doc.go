// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Contest-Hub API.

# Handler Types

Each handler is a struct holding the store collections it needs:

  - TokenHandler: token issuance
  - UserHandler: registration, profile and role management, role checks
  - ContestHandler: contest listing, search and lifecycle
  - ParticipateHandler: contest entries and winners

Handlers are created via constructor functions:

	userHandler := handlers.NewUserHandler(st.Users, auth.NewRoleResolver(st.Users))

Handler methods return an error instead of writing failures themselves and
are mounted through middleware.WithErrors.

# Update Semantics

Three kinds of update exist and are not interchangeable:

  - partial (PATCH /users/{id}): only fields present in the body are set
  - fixed subset (PATCH /contests/{id}): every field in
    models.ContestReplaceFields is set, missing ones to null
  - state flips (approve, winner, role): one field, no precondition

Updates and deletes that match nothing return 404; malformed ids return 400.

# Registration

POST /users checks for an existing email before inserting. The users store
also enforces a unique email, so a concurrent duplicate that slips past the
check gets the same {"message": "user already exists", "insertedId": null}
response instead of a second document.

# Contest Lifecycle

Contests are created pending and become approved only through
PATCH /contests/approved/{id}. Deleting a contest leaves its participation
records in place.
*/
package handlers
