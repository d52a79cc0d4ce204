// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and document constants for the API.

# Request Types

  - TokenRequest: email, name, role (claims for POST /jwt)
  - UpdateRoleRequest: role

# Response Types

  - TokenResponse: token
  - AdminCheckResponse / CreatorCheckResponse: boolean role checks
  - MessageResponse: message
  - UserExistsResponse: message, insertedId (always null)
  - ErrorResponse: message, errors

# Documents

Users, contests and participation records are schemaless documents
(store.Document). Field names used by the server are exported as Field*
constants; everything else in a request body is stored as sent.

Principal roles:

	RoleGuest   = "guest"
	RoleCreator = "creator"
	RoleAdmin   = "admin"

Participation roles:

	RoleParticipant = "participant"
	RoleWinner      = "winner"

Contest status:

	StatusPending  = "pending"
	StatusApproved = "approved"
*/
package models
