// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Contest-Hub API server.

Contest-Hub is the backend of a contest platform: users register, creators
publish contests that admins approve, participants enter them and creators
pick winners. Requests are authenticated with HS256 bearer tokens; privileged
routes re-check the caller's role in the user store on every request.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ACCESS_TOKEN_SECRET=... DB_USER=... DB_PASS=... go run .

Or against a local database:

	go run . -t sqlite -d "file:contests.db" -secret dev-secret
	go run . -t postgres -d "postgres://..." -secret dev-secret

# Configuration

Required settings:

  - ACCESS_TOKEN_SECRET (-secret): token signing secret
  - DATABASE_URL (-d), or DB_USER/DB_PASS for the default MongoDB cluster

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): mongo, sqlite or postgres (default: mongo)
  - DB_HOST, DB_NAME, TOKEN_TTL

A .env file in the working directory is loaded first if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (tokens, users, contests, participates)
  - router: Route definitions and guard composition using Go 1.22+ routing
  - middleware: Logging, CORS, error translation, authentication and role guard
  - models: Roles, field names, request/response types
  - auth: Token service and role resolver
  - store: Document store abstraction
  - store/mongostore: MongoDB backend
  - db: SQLite/PostgreSQL backend
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
