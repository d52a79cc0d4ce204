// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are resolved in three layers, later layers winning:

 1. a .env file in the working directory, if present (never overrides
    variables already set in the process environment)
 2. the process environment
 3. CLI flags

# Environment Variables

	PORT                 → -p       (default 5000)
	DATABASE_TYPE        → -t       mongo | sqlite | postgres (default mongo)
	DATABASE_URL         → -d
	DB_USER, DB_PASS, DB_HOST       used to build a mongodb+srv URI when
	                                DATABASE_URL is empty
	DB_NAME                         Mongo database name (default ContestDB)
	ACCESS_TOKEN_SECRET  → -secret  token signing secret (required)
	TOKEN_TTL                       token lifetime (default 720h)

# Validation

ParseFlags returns an error if:

  - the database type is unknown
  - no database URL can be determined
  - ACCESS_TOKEN_SECRET is missing
  - the port is out of range

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	tokens, err := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
*/
package cliparse
