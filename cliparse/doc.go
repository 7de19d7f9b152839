// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

The Config is built once at process start and passed by value to every
component that needs it. Nothing reads configuration from globals.

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: PostgreSQL connection string or SQLite file path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Secret for signing voter tokens (required)
  - TokenTTL: Voter token lifetime (default: 24h)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-jwt-secret   Token signing secret
	-token-ttl    Token lifetime (Go duration)
	-env          Dotenv file to load (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	JWT_SECRET    → -jwt-secret
	TOKEN_TTL     → -token-ttl

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the dotenv file. A missing dotenv
file is not an error.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
