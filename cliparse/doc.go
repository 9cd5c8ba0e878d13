// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseURL: PostgreSQL connection string (required)
  - RedisURL: Redis URL for draw-completed events (optional)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - GroupSlugSalt: Secret for share slug generation (required)

# CLI Flags

	-p           Server port
	-d           Database URL
	-r           Redis URL
	-c           Path to YAML config file
	--admin-salt Admin key salt
	--slug-salt  Group slug salt

# Environment Variables

Flags fall back to environment variables, which fall back to the YAML
config file when -c (or CONFIG_FILE) is set:

	PORT            → -p
	DATABASE_URL    → -d
	REDIS_URL       → -r
	CONFIG_FILE     → -c
	ADMIN_KEY_SALT  → --admin-salt
	GROUP_SLUG_SALT → --slug-salt

# YAML Config File

	port: 3319
	database_url: postgres://...
	redis_url: redis://localhost:6379/0
	admin_key_salt: ...
	group_slug_salt: ...

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_KEY_SALT must be provided
  - GROUP_SLUG_SALT must be provided
*/
package cliparse
