// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Lowest to highest precedence:

  - a .env file (default ./.env, optional; -env-file names another, which must exist)
  - process environment, parsed from the struct tags of Config
  - command-line flags

Empty values count as unset.

# Settings

	PORT                          -p       default 3318
	DATABASE_TYPE                 -t       sheets, sqlite or postgres (default sqlite)
	DATABASE_URL                  -d       default bonfire.db for sqlite
	GOOGLE_SHEET_ID               -sheet
	GOOGLE_SERVICE_ACCOUNT_EMAIL
	GOOGLE_PRIVATE_KEY                     "\n" escapes become newlines
	SEED_DEFAULT_ITEMS            -seed    default true

# Validation

  - the port must be 1-65535
  - postgres needs DATABASE_URL
  - sheets needs the sheet ID, service account email and private key
*/
package cliparse
