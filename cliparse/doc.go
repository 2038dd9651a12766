// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first if present
(godotenv), so local development does not need exported variables.

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: Connection string or sqlite path (required)
  - DatabaseType: "postgres" (default) or "sqlite"
  - MinBirthYear: Oldest accepted year of birth (default: 2007)
  - MaxBirthYear: Youngest accepted year of birth (default: 2012)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-min-birth-year  Oldest accepted year of birth
	-max-birth-year  Youngest accepted year of birth

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	BIRTH_YEAR_MIN → -min-birth-year
	BIRTH_YEAR_MAX → -max-birth-year

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or
inconsistent:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be postgres or sqlite
  - the birth-year window must not be inverted
*/
package cliparse
