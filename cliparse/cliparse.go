package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	MinBirthYear int
	MaxBirthYear int
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Optional .env for local development
	_ = godotenv.Load()

	fs := flag.NewFlagSet("teen-poll", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.IntVar(&cfg.MinBirthYear, "min-birth-year", 0, "Oldest accepted year of birth")
	fs.IntVar(&cfg.MaxBirthYear, "max-birth-year", 0, "Youngest accepted year of birth")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("database type must be postgres or sqlite")
	}

	// Accepted participant birth-year window
	if cfg.MinBirthYear == 0 {
		v, err := intEnv("BIRTH_YEAR_MIN", 2007)
		if err != nil {
			return Config{}, err
		}
		cfg.MinBirthYear = v
	}
	if cfg.MaxBirthYear == 0 {
		v, err := intEnv("BIRTH_YEAR_MAX", 2012)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxBirthYear = v
	}
	if cfg.MinBirthYear > cfg.MaxBirthYear {
		return Config{}, errors.New("min birth year must not exceed max birth year")
	}

	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback, errors.New("invalid " + key + " env variable")
	}
	return v, nil
}
