// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/bonfire/auth"
)

// Backends
const (
	BackendSheets   = "sheets"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// DefaultSQLitePath is used when sqlite is selected without a DATABASE_URL
const DefaultSQLitePath = "bonfire.db"

type Config struct {
	Port             int    `env:"PORT" envDefault:"3318"`
	DatabaseType     string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	DatabaseURL      string `env:"DATABASE_URL"`
	SheetID          string `env:"GOOGLE_SHEET_ID"`
	ServiceEmail     string `env:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	PrivateKey       string `env:"GOOGLE_PRIVATE_KEY"`
	SeedDefaultItems bool   `env:"SEED_DEFAULT_ITEMS" envDefault:"true"`
}

// ServiceAccount returns the spreadsheet credential
func (c Config) ServiceAccount() auth.ServiceAccount {
	return auth.ServiceAccount{Email: c.ServiceEmail, PrivateKey: c.PrivateKey}
}

// ParseFlags builds the config from a .env file, the environment and flags,
// in increasing precedence
func ParseFlags(args []string) (Config, error) {
	var (
		port     int
		dbURL    string
		dbType   string
		sheetID  string
		seed     bool
		envFile  string
		explicit = map[string]bool{}
	)

	fs := flag.NewFlagSet("bonfire", flag.ContinueOnError)

	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&dbURL, "d", "", "Database URL (sqlite path or postgres DSN)")
	fs.StringVar(&dbType, "t", "", "Backend type (sheets, sqlite or postgres)")
	fs.StringVar(&sheetID, "sheet", "", "Google spreadsheet ID")
	fs.BoolVar(&seed, "seed", true, "Seed default needed items on first start")
	fs.StringVar(&envFile, "env-file", ".env", "Path to a .env file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	environment, err := loadEnvironment(envFile, explicit["env-file"])
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	// Flags override env
	if explicit["p"] {
		cfg.Port = port
	}
	if explicit["d"] {
		cfg.DatabaseURL = dbURL
	}
	if explicit["t"] {
		cfg.DatabaseType = dbType
	}
	if explicit["sheet"] {
		cfg.SheetID = sheetID
	}
	if explicit["seed"] {
		cfg.SeedDefaultItems = seed
	}

	cfg.DatabaseType = strings.ToLower(strings.TrimSpace(cfg.DatabaseType))
	cfg.PrivateKey = auth.NormalizePrivateKey(cfg.PrivateKey)
	if cfg.DatabaseType == BackendSQLite && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultSQLitePath
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the port and the settings the chosen backend needs
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.DatabaseType {
	case BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case BackendSheets:
		var missing []string
		if c.SheetID == "" {
			missing = append(missing, "GOOGLE_SHEET_ID")
		}
		if c.ServiceEmail == "" {
			missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_EMAIL")
		}
		if c.PrivateKey == "" {
			missing = append(missing, "GOOGLE_PRIVATE_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("sheets backend requires %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("invalid DATABASE_TYPE %q (want sheets, sqlite or postgres)", c.DatabaseType)
	}
	return nil
}

// loadEnvironment merges the .env file under the process environment.
// A missing default file is fine; a missing file named by -env-file is not.
// Empty values count as unset.
func loadEnvironment(path string, required bool) (map[string]string, error) {
	merged := map[string]string{}

	fileEnv, err := godotenv.Read(path)
	switch {
	case err == nil:
		for k, v := range fileEnv {
			if v != "" {
				merged[k] = v
			}
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && v != "" {
			merged[k] = v
		}
	}
	return merged, nil
}
