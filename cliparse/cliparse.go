package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported values for DATABASE_TYPE / -t.
const (
	DatabaseMongo    = "mongo"
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port         int           `env:"PORT" envDefault:"5000"`
	DatabaseType string        `env:"DATABASE_TYPE" envDefault:"mongo"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	DBUser       string        `env:"DB_USER"`
	DBPass       string        `env:"DB_PASS"`
	DBHost       string        `env:"DB_HOST" envDefault:"cluster0.8p2aqm7.mongodb.net"`
	DBName       string        `env:"DB_NAME" envDefault:"ContestDB"`
	TokenSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
}

// ParseFlags loads .env (if present), reads the environment, then applies
// command line overrides and validates the result.
func ParseFlags(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	var (
		port         int
		databaseURL  string
		databaseType string
		secret       string
	)

	fs := flag.NewFlagSet("contest-hub", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&databaseURL, "d", "", "Database URL")
	fs.StringVar(&databaseType, "t", "", "Database type (mongo, sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&secret, "secret", "", "Token signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// CLI wins over env
	if port != 0 {
		cfg.Port = port
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if databaseType != "" {
		cfg.DatabaseType = databaseType
	}
	if secret != "" {
		cfg.TokenSecret = secret
	}

	switch cfg.DatabaseType {
	case DatabaseMongo, DatabaseSQLite, DatabasePostgres:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" && cfg.DatabaseType == DatabaseMongo && cfg.DBUser != "" {
		cfg.DatabaseURL = MongoURI(cfg.DBUser, cfg.DBPass, cfg.DBHost)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d, DATABASE_URL or DB_USER/DB_PASS)")
	}

	// Secrets - MUST be provided
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("ACCESS_TOKEN_SECRET required")
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	return cfg, nil
}

// MongoURI builds an SRV connection string for an Atlas style cluster.
func MongoURI(user, pass, host string) string {
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String()
}
