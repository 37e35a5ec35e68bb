package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nikolayk812/vatmoss/internal/domain"
)

type Config struct {
	Environment string
	ListenAddr  string
	DatabaseURL string
	LogLevel    string
	// Migrate applies the embedded schema migrations on startup.
	Migrate bool

	Source     string
	SourceName string

	EstablishmentCountry string
	ReportingRegion      []string
}

// Load reads configuration from the environment and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:          getenv("APP_ENV", "development"),
		ListenAddr:           getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:             getenv("LOG_LEVEL", "info"),
		Migrate:              getenvBool("DATABASE_MIGRATE", true),
		Source:               getenv("MOSS_SOURCE", "pg"),
		SourceName:           getenv("MOSS_SOURCE_NAME", "Postgres order store"),
		EstablishmentCountry: strings.ToUpper(strings.TrimSpace(os.Getenv("MOSS_ESTABLISHMENT_COUNTRY"))),
		ReportingRegion:      getenvList("MOSS_REPORTING_REGION", domain.EUMemberStates),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	if c.EstablishmentCountry == "" {
		return fmt.Errorf("MOSS_ESTABLISHMENT_COUNTRY not set")
	}

	if err := domain.ValidateCountry(c.EstablishmentCountry); err != nil {
		return fmt.Errorf("MOSS_ESTABLISHMENT_COUNTRY: %w", err)
	}

	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

func getenvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
