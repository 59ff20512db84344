package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL  string `validate:"required"`
	DBMaxConns   int32  `validate:"gte=1"`
	Port         string `validate:"required,numeric"`
	IsProduction bool
	JWTSecret    string `validate:"required,min=16"`
	LogLevel     string `validate:"oneof=debug info warn error"`

	// Entry numbering
	SequenceBackend  string `validate:"oneof=postgres bolt"`
	SequenceBoltPath string `validate:"required_if=SequenceBackend bolt"`

	// Statement generation
	RulesDir         string
	SnapshotCacheTTL time.Duration `validate:"gte=0"`

	// HTTP
	RateLimit          string `validate:"required"` // ulule/limiter format, e.g. "100-M"
	CORSAllowedOrigins []string

	MigrationsPath string `validate:"required"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SEQUENCE_BACKEND", "postgres")
	viper.SetDefault("SEQUENCE_BOLT_PATH", "sequences.db")
	viper.SetDefault("RULES_DIR", "")
	viper.SetDefault("SNAPSHOT_CACHE_TTL", "15m")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		DBMaxConns:       viper.GetInt32("DB_MAX_CONNS"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		LogLevel:         strings.ToLower(viper.GetString("LOG_LEVEL")),
		SequenceBackend:  strings.ToLower(viper.GetString("SEQUENCE_BACKEND")),
		SequenceBoltPath: viper.GetString("SEQUENCE_BOLT_PATH"),
		RulesDir:         viper.GetString("RULES_DIR"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
		MigrationsPath:   viper.GetString("MIGRATIONS_PATH"),
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	ttlStr := viper.GetString("SNAPSHOT_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 15 * time.Minute
		log.Printf("Warning: Invalid value for SNAPSHOT_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.SnapshotCacheTTL = ttl

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
