package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Storage    StorageConfig
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Search     SearchConfig
	Logging    LoggingConfig
	Ollama     OllamaConfig
	OpenRouter OpenRouterConfig
	Contact    ContactConfig
	Embedding  EmbeddingConfig
}

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// StorageConfig selects the catalog and conversation backend
type StorageConfig struct {
	Driver string
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence over the fields below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	RequestTimeout time.Duration
	ComposeTimeout time.Duration // budget for the generator chain of one agent query
}

// SearchConfig holds result caps for the different lookup variants
type SearchConfig struct {
	QueryLimit          int
	ListLimit           int
	RecommendationLimit int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// OllamaConfig configures the primary, locally executed text generator
type OllamaConfig struct {
	Command string
	Model   string
	Timeout time.Duration
	Enabled bool
}

// OpenRouterConfig configures the secondary, OpenAI-compatible chat provider
type OpenRouterConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	Enabled     bool
}

// ContactConfig bounds the owner-contact simulation
type ContactConfig struct {
	MinDelay            time.Duration
	MaxDelay            time.Duration
	FollowUpProbability float64
}

// EmbeddingConfig describes the vector column on the properties table
type EmbeddingConfig struct {
	Dimensions int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "realestate_agent"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 10000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
			AllowedMethods: getEnvAsList("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnvAsList("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 120*time.Second),
			ComposeTimeout: getEnvAsDuration("AGENT_COMPOSE_TIMEOUT", 100*time.Second),
		},
		Search: SearchConfig{
			QueryLimit:          getEnvAsInt("SEARCH_QUERY_LIMIT", 10),
			ListLimit:           getEnvAsInt("SEARCH_LIST_LIMIT", 20),
			RecommendationLimit: getEnvAsInt("SEARCH_RECOMMENDATION_LIMIT", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Ollama: OllamaConfig{
			Command: getEnv("OLLAMA_COMMAND", "ollama"),
			Model:   getEnv("OLLAMA_MODEL", "llama2"),
			Timeout: getEnvAsDuration("OLLAMA_TIMEOUT", 60*time.Second),
			Enabled: getEnvAsBool("OLLAMA_ENABLED", true),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:      getEnv("OPENROUTER_API_KEY", ""),
			APIBase:     getEnv("OPENROUTER_API_BASE", "https://openrouter.ai/api/v1"),
			ChatModel:   getEnv("OPENROUTER_CHAT_MODEL", "meta-llama/llama-2-7b-chat-hf"),
			Temperature: getEnvAsFloat("OPENROUTER_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("OPENROUTER_MAX_TOKENS", 500),
			Timeout:     getEnvAsDuration("OPENROUTER_TIMEOUT", 30*time.Second),
			Enabled:     getEnv("OPENROUTER_API_KEY", "") != "",
		},
		Contact: ContactConfig{
			MinDelay:            getEnvAsDuration("CONTACT_MIN_DELAY", 1*time.Second),
			MaxDelay:            getEnvAsDuration("CONTACT_MAX_DELAY", 3*time.Second),
			FollowUpProbability: getEnvAsFloat("CONTACT_FOLLOW_UP_PROBABILITY", 0.7),
		},
		Embedding: EmbeddingConfig{
			Dimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 1536),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that defaults cannot guarantee
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Contact.MinDelay < 0 || c.Contact.MaxDelay < c.Contact.MinDelay {
		return fmt.Errorf("invalid contact delay range [%s, %s]", c.Contact.MinDelay, c.Contact.MaxDelay)
	}
	if c.Contact.FollowUpProbability < 0 || c.Contact.FollowUpProbability > 1 {
		return fmt.Errorf("contact follow-up probability must be within [0, 1], got %.2f", c.Contact.FollowUpProbability)
	}
	if c.Server.ComposeTimeout <= 0 || c.Server.ComposeTimeout >= c.Server.RequestTimeout {
		return fmt.Errorf("compose timeout %s must be positive and below the request timeout %s",
			c.Server.ComposeTimeout, c.Server.RequestTimeout)
	}
	if c.Ollama.Timeout+c.OpenRouter.Timeout >= c.Server.RequestTimeout {
		return fmt.Errorf("generator timeouts (%s + %s) must stay below the request timeout %s",
			c.Ollama.Timeout, c.OpenRouter.Timeout, c.Server.RequestTimeout)
	}
	if c.Search.QueryLimit <= 0 || c.Search.ListLimit <= 0 || c.Search.RecommendationLimit <= 0 {
		return fmt.Errorf("search limits must be positive")
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// NewLogger builds the process logger described by the logging section
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(l.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer value, using default", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		slog.Warn("invalid float value, using default", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("invalid boolean value, using default", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration value, using default", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key, defaultValue string) []string {
	parts := strings.Split(getEnv(key, defaultValue), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
