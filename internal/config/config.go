package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is built once at startup and handed to every component that
// needs a piece of it. There is no package-level instance.
type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// MongoDB Configuration (media blobs)
	MongoDB MongoConfig `json:"mongodb"`

	// Auth Configuration
	Auth AuthConfig `json:"auth"`

	// Media Configuration
	Media MediaConfig `json:"media"`

	// Feed Configuration
	Feed FeedConfig `json:"feed"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	ReadTimeout  int    `json:"read_timeout"`  // seconds
	WriteTimeout int    `json:"write_timeout"` // seconds
	Environment  string `json:"environment"`   // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains MongoDB connection configuration for media storage.
// When Enabled is false the media gateway falls back to placeholder URLs.
type MongoConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
	Enabled  bool   `json:"enabled"`
}

// AuthConfig contains the credential-signing key and validity window
type AuthConfig struct {
	JWTSecret    string `json:"-"`
	TokenTTLDays int    `json:"token_ttl_days"`
}

// MediaConfig contains the public base URL media files are served under
type MediaConfig struct {
	BaseURL string `json:"base_url"`
}

// FeedConfig contains feed pagination limits
type FeedConfig struct {
	MaxPageSize int `json:"max_page_size"`
}

// LoadConfig reads configuration from environment variables with sane
// development defaults. Callers load .env beforehand if they want one.
func LoadConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", ""),
			Port:         getEnvOrDefault("SERVER_PORT", "8000"),
			ReadTimeout:  getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "bachaboard"),
			Password:     getEnvOrDefault("DB_PASSWORD", "bachaboard123"),
			DatabaseName: getEnvOrDefault("DB_NAME", "bachaboard"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USER", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DB", "bachaboard"),
			Enabled:  getEnvOrDefault("MONGO_ENABLED", "false") == "true",
		},
		Auth: AuthConfig{
			JWTSecret:    getEnvOrDefault("JWT_SECRET", "dev-secret-key-change-in-production"),
			TokenTTLDays: getEnvIntOrDefault("TOKEN_TTL_DAYS", 7),
		},
		Media: MediaConfig{
			BaseURL: getEnvOrDefault("MEDIA_BASE_URL", ""),
		},
		Feed: FeedConfig{
			MaxPageSize: getEnvIntOrDefault("FEED_MAX_PAGE_SIZE", 20),
		},
	}

	if cfg.Media.BaseURL == "" {
		cfg.Media.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Server.Port)
	}

	return cfg
}

// DSN builds the MySQL connection string from the database section
func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// MongoURI builds the MongoDB connection string from the mongo section
func (cfg *Config) MongoURI() string {
	if cfg.MongoDB.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/?authSource=admin",
			cfg.MongoDB.Username,
			cfg.MongoDB.Password,
			cfg.MongoDB.Host,
			cfg.MongoDB.Port,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
