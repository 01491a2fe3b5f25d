// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Remote  RemoteConfig
	Server  ServerConfig
	Logging LoggingConfig
	CORS    CORSConfig
	Session SessionConfig
	APIKey  string

	// VerificationURL is the page verification emails link back to
	VerificationURL string
}

// RemoteConfig holds the hosted backend (document database, identity,
// teams, file storage) settings
type RemoteConfig struct {
	Endpoint        string
	ProjectID       string
	DatabaseID      string
	StorageBucketID string
	AdminTeamID     string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig holds browser session cookie settings
type SessionConfig struct {
	Secret string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Remote backend configuration
	endpoint := os.Getenv("REMOTE_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("REMOTE_ENDPOINT is required")
	}
	cfg.Remote.Endpoint = strings.TrimRight(endpoint, "/")

	projectID := os.Getenv("PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID is required")
	}
	cfg.Remote.ProjectID = projectID

	databaseID := os.Getenv("DATABASE_ID")
	if databaseID == "" {
		return nil, fmt.Errorf("DATABASE_ID is required")
	}
	cfg.Remote.DatabaseID = databaseID

	bucketID := os.Getenv("STORAGE_BUCKET_ID")
	if bucketID == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET_ID is required")
	}
	cfg.Remote.StorageBucketID = bucketID

	adminTeamID := os.Getenv("ADMIN_TEAM_ID")
	if adminTeamID == "" {
		return nil, fmt.Errorf("ADMIN_TEAM_ID is required")
	}
	cfg.Remote.AdminTeamID = adminTeamID

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		// Parse comma-separated origins
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		// If no valid origins found, default to allow all
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	// Session cookie configuration
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	cfg.Session.Secret = sessionSecret

	// API Key configuration (privileged backend scripts only, never exposed to browsers)
	cfg.APIKey = os.Getenv("API_KEY")

	// Verification redirect configuration
	verificationURL := os.Getenv("VERIFICATION_URL")
	if verificationURL == "" {
		verificationURL = "https://islamizindagi.app/verify-email" // default
	}
	cfg.VerificationURL = verificationURL

	return cfg, nil
}
