package config

import "os"

// LoadTestConfig builds a Config suitable for unit tests without requiring
// a .env file or real remote backend settings
// Values can be overridden through TEST_-prefixed environment variables
func LoadTestConfig() *Config {
	cfg := &Config{
		Remote: RemoteConfig{
			Endpoint:        "http://localhost:9999/v1",
			ProjectID:       "test-project",
			DatabaseID:      "test-database",
			StorageBucketID: "test-bucket",
			AdminTeamID:     "test-admins",
		},
		Server:  ServerConfig{Port: 8080},
		Logging: LoggingConfig{Level: "debug"},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		Session: SessionConfig{Secret: "test-session-secret"},
	}

	if endpoint := os.Getenv("TEST_REMOTE_ENDPOINT"); endpoint != "" {
		cfg.Remote.Endpoint = endpoint
	}
	if projectID := os.Getenv("TEST_PROJECT_ID"); projectID != "" {
		cfg.Remote.ProjectID = projectID
	}

	return cfg
}
