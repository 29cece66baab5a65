// Package config provides configuration management for the rehabilitation
// service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Pipeline PipelineConfig
	Health   HealthConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
}

// PipelineConfig holds metrics-pipeline configuration
type PipelineConfig struct {
	// SampleInterval is the motion source cadence
	SampleInterval time.Duration

	// WindowSize caps the raw ingest buffer
	WindowSize int

	// QueueSize sizes the incoming sample queue
	QueueSize int

	// PredictionDelay models the recommendation computation latency
	PredictionDelay time.Duration

	// GaitSeed seeds the gait estimator; 0 seeds from the clock
	GaitSeed int64

	// SimulatorEnabled attaches the simulated motion source
	SimulatorEnabled bool

	// SimulatorSeed seeds the motion simulator; 0 seeds from the clock
	SimulatorSeed int64

	// VRCalibrationTime is how long a VR tracker calibration takes
	VRCalibrationTime time.Duration
}

// HealthConfig holds platform health-store configuration
type HealthConfig struct {
	// Authorized mirrors the platform health-data permission grant
	Authorized bool
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                   string
	Host                  string
	Port                  string
	Name                  string
	User                  string
	Password              string
	SSLMode               string
	MaxConnections        int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:                   os.Getenv("DATABASE_URL"),
			Host:                  getEnv("DB_HOST", "localhost"),
			Port:                  getEnv("DB_PORT", "5432"),
			Name:                  getEnv("DB_NAME", "rehab_dev"),
			User:                  getEnv("DB_USER", "rehab_user"),
			Password:              getEnv("DB_PASSWORD", "rehab_pass"),
			SSLMode:               getEnv("DB_SSLMODE", "disable"),
			MaxConnections:        getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MaxIdleConnections:    getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 5),
			ConnectionMaxLifetime: getEnvAsDuration("DB_CONNECTION_MAX_LIFETIME", "5m"),
		},
		Auth: AuthConfig{
			JWTSecret:         GetSecret("JWT_SECRET", "dev-secret-key-change-in-production"),
			JWTAccessTokenTTL: getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", "24h"),
		},
		Pipeline: PipelineConfig{
			SampleInterval:    getEnvAsDuration("SAMPLE_INTERVAL", "100ms"),
			WindowSize:        getEnvAsInt("INGEST_WINDOW_SIZE", 100),
			QueueSize:         getEnvAsInt("SAMPLE_QUEUE_SIZE", 256),
			PredictionDelay:   getEnvAsDuration("PREDICTION_DELAY", "500ms"),
			GaitSeed:          int64(getEnvAsInt("GAIT_SEED", 0)),
			SimulatorEnabled:  getEnvAsBool("MOTION_SIMULATOR_ENABLED", true),
			SimulatorSeed:     int64(getEnvAsInt("MOTION_SIMULATOR_SEED", 0)),
			VRCalibrationTime: getEnvAsDuration("VR_CALIBRATION_TIME", "2s"),
		},
		Health: HealthConfig{
			Authorized: getEnvAsBool("HEALTH_STORE_AUTHORIZED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.Pipeline.SampleInterval <= 0 {
		return errors.New("SAMPLE_INTERVAL must be positive")
	}
	if c.Pipeline.WindowSize <= 0 {
		return errors.New("INGEST_WINDOW_SIZE must be positive")
	}
	if c.Pipeline.PredictionDelay < 0 {
		return errors.New("PREDICTION_DELAY must not be negative")
	}
	return nil
}

// ConnectionString returns the database connection string
func (d *DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}
