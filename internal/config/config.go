package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	App        AppConfig
	MarketData MarketDataConfig
	Scoring    ScoringConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	JWTSecret string
}

// MarketDataConfig holds price history provider settings
type MarketDataConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
	LookupWindow   int // days searched around a date for the nearest close
}

// ScoringConfig holds the tunable constants of the scoring engine.
// These are policy knobs, not magic numbers: the flat-outcome score and
// the penalty band are deliberate design choices surfaced here.
type ScoringConfig struct {
	FlatScore        float64 // direction score when the price didn't move
	PenaltyTolerance float64 // relative target error at which the penalty caps
	MaxPenalty       float64 // accuracy points deducted at or past the tolerance
	GoodThreshold    float64 // accuracy at or above this earns reputation
	PoorThreshold    float64 // accuracy at or below this costs reputation
	ReputationGain   int64
	ReputationLoss   int64
	SweepInterval    time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "sovest"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		App: AppConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		MarketData: MarketDataConfig{
			APIKey:         getEnv("MARKET_DATA_API_KEY", ""),
			BaseURL:        getEnv("MARKET_DATA_BASE_URL", "https://api.twelvedata.com"),
			RequestTimeout: getEnvDuration("MARKET_DATA_TIMEOUT", 30*time.Second),
			RequestsPerSec: getEnvInt("MARKET_DATA_RPS", 5),
			LookupWindow:   getEnvInt("MARKET_DATA_LOOKUP_WINDOW_DAYS", 5),
		},
		Scoring: ScoringConfig{
			FlatScore:        getEnvFloat("SCORING_FLAT_SCORE", 50),
			PenaltyTolerance: getEnvFloat("SCORING_PENALTY_TOLERANCE", 0.20),
			MaxPenalty:       getEnvFloat("SCORING_MAX_PENALTY", 50),
			GoodThreshold:    getEnvFloat("SCORING_GOOD_THRESHOLD", 70),
			PoorThreshold:    getEnvFloat("SCORING_POOR_THRESHOLD", 30),
			ReputationGain:   int64(getEnvInt("SCORING_REPUTATION_GAIN", 10)),
			ReputationLoss:   int64(getEnvInt("SCORING_REPUTATION_LOSS", 5)),
			SweepInterval:    getEnvDuration("SCORING_SWEEP_INTERVAL", 6*time.Hour),
		},
	}

	// Validate required fields
	if config.App.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
