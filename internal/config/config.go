// Package config loads likestats settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "LIKESTATS_"

type Config struct {
	Auth    AuthConfig
	YouTube YouTubeConfig
	Logging LoggingConfig
	Run     RunConfig
}

type AuthConfig struct {
	CredentialsFile string
	ConfigDir       string
	CallbackPort    int
}

type YouTubeConfig struct {
	// APIURL overrides the API endpoint; empty means the library default.
	APIURL string
}

type LoggingConfig struct {
	Level string
	File  string
}

type RunConfig struct {
	Timeout time.Duration
}

// Load reads an optional .env file, then the LIKESTATS_* variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Auth: AuthConfig{
			CredentialsFile: getEnv("CREDENTIALS_FILE", "credentials.json"),
			ConfigDir:       getEnv("CONFIG_DIR", defaultConfigDir()),
			CallbackPort:    getEnvInt("CALLBACK_PORT", 8080),
		},
		YouTube: YouTubeConfig{
			APIURL: getEnv("API_URL", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Run: RunConfig{
			Timeout: getEnvDuration("TIMEOUT", 2*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.CredentialsFile == "" {
		return fmt.Errorf("%sCREDENTIALS_FILE is required", envPrefix)
	}
	if c.Auth.ConfigDir == "" {
		return fmt.Errorf("%sCONFIG_DIR is required", envPrefix)
	}
	// 0 lets the callback server pick a free port.
	if c.Auth.CallbackPort < 0 || c.Auth.CallbackPort > 65535 {
		return fmt.Errorf("%sCALLBACK_PORT must be between 0 and 65535, got %d", envPrefix, c.Auth.CallbackPort)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%sLOG_LEVEL must be one of debug, info, warn, error, got %q", envPrefix, c.Logging.Level)
	}
	if c.Run.Timeout <= 0 {
		return fmt.Errorf("%sTIMEOUT must be positive", envPrefix)
	}
	return nil
}

// RedirectURL is the loopback address the OAuth callback server listens on.
func (c *Config) RedirectURL() string {
	return fmt.Sprintf("http://localhost:%d/callback", c.Auth.CallbackPort)
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".likestats"
	}
	return filepath.Join(home, ".config", "likestats")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(envPrefix + key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
