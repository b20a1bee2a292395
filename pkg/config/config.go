package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// S3Config holds the settings for publishing renders to an S3-compatible store
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix for uploaded objects
}

// Enabled reports whether enough settings are present to publish
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.Region != ""
}

// Config is the process configuration read from the environment
type Config struct {
	Seed          uint64 // RENDER_SEED
	Workers       int    // RENDER_WORKERS, 0 = one per CPU
	Strategy      string // RENDER_STRATEGY
	OutputDir     string // OUTPUT_DIR
	ServerAddress string // SERVER_ADDRESS, used by the web server
	S3            S3Config
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Seed:          42,
		Workers:       0,
		Strategy:      "parallel",
		OutputDir:     "output",
		ServerAddress: ":8080",
	}
}

// Load reads envFile (if it exists) into the environment and builds a Config
// from it. Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables over the defaults
func FromEnv() (*Config, error) {
	cfg := Default()

	if v, ok := os.LookupEnv("RENDER_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RENDER_SEED %q: %w", v, err)
		}
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv("RENDER_WORKERS"); ok {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RENDER_WORKERS %q: %w", v, err)
		}
		cfg.Workers = workers
	}

	cfg.Strategy = getEnv("RENDER_STRATEGY", cfg.Strategy)
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.S3 = S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    getEnv("S3_PREFIX", "renders"),
	}

	return cfg, nil
}

// getEnv returns the environment variable or a fallback when it is unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
