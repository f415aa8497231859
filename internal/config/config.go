package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Mesh store connection. Empty URL keeps meshes in process memory.
	MeshstoreURL    string
	MeshstoreAPIKey string

	// Auth
	TracemeshAPIKey string

	// Classification
	RankTablePath    string
	StrictProperties bool

	// Worker pool
	WorkerCount          int
	MaxQueueSize         int
	MaxConcurrentResolve int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL      time.Duration
	StatsWindow time.Duration
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port: envOr("PORT", "8090"),

		MeshstoreURL:    os.Getenv("MESHSTORE_URL"),
		MeshstoreAPIKey: os.Getenv("MESHSTORE_API_KEY"),

		TracemeshAPIKey: os.Getenv("TRACEMESH_API_KEY"),

		RankTablePath:    os.Getenv("RANK_TABLE_PATH"),
		StrictProperties: envBool("STRICT_PROPERTIES", false),

		WorkerCount:          envInt("WORKER_COUNT", 4),
		MaxQueueSize:         envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentResolve: envInt("MAX_CONCURRENT_RESOLVE", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentResolve <= 0 {
		cfg.MaxConcurrentResolve = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.TracemeshAPIKey == "" {
		return fmt.Errorf("TRACEMESH_API_KEY is required")
	}
	if c.MeshstoreURL != "" && c.MeshstoreAPIKey == "" {
		return fmt.Errorf("MESHSTORE_API_KEY is required when MESHSTORE_URL is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
