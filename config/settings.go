package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Only the valkey backend outlives a single command; memory is shared by the
// loads within one process.
const (
	CacheBackendMemory = "memory"
	CacheBackendValkey = "valkey"
	CacheBackendNone   = "none"
)

type Settings struct {
	EvalDataPath  string
	SalesDataPath string

	CacheBackend   string
	CacheTTL       time.Duration
	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool

	AWSRegion   string
	AWSEndpoint string
	ExportTable string

	LogLevel string
}

// Load reads Settings from the environment. Call LoadEnv first to pick up a
// .env file.
func Load() (Settings, error) {
	s := Settings{
		EvalDataPath:   getenv("EVAL_DATA_PATH", "data/evaluaciones.xlsx"),
		SalesDataPath:  getenv("SALES_DATA_PATH", "data/ventas.csv"),
		CacheBackend:   strings.ToLower(getenv("CACHE_BACKEND", CacheBackendNone)),
		ValkeyAddress:  getenv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		AWSRegion:      getenv("AWS_REGION", "us-west-2"),
		AWSEndpoint:    os.Getenv("AWS_ENDPOINT"),
		ExportTable:    getenv("EXPORT_TABLE", "EvaluationRecords"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	switch s.CacheBackend {
	case CacheBackendMemory, CacheBackendValkey, CacheBackendNone:
	default:
		return Settings{}, fmt.Errorf("[Config] CACHE_BACKEND must be memory, valkey or none, got %q", s.CacheBackend)
	}

	ttl, err := strconv.Atoi(getenv("CACHE_TTL_SECONDS", "3600"))
	if err != nil || ttl < 0 {
		return Settings{}, fmt.Errorf("[Config] CACHE_TTL_SECONDS must be a non-negative integer, got %q", os.Getenv("CACHE_TTL_SECONDS"))
	}
	s.CacheTTL = time.Duration(ttl) * time.Second

	if v := os.Getenv("VALKEY_TLS"); v != "" {
		s.ValkeyTLS, err = strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("[Config] VALKEY_TLS: %w", err)
		}
	}

	return s, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
