package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TokenStoreMemory   = "memory"
	TokenStoreFile     = "file"
	TokenStorePostgres = "postgres"
	TokenStoreRedis    = "redis"
)

type Config struct {
	HTTP            HTTPConfig
	Proxy           ProxyConfig
	Client          ClientConfig
	TokenStore      TokenStoreConfig
	FrontendDistDir string
	AuditLogFile    string
	LogLevel        string
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ProxyConfig drives the /api forwarder. A zero Timeout means the upstream
// call is never cut short.
type ProxyConfig struct {
	BackendURL string
	Prefix     string
	CORS       bool
	Timeout    time.Duration
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type TokenStoreConfig struct {
	Backend     string
	Key         string
	File        string
	DatabaseURL string
	RedisURL    string
}

func Load() (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		HTTP: HTTPConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SEC", 10)) * time.Second,
			WriteTimeout:    time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SEC", 30)) * time.Second,
			ShutdownTimeout: time.Duration(getEnvInt("HTTP_SHUTDOWN_TIMEOUT_SEC", 20)) * time.Second,
		},
		Proxy: ProxyConfig{
			BackendURL: getEnv("BACKEND_URL", "http://localhost:8000"),
			Prefix:     getEnv("PROXY_PREFIX", "/api"),
			CORS:       getEnvBool("PROXY_CORS", false),
			Timeout:    time.Duration(getEnvInt("PROXY_TIMEOUT_SEC", 0)) * time.Second,
		},
		Client: ClientConfig{
			BaseURL: getEnv("API_BASE_URL", "https://blogia-tizd.onrender.com"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT_SEC", 0)) * time.Second,
		},
		TokenStore: TokenStoreConfig{
			Backend:     strings.ToLower(getEnv("TOKEN_STORE", TokenStoreFile)),
			Key:         getEnv("TOKEN_STORAGE_KEY", "token"),
			File:        getEnv("TOKEN_STORE_FILE", "./data/client_storage.json"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			RedisURL:    getEnv("REDIS_URL", ""),
		},
		FrontendDistDir: getEnv("FRONTEND_DIST_DIR", "./web/dist"),
		AuditLogFile:    getEnv("AUDIT_LOG_FILE", "./data/proxy_audit.log"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.HTTP.Addr == "" {
		return Config{}, fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.Proxy.BackendURL == "" {
		return Config{}, fmt.Errorf("BACKEND_URL must not be empty")
	}
	if !strings.HasPrefix(cfg.Proxy.Prefix, "/") {
		return Config{}, fmt.Errorf("PROXY_PREFIX must start with /")
	}
	if cfg.Proxy.Timeout < 0 {
		return Config{}, fmt.Errorf("PROXY_TIMEOUT_SEC must be >= 0")
	}
	if cfg.Client.BaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL must not be empty")
	}
	if cfg.Client.Timeout < 0 {
		return Config{}, fmt.Errorf("API_TIMEOUT_SEC must be >= 0")
	}
	if cfg.TokenStore.Key == "" {
		return Config{}, fmt.Errorf("TOKEN_STORAGE_KEY must not be empty")
	}
	switch cfg.TokenStore.Backend {
	case TokenStoreMemory:
	case TokenStoreFile:
		if cfg.TokenStore.File == "" {
			return Config{}, fmt.Errorf("TOKEN_STORE_FILE must not be empty")
		}
	case TokenStorePostgres:
		if cfg.TokenStore.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when TOKEN_STORE=postgres")
		}
	case TokenStoreRedis:
		if cfg.TokenStore.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL is required when TOKEN_STORE=redis")
		}
	default:
		return Config{}, fmt.Errorf("TOKEN_STORE must be one of memory, file, postgres, redis; got %q", cfg.TokenStore.Backend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
