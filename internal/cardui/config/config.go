package config

import (
	"os"
	"strconv"
)

const defaultBackendURL = "https://business-card-scanner-backend.onrender.com"

type Config struct {
	BackendURL string
	Port       string
	RateLimit  int // requests per minute per IP
}

func Load() Config {
	cfg := Config{
		BackendURL: os.Getenv("BACKEND_URL"),
		Port:       os.Getenv("UI_SERVICE_PORT"),
		RateLimit:  120,
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = defaultBackendURL
	}
	if cfg.Port == "" {
		cfg.Port = "8088"
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT")); err == nil && v > 0 {
		cfg.RateLimit = v
	}

	return cfg
}
