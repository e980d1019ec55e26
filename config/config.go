package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config reads a variable from .env or the process environment.
func Config(key string) string {
	godotenv.Load(".env")
	return os.Getenv(key)
}

// ConfigOr falls back to def when the variable is unset.
func ConfigOr(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}
