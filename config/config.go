package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// Config reads a key from the environment, loading .env the first time.
func Config(key string) string {
	loadEnv.Do(func() {
		godotenv.Load(".env")
	})
	return os.Getenv(key)
}

// Int reads a numeric key, falling back when unset or malformed.
func Int(key string, fallback int) int {
	v := Config(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Default returns the key's value or a fallback when unset.
func Default(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
