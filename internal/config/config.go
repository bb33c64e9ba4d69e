package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Get returns the environment value for key, or fallback when unset or
// blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses an integer setting. Malformed values are logged and fall
// back rather than failing startup.
func GetInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

// GetFloat parses a float setting with the same fallback behavior as
// GetInt.
func GetFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %g", key, raw, fallback)
		return fallback
	}
	return f
}

// GetBool accepts the strconv.ParseBool spellings (1/t/true/0/f/false).
func GetBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: %s=%q is not a boolean, using %t", key, raw, fallback)
		return fallback
	}
	return b
}

// GetList splits a comma-separated setting, dropping empty entries.
func GetList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
