// Package config provides shared configuration utilities and the fixed
// gameplay constants.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables shared by the frontends.
const (
	AssetsEnv  = "SAVETHEEARTH_ASSETS" // Asset directory; empty uses generated placeholders
	AudioEnv   = "SAVETHEEARTH_AUDIO"
	SeedEnv    = "SAVETHEEARTH_SEED"
	VolumeEnv  = "SAVETHEEARTH_VOLUME" // Percent, 0-100
	LogFileEnv = "LOG_FILE"            // Terminal frontends log here instead of the screen
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvBool interprets the variable as a switch. Accepted values are
// on/off, true/false, yes/no and 1/0. Anything else yields fallback.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "on", "true", "yes":
		return true
	case "0", "off", "false", "no":
		return false
	}
	return fallback
}

// GetEnvInt64 parses the variable as a base-10 integer, or returns fallback
// if it is unset or malformed.
func GetEnvInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
