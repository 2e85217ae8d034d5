package config

import (
	"os"
	"path/filepath"
)

// HausgeistPath returns the root directory for Hausgeist data.
// It uses $HAUSGEIST_PATH if set, otherwise defaults to ~/.hausgeist.
func HausgeistPath() string {
	if v := os.Getenv("HAUSGEIST_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".hausgeist")
	}
	return filepath.Join(home, ".hausgeist")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(HausgeistPath(), "config.jsonc")
}

// DotenvPath returns the path to the .env file.
func DotenvPath() string {
	return filepath.Join(HausgeistPath(), ".env")
}
