// Package config reads the editor's settings from the environment, after
// loading a .env file when one is present.
package config

import (
	"os"
	"path/filepath"

	apperrors "unawareness/internal/errors"
	"unawareness/internal/necroxml"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvGamePath = "NECRODANCER_PATH"
	EnvLogFile  = "UNAWARENESS_LOG"
	EnvLogLevel = "UNAWARENESS_LOG_LEVEL"
)

// Config holds all configuration for the editor.
type Config struct {
	GameDir  string // game install directory; document paths are relative to it
	LogFile  string // "" selects the default under the XDG state dir
	LogLevel string
}

// Load reads .env files (missing ones are ignored) and then the environment.
// With no files given, ./.env is tried.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, apperrors.Wrapf(err, apperrors.CodeConfig, "read %s", f)
		}
	}

	cfg := &Config{
		GameDir:  os.Getenv(EnvGamePath),
		LogFile:  os.Getenv(EnvLogFile),
		LogLevel: getEnvOrDefault(EnvLogLevel, "info"),
	}
	if cfg.GameDir == "" {
		return nil, apperrors.Newf(apperrors.CodeConfig, "missing variable `%s`", EnvGamePath)
	}
	return cfg, nil
}

// EnsureModDir creates the mod output directory under the game directory.
func (c *Config) EnsureModDir() error {
	dir := filepath.Join(c.GameDir, filepath.FromSlash(necroxml.ModDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrapf(err, apperrors.CodeIO, "create %s", dir)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
