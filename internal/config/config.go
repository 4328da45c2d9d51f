package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	DirectoryStateFile string
	EntryStateFile     string
	ExportDir          string
	AuditLogFile       string
}

// Load reads configuration from the environment, after merging an optional
// .env file in the working directory. Defaults keep all state under ./data.
func Load() (Config, error) {
	// Missing .env is fine; real env vars win over file values.
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DirectoryStateFile: getEnv("DIRECTORY_STATE_FILE", "./data/directory.json"),
		EntryStateFile:     getEnv("ENTRY_STATE_FILE", "./data/entries.json"),
		ExportDir:          getEnv("EXPORT_DIR", "."),
		AuditLogFile:       getEnv("AUDIT_LOG_FILE", "./data/audit.log"),
	}

	if cfg.DirectoryStateFile == "" {
		return Config{}, fmt.Errorf("DIRECTORY_STATE_FILE must not be empty")
	}
	if cfg.EntryStateFile == "" {
		return Config{}, fmt.Errorf("ENTRY_STATE_FILE must not be empty")
	}
	if cfg.ExportDir == "" {
		return Config{}, fmt.Errorf("EXPORT_DIR must not be empty")
	}
	if cfg.AuditLogFile == "" {
		return Config{}, fmt.Errorf("AUDIT_LOG_FILE must not be empty")
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
