package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "DIRECTORY_STATE_FILE", "ENTRY_STATE_FILE", "EXPORT_DIR", "AUDIT_LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected no database by default, got %q", cfg.DatabaseURL)
	}
	if cfg.DirectoryStateFile != "./data/directory.json" {
		t.Fatalf("unexpected directory state file %q", cfg.DirectoryStateFile)
	}
	if cfg.EntryStateFile != "./data/entries.json" {
		t.Fatalf("unexpected entry state file %q", cfg.EntryStateFile)
	}
	if cfg.ExportDir != "." {
		t.Fatalf("unexpected export dir %q", cfg.ExportDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/worklog")
	t.Setenv("ENTRY_STATE_FILE", "/tmp/entries.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost/worklog" {
		t.Fatalf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.EntryStateFile != "/tmp/entries.json" {
		t.Fatalf("unexpected entry state file %q", cfg.EntryStateFile)
	}
}
