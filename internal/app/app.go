package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"worktrackersvr/work-tracker/internal/audit"
	"worktrackersvr/work-tracker/internal/config"
	"worktrackersvr/work-tracker/internal/directory"
	"worktrackersvr/work-tracker/internal/export"
	"worktrackersvr/work-tracker/internal/observability"
	"worktrackersvr/work-tracker/internal/seed"
	"worktrackersvr/work-tracker/internal/worklog"
)

// EntryService is the full entry-store surface the shell consumes. Both the
// file-backed and Postgres-backed stores satisfy it.
type EntryService interface {
	List(username string) ([]worklog.Entry, error)
	Add(username string, d worklog.Draft) (worklog.Entry, error)
	Update(username string, e worklog.Entry) error
	Delete(username, id string) error
	Clear(username string) error
	Merge(username string, drafts []worklog.Draft) (int, error)
	Tasks(username string) ([]string, error)
}

// App wires the store backends, runs the idempotent seeding pass, and owns
// the database handle when one is configured.
type App struct {
	Log      *slog.Logger
	Accounts *directory.Service
	Entries  EntryService
	Exports  *export.Service
	Audit    *audit.Logger

	cfg config.Config
	db  *sql.DB
}

func New(cfg config.Config) (*App, error) {
	logger := observability.NewLogger()

	var err error
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
	}

	var accountStore directory.Store
	var entries EntryService
	if db != nil {
		accountStore, err = directory.NewPostgresStore(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create postgres account store: %w", err)
		}
		entries, err = worklog.NewPGService(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create postgres entry store: %w", err)
		}
	} else {
		accountStore, err = directory.NewFileStore(cfg.DirectoryStateFile)
		if err != nil {
			return nil, fmt.Errorf("create account store: %w", err)
		}
		entries, err = worklog.NewServiceWithFile(cfg.EntryStateFile)
		if err != nil {
			return nil, fmt.Errorf("create entry store: %w", err)
		}
	}

	accounts, err := directory.NewService(accountStore)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("create account service: %w", err)
	}

	res, err := seed.Seeder{Accounts: accounts, Entries: entries}.Run()
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("seed store: %w", err)
	}
	if res.AdminCreated || res.DefaultCreated || res.EntriesAdded > 0 {
		logger.Info("store seeded",
			"admin_created", res.AdminCreated,
			"default_created", res.DefaultCreated,
			"entries_added", res.EntriesAdded)
	}

	exports, err := export.NewService(entries)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("create export service: %w", err)
	}

	return &App{
		Log:      logger,
		Accounts: accounts,
		Entries:  entries,
		Exports:  exports,
		Audit:    audit.NewLogger(cfg.AuditLogFile),
		cfg:      cfg,
		db:       db,
	}, nil
}

// ExportDir is where the shell writes generated artifacts.
func (a *App) ExportDir() string {
	return a.cfg.ExportDir
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
