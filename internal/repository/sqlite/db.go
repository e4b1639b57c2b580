package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// one writer; readers queue behind it
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA busy_timeout = 5000;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	return db, nil
}

// Repositories bundles every sqlite-backed repository over one handle.
type Repositories struct {
	Accounts     *AccountRepository
	About        *AboutRepository
	Projects     *ProjectRepository
	Technologies *TechnologyRepository
	Homepage     *HomepageRepository
	Contact      *ContactRepository
	Maintenance  *MaintenanceRepository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Accounts:     &AccountRepository{db: db},
		About:        &AboutRepository{db: db},
		Projects:     &ProjectRepository{db: db},
		Technologies: &TechnologyRepository{db: db},
		Homepage:     &HomepageRepository{db: db},
		Contact:      &ContactRepository{db: db},
		Maintenance:  &MaintenanceRepository{db: db},
	}
}
