package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and runs pending goose migrations. dbPath is the
// local file (or ":memory:"); when primaryURL is set the remote Turso
// database is used instead. The returned teardown closes the connection.
func InitDB(dbPath, primaryURL, authToken, migrationsDir string) (*sql.DB, func(), error) {
	var db *sql.DB
	var err error

	if primaryURL == "" {
		log.Info("Initializing local SQLite database", "path", dbPath)
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
	}

	// Foreign key support is not enabled by default in SQLite.
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrate(db, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func migrate(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	goose.SetLogger(goose.NopLogger())
	return goose.Up(db, migrationsDir)
}
