package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"invitr/internal/platform/config"
)

func New(cfg config.DatabaseConfig) (*sql.DB, error) {
	// Strip "file:" prefix so plain paths and DSNs both work with the sqlite3 driver.
	dsn := cfg.Path
	if len(dsn) > 5 && dsn[:5] == "file:" {
		dsn = dsn[5:]
	}

	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
