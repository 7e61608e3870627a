// Package sqlite implements the ledger stores on an embedded SQLite
// database. It exists behind the same store contracts as the flat-file
// backend; selecting it is purely container wiring.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// schema defines the tables backing the ledger stores. Monetary columns are
// TEXT so decimal values round-trip exactly.
const schema = `
CREATE TABLE IF NOT EXISTS counters (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    next_transaction_number INTEGER NOT NULL,
    next_driver_number INTEGER NOT NULL,
    monthly_stand_fee TEXT NOT NULL,
    daily_rental_fee TEXT NOT NULL,
    weekly_rental_fee TEXT NOT NULL,
    hst_rate TEXT NOT NULL,
    last_billed_month TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS employees (
    driver_number INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    phone TEXT NOT NULL,
    license_number TEXT NOT NULL,
    license_expiry TEXT NOT NULL,          -- YYYY-MM-DD
    insurance_company TEXT NOT NULL,
    policy_number TEXT NOT NULL,
    owns_car TEXT NOT NULL,                -- Y or N
    balance_due TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revenue (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    transaction_number INTEGER NOT NULL,
    date TEXT NOT NULL,                    -- YYYY-MM-DD
    description TEXT NOT NULL,
    driver_number INTEGER NOT NULL,
    amount TEXT NOT NULL,
    hst TEXT NOT NULL,
    total TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rentals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    rental_id INTEGER NOT NULL,            -- user-supplied tag, not unique
    driver_number INTEGER NOT NULL,
    car_number INTEGER NOT NULL,
    date TEXT NOT NULL,
    rental_type TEXT NOT NULL,             -- d or w
    duration INTEGER NOT NULL,
    amount TEXT NOT NULL,
    hst TEXT NOT NULL,
    total TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    driver_number INTEGER NOT NULL,
    amount TEXT NOT NULL,
    date TEXT NOT NULL
);
`

// DB manages the SQLite database connection shared by the sqlite stores.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Open opens the database, creating the file and schema if needed. Foreign
// keys and WAL mode are enabled through the connection string.
func Open(dbPath string) (*DB, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.WithField("file", dbPath).Debug("Opened SQLite ledger database")
	return &DB{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Transaction executes fn within a transaction, rolling back on error.
func (d *DB) Transaction(fn func(*sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
