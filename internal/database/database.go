package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// schema holds the full table definitions. Statements are idempotent so the
// schema can be re-applied on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    order_number     TEXT NOT NULL UNIQUE,
    client           TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL DEFAULT '',
    currency         TEXT NOT NULL DEFAULT '',
    payment_terms    TEXT NOT NULL DEFAULT '',
    planned_start    TEXT NOT NULL DEFAULT '',
    planned_end      TEXT NOT NULL DEFAULT '',
    actual_ship      TEXT NOT NULL DEFAULT '',
    logistics        TEXT NOT NULL DEFAULT '',
    discount_percent TEXT NOT NULL DEFAULT '0',
    extra_costs      TEXT NOT NULL DEFAULT '0',
    folder           TEXT NOT NULL DEFAULT '',
    attachments      TEXT NOT NULL DEFAULT '[]',
    total_sale       TEXT NOT NULL DEFAULT '0',
    total_cost       TEXT NOT NULL DEFAULT '0',
    gross_profit     TEXT NOT NULL DEFAULT '0',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS order_items (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id         INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product          TEXT NOT NULL DEFAULT '',
    sku              TEXT NOT NULL DEFAULT '',
    color            TEXT NOT NULL DEFAULT '',
    size             TEXT NOT NULL DEFAULT '',
    quantity         INTEGER NOT NULL DEFAULT 0,
    cost             TEXT NOT NULL DEFAULT '0',
    price            TEXT NOT NULL DEFAULT '0',
    discount_percent TEXT NOT NULL DEFAULT '0',
    line_sale        TEXT NOT NULL DEFAULT '0',
    line_cost        TEXT NOT NULL DEFAULT '0',
    note             TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// InitDB opens the SQLite database file at dbPath, creating the containing
// directory if needed, and applies the schema. The DSN takes the write lock at
// BEGIN (_txlock=immediate) so that write transactions, in particular the
// count-then-insert order-number sequence, serialize against each other.
func InitDB(dbPath string) *sql.DB {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Error creating database directory %s: %q", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_fk=1&_txlock=immediate", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Fatalf("Error opening database: %q", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %q", err)
	}

	if err := applySchema(db); err != nil {
		log.Fatalf("Error applying database schema: %q", err)
	}

	return db
}

// applySchema executes the embedded schema statements.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}
