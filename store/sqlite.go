package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"bookstore-ledger/ledger"
)

// SQLite keeps ledger snapshots in a single SQLite database file.
type SQLite struct {
	db *sqlx.DB
}

// Info describes the last snapshot written to a SQLite store.
type Info struct {
	SnapshotID string
	SavedAt    time.Time
	Employees  int
	Books      int
	Sales      int
}

// NewSQLite opens (or creates) the SQLite database at dbPath and applies
// schema migrations.
func NewSQLite(dbPath string) (*SQLite, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sqlx.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// seq preserves insertion order for replay. Sales reference employees
	// and books by name, not by foreign key.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS employees (
            seq INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            position TEXT NOT NULL,
            phone TEXT NOT NULL,
            email TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS books (
            seq INTEGER PRIMARY KEY,
            title TEXT NOT NULL,
            year INTEGER NOT NULL,
            author TEXT NOT NULL,
            genre TEXT NOT NULL,
            cost REAL NOT NULL,
            sale_price REAL NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS sales (
            seq INTEGER PRIMARY KEY,
            employee_name TEXT NOT NULL,
            book_title TEXT NOT NULL,
            sale_date TEXT NOT NULL,
            actual_sale_price REAL NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

// Save replaces the stored snapshot with snap in one transaction and stamps
// it with a fresh snapshot id.
func (s *SQLite) Save(ctx context.Context, snap ledger.Snapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"sales", "books", "employees"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, e := range snap.Employees {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO employees(seq,name,position,phone,email) VALUES(?,?,?,?,?)`,
			i, e.Name, e.Position, e.Phone, e.Email); err != nil {
			return fmt.Errorf("insert employee %q: %w", e.Name, err)
		}
	}
	for i, b := range snap.Books {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO books(seq,title,year,author,genre,cost,sale_price) VALUES(?,?,?,?,?,?,?)`,
			i, b.Title, b.Year, b.Author, b.Genre, b.Cost, b.SalePrice); err != nil {
			return fmt.Errorf("insert book %q: %w", b.Title, err)
		}
	}
	for i, sl := range snap.Sales {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sales(seq,employee_name,book_title,sale_date,actual_sale_price) VALUES(?,?,?,?,?)`,
			i, sl.EmployeeName, sl.BookTitle, sl.SaleDate, sl.ActualSalePrice); err != nil {
			return fmt.Errorf("insert sale #%d: %w", i+1, err)
		}
	}

	stamp := map[string]string{
		"snapshot_id": uuid.NewString(),
		"saved_at":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range stamp {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meta(key,value) VALUES(?,?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load reads the stored snapshot. An empty database yields an empty snapshot.
func (s *SQLite) Load(ctx context.Context) (ledger.Snapshot, error) {
	var snap ledger.Snapshot
	if err := s.db.SelectContext(ctx, &snap.Employees,
		`SELECT name, position, phone, email FROM employees ORDER BY seq`); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load employees: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Books,
		`SELECT title, year, author, genre, cost, sale_price FROM books ORDER BY seq`); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load books: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Sales,
		`SELECT employee_name, book_title, sale_date, actual_sale_price FROM sales ORDER BY seq`); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load sales: %w", err)
	}
	return snap, nil
}

// Info reports the id and time of the last Save and the stored row counts.
func (s *SQLite) Info(ctx context.Context) (Info, error) {
	var info Info
	err := s.db.GetContext(ctx, &info.SnapshotID, `SELECT value FROM meta WHERE key='snapshot_id'`)
	if errors.Is(err, sql.ErrNoRows) {
		return info, nil
	}
	if err != nil {
		return info, err
	}

	var savedAt string
	if err := s.db.GetContext(ctx, &savedAt, `SELECT value FROM meta WHERE key='saved_at'`); err != nil {
		return info, err
	}
	if info.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return info, fmt.Errorf("parse saved_at: %w", err)
	}

	counts := []struct {
		dst   *int
		table string
	}{
		{&info.Employees, "employees"},
		{&info.Books, "books"},
		{&info.Sales, "sales"},
	}
	for _, c := range counts {
		if err := s.db.GetContext(ctx, c.dst, `SELECT COUNT(*) FROM `+c.table); err != nil {
			return info, err
		}
	}
	return info, nil
}
