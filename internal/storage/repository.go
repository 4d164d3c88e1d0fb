package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finboard/internal/notify"
	"finboard/internal/ports"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists every collection in one SQLite database.
// Insertion order is kept through rowid so snapshots come back newest first.
type SQLiteRepository struct {
	db *sql.DB

	typesChanged notify.Broadcaster
	catsChanged  notify.Broadcaster
	txsChanged   notify.Broadcaster
	billsChanged notify.Broadcaster
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Debug("Ledger schema ready", "path", dbPath, "schema_version", version)

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Repositories exposes the database through the repository contracts.
func (r *SQLiteRepository) Repositories() ports.Repositories {
	return ports.Repositories{
		Categories:    categoryRepo{r},
		CategoryTypes: categoryTypeRepo{r},
		Transactions:  transactionRepo{r},
		Bills:         billRepo{r},
	}
}

// exec runs a mutation, maps "no rows affected" to ports.ErrNotFound when
// requireRow is set, and signals subscribers on success.
func (r *SQLiteRepository) exec(ctx context.Context, b *notify.Broadcaster, requireRow bool, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if requireRow {
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return ports.ErrNotFound
		}
	}
	b.Notify()
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func logMutation(ctx context.Context, msg, table, id string) {
	slog.DebugContext(ctx, msg, "table", table, "id", id)
}
