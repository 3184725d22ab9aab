/*
Package sqlite provides a SQLite-backed implementation of register.Store.

PURPOSE:
  Persists the asset register. Computed schedules are never stored; they
  are recomputed from the asset record whenever they are needed.

KEY TABLES:
  assets: One row per asset, decimals stored as TEXT to keep exact cents

INDEXES:
  - idx_assets_name (unique): Asset names are unique across the register
  - idx_assets_method: List filtering by depreciation method
  - idx_assets_created_at: Newest-first listing

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. An in-memory database is limited to
  a single connection, since every new connection to ":memory:" would open
  a separate empty database.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/assets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := register.NewService(store, nil)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - register/asset.go: Store interface
  - register/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/asset-engine/depreciation"
	"github.com/warp/asset-engine/register"
)

const memoryPath = ":memory:"

// timestampLayout is fixed width so created_at sorts correctly as TEXT.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements register.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		purchase_price TEXT NOT NULL,
		purchase_date TEXT NOT NULL,
		useful_life_years INTEGER NOT NULL,
		method TEXT NOT NULL,
		depreciation_rate TEXT,
		salvage_value TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_assets_name
		ON assets(name);
	CREATE INDEX IF NOT EXISTS idx_assets_method
		ON assets(method);
	CREATE INDEX IF NOT EXISTS idx_assets_created_at
		ON assets(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ASSET OPERATIONS
// =============================================================================

const assetColumns = `id, name, description, purchase_price, purchase_date, useful_life_years,
	method, depreciation_rate, salvage_value, created_at, updated_at`

// Create inserts a new asset.
func (s *Store) Create(ctx context.Context, a register.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT INTO assets (` + assetColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Name, nullString(a.Description),
		a.PurchasePrice.String(),
		a.PurchaseDate.UTC().Format(time.RFC3339),
		a.UsefulLifeYears,
		string(a.Method),
		nullDecimal(a.DepreciationRate),
		a.SalvageValue.String(),
		a.CreatedAt.UTC().Format(timestampLayout),
		a.UpdatedAt.UTC().Format(timestampLayout),
	)
	if isUniqueConstraintError(err) {
		return register.ErrDuplicateName
	}
	return err
}

// Get retrieves an asset by ID.
func (s *Store) Get(ctx context.Context, id string) (register.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+assetColumns+" FROM assets WHERE id = ?", id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return register.Asset{}, register.ErrAssetNotFound
	}
	return a, err
}

// List returns assets matching the filter, newest first.
func (s *Store) List(ctx context.Context, f register.Filter) ([]register.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + assetColumns + " FROM assets"
	var args []any
	if f.Method != nil {
		query += " WHERE method = ?"
		args = append(args, string(*f.Method))
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Prices are TEXT, so numeric bounds are applied after scanning.
	var assets []register.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		if f.Matches(a) {
			assets = append(assets, a)
		}
	}
	return assets, rows.Err()
}

// Update replaces an existing asset.
func (s *Store) Update(ctx context.Context, a register.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE assets SET
			name = ?, description = ?, purchase_price = ?, purchase_date = ?,
			useful_life_years = ?, method = ?, depreciation_rate = ?,
			salvage_value = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		a.Name, nullString(a.Description),
		a.PurchasePrice.String(),
		a.PurchaseDate.UTC().Format(time.RFC3339),
		a.UsefulLifeYears,
		string(a.Method),
		nullDecimal(a.DepreciationRate),
		a.SalvageValue.String(),
		a.UpdatedAt.UTC().Format(timestampLayout),
		a.ID,
	)
	if isUniqueConstraintError(err) {
		return register.ErrDuplicateName
	}
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes an asset.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM assets WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Reset removes every asset (dev only).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM assets")
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (register.Asset, error) {
	var a register.Asset
	var description, rate sql.NullString
	var price, purchaseDate, method, salvage, createdAt, updatedAt string

	err := row.Scan(&a.ID, &a.Name, &description, &price, &purchaseDate, &a.UsefulLifeYears,
		&method, &rate, &salvage, &createdAt, &updatedAt)
	if err != nil {
		return register.Asset{}, err
	}

	a.Description = description.String
	a.Method = depreciation.Method(method)
	if a.PurchasePrice, err = decimal.NewFromString(price); err != nil {
		return register.Asset{}, fmt.Errorf("asset %s: purchase price: %w", a.ID, err)
	}
	if a.SalvageValue, err = decimal.NewFromString(salvage); err != nil {
		return register.Asset{}, fmt.Errorf("asset %s: salvage value: %w", a.ID, err)
	}
	if rate.Valid {
		r, err := decimal.NewFromString(rate.String)
		if err != nil {
			return register.Asset{}, fmt.Errorf("asset %s: depreciation rate: %w", a.ID, err)
		}
		a.DepreciationRate = &r
	}
	a.PurchaseDate, _ = time.Parse(time.RFC3339, purchaseDate)
	a.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	a.UpdatedAt, _ = time.Parse(timestampLayout, updatedAt)
	return a, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return register.ErrAssetNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
