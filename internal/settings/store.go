package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
	"sonyremote/internal/bravia"
)

// Keys under which the device endpoint is stored
const (
	KeyAddress = "SonyTVIP"
	KeyPSK     = "SonyTVPreSharedKey"
)

// ErrIncompleteEndpoint is returned when saving an endpoint with an empty field
var ErrIncompleteEndpoint = errors.New("both the TV address and the pre-shared key are required")

// Store is a small key-value store on SQLite holding the device endpoint
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the settings database at path
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// Get returns the value stored under key and whether it exists
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// Endpoint reads the stored endpoint. Missing keys come back empty; the
// transmitter decides what an incomplete endpoint means.
func (s *Store) Endpoint(ctx context.Context) (bravia.Endpoint, error) {
	address, _, err := s.Get(ctx, KeyAddress)
	if err != nil {
		return bravia.Endpoint{}, err
	}
	psk, _, err := s.Get(ctx, KeyPSK)
	if err != nil {
		return bravia.Endpoint{}, err
	}
	return bravia.Endpoint{Address: address, PSK: psk}, nil
}

// SaveEndpoint stores both fields in one transaction. An endpoint with an
// empty field is refused and nothing is written.
func (s *Store) SaveEndpoint(ctx context.Context, endpoint bravia.Endpoint) error {
	if !endpoint.Configured() {
		return ErrIncompleteEndpoint
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for key, value := range map[string]string{KeyAddress: endpoint.Address, KeyPSK: endpoint.PSK} {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, now)
		if err != nil {
			return fmt.Errorf("failed to write setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}
