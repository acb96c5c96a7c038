package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/calai-app/calai/pkg/model"
	"go.uber.org/zap"
)

// Durable key-value layout. The registry of all users lives under one key
// as a JSON blob and the active user id under another, mirroring the
// whole-aggregate persistence unit of the update layer.
const (
	keyUsers       = "users"
	keyCurrentUser = "current_user"
)

// Store persists the user registry and session pointer in the kv table.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New creates a Store over an opened, migrated database.
func New(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// LoadRegistry reads the full user registry. A missing key yields an empty
// registry, which is the fresh-install state.
func (s *Store) LoadRegistry() (model.Registry, error) {
	raw, ok, err := s.get(keyUsers)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if !ok {
		return model.Registry{}, nil
	}
	var reg model.Registry
	if err := json.Unmarshal([]byte(raw), &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if reg == nil {
		reg = model.Registry{}
	}
	return reg, nil
}

// SaveRegistry writes the full registry as one JSON value.
func (s *Store) SaveRegistry(reg model.Registry) error {
	raw, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if err := s.put(keyUsers, string(raw)); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// LoadCurrentUser reads the active user id; ok is false when no user is
// logged in.
func (s *Store) LoadCurrentUser() (string, bool, error) {
	id, ok, err := s.get(keyCurrentUser)
	if err != nil {
		return "", false, fmt.Errorf("load current user: %w", err)
	}
	if !ok || id == "" {
		return "", false, nil
	}
	return id, true, nil
}

// SaveCurrentUser records the active user id; an empty id clears it.
func (s *Store) SaveCurrentUser(id string) error {
	if err := s.put(keyCurrentUser, id); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}
	return nil
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(key, value string) error {
	_, err := s.db.Exec(`
INSERT INTO kv(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}
