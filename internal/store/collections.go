package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Load returns the blob stored under key. ok is false when nothing has been
// saved yet.
func (s *Store) Load(key string) (blob []byte, ok bool, err error) {
	var text string
	err = s.db.QueryRow(`SELECT blob FROM collections WHERE key = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return []byte(text), true, nil
}

// Save replaces the blob under key.
func (s *Store) Save(key string, blob []byte) error {
	return s.SaveBatch(map[string][]byte{key: blob})
}

// SaveBatch writes every blob in one transaction; either all keys change or
// none do.
func (s *Store) SaveBatch(blobs map[string][]byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	keys := make([]string, 0, len(blobs))
	for k := range blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	now := time.Now().UTC().Format(time.RFC3339)
	for _, k := range keys {
		_, err := tx.Exec(
			`INSERT INTO collections (key, blob, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
			k, string(blobs[k]), now,
		)
		if err != nil {
			return fmt.Errorf("save %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM collections WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *Store) UpdatedAt(key string) (time.Time, error) {
	var text string
	err := s.db.QueryRow(`SELECT updated_at FROM collections WHERE key = ?`, key).Scan(&text)
	if err != nil {
		return time.Time{}, fmt.Errorf("updated_at %q: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse updated_at %q: %w", key, err)
	}
	return t, nil
}
