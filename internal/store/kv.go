package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"estatekeeper/internal/types"
)

// Key-value table keys. Profile, settings, and metadata each occupy one row,
// replaced wholesale on save.
const (
	keyProfile  = "profile"
	keySettings = "settings"
	keyMetadata = "metadata"
)

// PutKV stores value under key as JSON inside the transaction.
func (t *Tx) PutKV(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode kv %s: %w", key, err)
	}
	_, err = t.tx.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to store kv %s: %w", key, err)
	}
	t.touch(KV)
	return nil
}

// GetKV loads the value under key into dest. Returns false when the key is
// absent; dest is left untouched.
func (t *Tx) GetKV(key string, dest interface{}) (bool, error) {
	var raw string
	err := t.tx.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load kv %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to decode kv %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) getKV(key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load kv %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to decode kv %s: %w", key, err)
	}
	return true, nil
}

// Profile returns the stored estate profile, or nil when none is saved.
func (s *Store) Profile() (*types.EstateProfile, error) {
	var profile types.EstateProfile
	found, err := s.getKV(keyProfile, &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// Settings returns stored settings, falling back to defaults when absent.
func (s *Store) Settings() (types.AppSettings, error) {
	settings := types.DefaultSettings()
	if _, err := s.getKV(keySettings, &settings); err != nil {
		return types.DefaultSettings(), err
	}
	return settings, nil
}

// Metadata returns stored metadata, falling back to defaults when absent.
func (s *Store) Metadata() (types.Metadata, error) {
	meta := types.DefaultMetadata()
	if _, err := s.getKV(keyMetadata, &meta); err != nil {
		return types.DefaultMetadata(), err
	}
	return meta, nil
}

// PutProfile stores the profile inside the transaction.
func (t *Tx) PutProfile(profile *types.EstateProfile) error {
	return t.PutKV(keyProfile, profile)
}

// PutSettings stores the settings inside the transaction.
func (t *Tx) PutSettings(settings types.AppSettings) error {
	return t.PutKV(keySettings, settings)
}

// PutMetadata stores the metadata inside the transaction.
func (t *Tx) PutMetadata(meta types.Metadata) error {
	return t.PutKV(keyMetadata, meta)
}

// GetMetadata loads metadata inside the transaction, defaulting when absent.
func (t *Tx) GetMetadata() (types.Metadata, error) {
	meta := types.DefaultMetadata()
	if _, err := t.GetKV(keyMetadata, &meta); err != nil {
		return types.DefaultMetadata(), err
	}
	return meta, nil
}

// SetProfile stores the profile in its own transaction.
func (s *Store) SetProfile(profile *types.EstateProfile) error {
	return s.RunInTx(func(tx *Tx) error { return tx.PutProfile(profile) })
}

// SetSettings stores the settings in its own transaction.
func (s *Store) SetSettings(settings types.AppSettings) error {
	return s.RunInTx(func(tx *Tx) error { return tx.PutSettings(settings) })
}

// SetMetadata stores the metadata in its own transaction.
func (s *Store) SetMetadata(meta types.Metadata) error {
	return s.RunInTx(func(tx *Tx) error { return tx.PutMetadata(meta) })
}
