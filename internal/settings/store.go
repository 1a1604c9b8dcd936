// Package settings persists per-user booking settings as one JSON file per
// lowercased username.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"meetbook/internal/model"
)

// Store is a flat key-per-user file store. Writes to the same user are
// serialized process-locally; concurrent processes remain last-writer-wins.
type Store struct {
	root string
	mu   sync.Mutex
}

// NewStore creates the root directory if needed and returns a store.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	return &Store{root: root}, nil
}

// Has reports whether settings were ever stored for username.
func (s *Store) Has(username string) bool {
	_, err := os.Stat(s.path(username))
	return err == nil
}

// Retrieve returns the stored settings for username, or the disabled
// defaults when none exist.
func (s *Store) Retrieve(username string) (model.BookingSettings, error) {
	data, err := os.ReadFile(s.path(username))
	if errors.Is(err, fs.ErrNotExist) {
		return model.DisabledSettings(username), nil
	}
	if err != nil {
		return model.BookingSettings{}, fmt.Errorf("read settings for %s: %w", username, err)
	}

	var settings model.BookingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.BookingSettings{}, fmt.Errorf("decode settings for %s: %w", username, err)
	}
	return settings, nil
}

// Store writes settings for username, replacing any previous value.
func (s *Store) Store(username string, settings model.BookingSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings for %s: %w", username, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(username), data, 0o644); err != nil {
		return fmt.Errorf("write settings for %s: %w", username, err)
	}
	return nil
}

// path maps a username to its settings file. Base strips any path
// separators so a crafted username cannot escape the store root.
func (s *Store) path(username string) string {
	return filepath.Join(s.root, filepath.Base(strings.ToLower(username)))
}
