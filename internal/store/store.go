package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"backend/internal/models"
)

// Store holds the whole data document in memory and persists it as one JSON
// file. A single mutex serializes writers; the document's Version field is
// incremented on every successful write.
type Store struct {
	path string

	mu sync.RWMutex
	db *models.Database
}

// Open reads the document at path. A missing file yields an empty document;
// missing sections are defaulted so older files keep loading.
func Open(path string) (*Store, error) {
	db := &models.Database{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, db); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// first run
	default:
		return nil, err
	}

	normalize(db)
	return &Store{path: path, db: db}, nil
}

func normalize(db *models.Database) {
	if db.Products == nil {
		db.Products = []models.Product{}
	}
	if db.Orders == nil {
		db.Orders = []models.Order{}
	}
	if db.Settings.Push.Subscriptions == nil {
		db.Settings.Push.Subscriptions = []models.PushSubscription{}
	}
}

// View runs fn with read access to the current document. fn must not mutate
// the document or retain references past its return.
func (s *Store) View(fn func(db *models.Database) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.db)
}

// Update runs fn against a copy of the document. Only when fn succeeds is the
// copy persisted and swapped in, so a failed update leaves no partial state.
func (s *Store) Update(fn func(db *models.Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := clone(s.db)
	if err != nil {
		return err
	}
	if err := fn(next); err != nil {
		return err
	}
	next.Version++

	if err := s.persist(next); err != nil {
		return err
	}
	s.db = next
	return nil
}

func (s *Store) persist(db *models.Database) error {
	raw, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func clone(db *models.Database) (*models.Database, error) {
	raw, err := json.Marshal(db)
	if err != nil {
		return nil, err
	}
	next := &models.Database{}
	if err := json.Unmarshal(raw, next); err != nil {
		return nil, err
	}
	normalize(next)
	return next, nil
}
