// Package cache persists the latest prediction result so a restart
// redisplays it instantly. It is a view-state cache, not a record of
// truth — prediction history on the server is the record of truth.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rachitverma/careerlens/pkg/domain"
)

const cacheFile = "latest_prediction.json"

// Cache stores the most recent prediction result set under a state
// directory, surviving process restarts on the same machine.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Persist writes the result set. The write is complete when Persist
// returns: the coordinator relies on this ordering before it starts the
// history/insights fan-out.
func (c *Cache) Persist(predictions []domain.RolePrediction) error {
	if err := os.MkdirAll(c.dir, 0700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.Marshal(predictions)
	if err != nil {
		return fmt.Errorf("encode prediction: %w", err)
	}
	if err := os.WriteFile(c.path(), data, 0600); err != nil {
		return fmt.Errorf("save prediction: %w", err)
	}
	return nil
}

// Restore returns the cached result set, or (nil, nil) when none exists.
// A corrupt cache file reads as absent; it is view state, not data.
func (c *Cache) Restore() ([]domain.RolePrediction, error) {
	data, err := os.ReadFile(c.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read prediction cache: %w", err)
	}
	var predictions []domain.RolePrediction
	if err := json.Unmarshal(data, &predictions); err != nil {
		return nil, nil
	}
	if len(predictions) == 0 {
		return nil, nil
	}
	return predictions, nil
}

// Clear removes the cached result. Idempotent.
func (c *Cache) Clear() error {
	err := os.Remove(c.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear prediction cache: %w", err)
	}
	return nil
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, cacheFile)
}
