package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

const (
	readLogFile = "read.json"
)

// ReadLog is the persisted list of items the user has read. plan falls back
// to it when no --read items are given.
type ReadLog struct {
	// Items are corpus item IDs in the order they were marked read.
	Items []string `json:"items"`

	// UpdatedAt is when the log was last saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// Add appends ids that are not already in the log and returns how many were
// new.
func (l *ReadLog) Add(ids ...string) int {
	added := 0
	for _, id := range ids {
		if id == "" || slices.Contains(l.Items, id) {
			continue
		}
		l.Items = append(l.Items, id)
		added++
	}
	return added
}

// Remove drops ids from the log and returns how many were present.
func (l *ReadLog) Remove(ids ...string) int {
	before := len(l.Items)
	l.Items = slices.DeleteFunc(l.Items, func(item string) bool {
		return slices.Contains(ids, item)
	})
	return before - len(l.Items)
}

// LoadReadLog loads the reading log from a target .shelf/read.json.
// Returns an empty log if none has been saved yet.
func (m *Manager) LoadReadLog(overrideDir string) (*ReadLog, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return &ReadLog{}, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, readLogFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ReadLog{}, nil
		}
		return nil, fmt.Errorf("reading read log: %w", err)
	}

	log := &ReadLog{}
	if err := json.Unmarshal(data, log); err != nil {
		return nil, fmt.Errorf("parsing read log: %w", err)
	}

	return log, nil
}

// SaveReadLog persists the reading log to a target .shelf/read.json.
func (m *Manager) SaveReadLog(log *ReadLog, overrideDir string) error {
	if log == nil {
		return errors.New("cannot save nil read log")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}
	if dir == "" {
		return fmt.Errorf("no %s directory found; run `shelf init` first", DirName)
	}

	log.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling read log: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, readLogFile), data, 0o600); err != nil {
		return fmt.Errorf("writing read log: %w", err)
	}

	return nil
}

// ClearReadLog removes the reading log. Returns nil if it does not exist.
func (m *Manager) ClearReadLog(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}
	if dir == "" {
		return nil
	}

	if err := os.Remove(filepath.Join(dir, readLogFile)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing read log: %w", err)
	}

	return nil
}
