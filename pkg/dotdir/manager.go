// Package dotdir manages the .shelf/ and ~/.shelf directories.
//
// The directory holds config.toml, the reading log (the items the user has
// marked as read) and, when configured, the sqlite embedding cache.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the shelf directory.
	DirName = ".shelf"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .shelf/ directory.
// Order of precedence is as follows:
//  1. Provided override (created if missing)
//  2. Local ./.shelf/ dir
//  3. Home ~/.shelf/ dir
//
// If none is found, Target returns an empty string and no error.
func (m *Manager) Target(overrideDir string) (string, error) {
	switch {
	case overrideDir != "":
		if err := os.MkdirAll(overrideDir, 0o755); err != nil {
			return "", fmt.Errorf("creating shelf directory %s: %w", overrideDir, err)
		}
		return filepath.Abs(overrideDir)

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return filepath.Join(cwd, DirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	dir := filepath.Join(home, DirName)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}

	return "", nil
}

// Init creates a .shelf/ directory inside parent and returns its path.
// created is false when the directory already existed.
func (m *Manager) Init(parent string) (dir string, created bool, err error) {
	dir, err = filepath.Abs(filepath.Join(parent, DirName))
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating %s directory: %w", DirName, err)
	}
	return dir, true, nil
}

// localDirExists checks whether a .shelf/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, DirName))
	return err == nil && info.IsDir()
}
