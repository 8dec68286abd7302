package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Store is a directory holding local, per-user widget state.
type Store struct {
	Dir string
}

// DefaultDir returns the per-user state dir (e.g. ~/.config/checklist).
func DefaultDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching the real config dir).
	if v := strings.TrimSpace(os.Getenv("CHECKLIST_CONFIG_DIR")); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "checklist"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) path(name string) string {
	return filepath.Join(filepath.Clean(s.Dir), name)
}

// LogPath is where the interactive TUI writes its log.
func (s Store) LogPath() string {
	return s.path("checklist.log")
}
