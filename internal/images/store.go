// Package images keeps locally captured scan photos on disk between
// capture and the post-save upload, with a short retention window.
package images

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Store is a flat directory of kept photos, one file per scan id.
type Store struct {
	dir string
	log *slog.Logger
}

// NewStore creates the directory if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("images: create dir %s: %w", dir, err)
	}
	return &Store{dir: dir, log: logger.With("service", "images")}, nil
}

// Keep writes the photo bytes for scanID and returns the local path.
func (s *Store) Keep(scanID string, data []byte) (string, error) {
	path := s.pathFor(scanID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("images: keep %s: %w", scanID, err)
	}
	return path, nil
}

// PathFor returns the kept photo path for scanID, and whether the file
// exists.
func (s *Store) PathFor(scanID string) (string, bool) {
	path := s.pathFor(scanID)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Read returns the bytes of a kept photo by its local path.
func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("images: read %s: %w", path, err)
	}
	return data, nil
}

// Sweep deletes kept photos older than retention and returns the count.
// Runs on app start; a stale photo only matters within one session.
func (s *Store) Sweep(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("images: read dir %s: %w", s.dir, err)
	}

	cutoff := time.Now().Add(-retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.log.Warn("sweep remove failed", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		removed++
	}

	return removed, nil
}

func (s *Store) pathFor(scanID string) string {
	return filepath.Join(s.dir, scanID+".jpg")
}
