package services

import (
	"fmt"
	"os"
	"path/filepath"
)

// BadgeStore is the path-addressed blob store for rendered badge artifacts.
// Objects are keyed deterministically by badge ID and artifact extension.
type BadgeStore struct {
	dir string
}

func NewBadgeStore(dir string) (*BadgeStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create badge storage directory %s: %w", dir, err)
	}
	return &BadgeStore{dir: dir}, nil
}

// BadgeStoreFromEnv roots the store at BADGE_STORAGE_PATH, defaulting to
// ./storage/badges.
func BadgeStoreFromEnv() (*BadgeStore, error) {
	dir := os.Getenv("BADGE_STORAGE_PATH")
	if dir == "" {
		dir = filepath.Join("storage", "badges")
	}
	return NewBadgeStore(dir)
}

func (s *BadgeStore) PNGPath(badgeID string) string {
	return filepath.Join(s.dir, badgeID+".png")
}

func (s *BadgeStore) PDFPath(badgeID string) string {
	return filepath.Join(s.dir, badgeID+".pdf")
}

func (s *BadgeStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *BadgeStore) Write(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// Delete removes both artifacts for a badge ID. Missing files are not an
// error; deletion is idempotent.
func (s *BadgeStore) Delete(badgeID string) error {
	for _, path := range []string{s.PNGPath(badgeID), s.PDFPath(badgeID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
