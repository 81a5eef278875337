package snapshotfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fxpulse/internal/domain"

	"github.com/spf13/afero"
)

// Store persists the snapshot as a single flat JSON object.
type Store struct {
	fs   afero.Fs
	path string
}

// Load returns an empty snapshot when the file does not exist yet.
func (s *Store) Load(_ context.Context) (domain.Snapshot, error) {
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %q: %w", s.path, err)
	}

	var snap domain.Snapshot
	if err = json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("snapshot %q: %v: %w", s.path, err, domain.ErrMalformedSnapshot)
	}
	if snap == nil {
		return nil, fmt.Errorf("snapshot %q is not a JSON object: %w", s.path, domain.ErrMalformedSnapshot)
	}
	return snap, nil
}

// Save replaces the snapshot by writing a temp file next to it and renaming it over the target.
func (s *Store) Save(_ context.Context, snap domain.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir %q: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp snapshot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err = s.fs.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp snapshot: %w", err)
	}
	if err = s.fs.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot %q: %w", s.path, err)
	}
	return nil
}

func (s *Store) Path() string { return s.path }

func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// NewOsStore stores the snapshot on the real filesystem.
func NewOsStore(path string) *Store {
	return NewStore(afero.NewOsFs(), path)
}
