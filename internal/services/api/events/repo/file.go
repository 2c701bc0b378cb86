package repo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/services/api/events/domain"
)

// File is an append-only JSON file backend
// the whole log is rewritten atomically on every append so a crash
// mid-write never leaves a torn file behind
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile builds a file backend rooted at path, creating the parent dir
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, perr.InvalidArgf("events file path is empty")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, perr.Storagef("create events dir %q: %v", dir, err)
		}
	}
	return &File{path: path}, nil
}

// Append loads the current log, adds rec, and rewrites the file
func (f *File) Append(_ context.Context, rec domain.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	recs := f.loadLocked()
	recs = append(recs, rec)

	buf, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return perr.Storagef("encode events: %v", err)
	}

	// temp file in the same dir so the rename stays on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".webhooks-*.json")
	if err != nil {
		return perr.Storagef("create temp events file: %v", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return perr.Storagef("write events: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return perr.Storagef("close events file: %v", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return perr.Storagef("replace events file: %v", err)
	}
	return nil
}

// All returns every stored record in arrival order
func (f *File) All(_ context.Context) ([]domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadLocked(), nil
}

// Clear removes the backing file, a missing file is already clear
func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return perr.Storagef("remove events file: %v", err)
	}
	return nil
}

// loadLocked reads the log, a missing or corrupted file yields an empty list
func (f *File) loadLocked() []domain.Record {
	buf, err := os.ReadFile(f.path)
	if err != nil {
		return []domain.Record{}
	}
	var recs []domain.Record
	if err := json.Unmarshal(buf, &recs); err != nil {
		return []domain.Record{}
	}
	return recs
}
