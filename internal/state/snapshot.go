package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pathlearn/pathinformatica/internal/content"
)

// Snapshot is the serializable subset of application state that survives
// restarts: the progress record and the navigation pointers. Content
// collections are excluded to avoid redundant writes; they are restored
// from the embedded datasets or the durable store.
type Snapshot struct {
	Progress      content.UserProgress `json:"progress"`
	CurrentModule string               `json:"currentModule,omitempty"`
	CurrentLesson string               `json:"currentLesson,omitempty"`
}

// Persister stores and recalls the state snapshot.
type Persister interface {
	// Save replaces the persisted snapshot. Implementations must not
	// corrupt a previously persisted snapshot on failure.
	Save(Snapshot) error
	// Load returns the persisted snapshot, or found=false on first run.
	Load() (snap Snapshot, found bool, err error)
}

// FileStore persists the snapshot as a JSON file. Writes go to a temporary
// file in the same directory followed by a rename, so a crash mid-write
// leaves the previous snapshot intact (last-successful-write-wins).
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Save writes the snapshot atomically.
func (f *FileStore) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot if one exists.
func (f *FileStore) Load() (Snapshot, bool, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

// Remove deletes the persisted snapshot. Missing files are not an error.
func (f *FileStore) Remove() error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}
