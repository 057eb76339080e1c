package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"bookstore-ledger/ledger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFile keeps a ledger snapshot in a single JSON document on disk.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile { return &JSONFile{path: path} }

func (f *JSONFile) Path() string { return f.path }

// Save writes snap to a temporary file next to the target and renames it
// into place, so a crash never leaves a half-written snapshot.
func (f *JSONFile) Save(_ context.Context, snap ledger.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Load reads the snapshot file. A missing file is a first run and yields an
// empty snapshot.
func (f *JSONFile) Load(_ context.Context) (ledger.Snapshot, error) {
	var snap ledger.Snapshot
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return snap, nil
}

func (f *JSONFile) Close() error { return nil }
