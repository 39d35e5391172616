package storage

import (
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// Document is a single JSON object persisted to its own file, for
// resources that are one record rather than a collection (entry stats).
type Document[T any] struct {
	path   string
	mu     sync.Mutex
	value  T
	loaded bool
}

func NewDocument[T any](path string) *Document[T] {
	return &Document[T]{path: path}
}

func (d *Document[T]) load() error {
	if d.loaded {
		return nil
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			d.loaded = true
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, &d.value); err != nil {
		return err
	}
	d.loaded = true
	return nil
}

func (d *Document[T]) persist() error {
	data, err := json.MarshalIndent(d.value, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(d.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := d.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, d.path)
}

// Get returns the current value.
func (d *Document[T]) Get() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.load()
	return d.value, err
}

// Mutate applies fn to the value and persists it. If the write fails the
// in-memory value is reverted to its previous state.
func (d *Document[T]) Mutate(fn func(*T)) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.load(); err != nil {
		return d.value, err
	}
	before := d.value
	fn(&d.value)
	if err := d.persist(); err != nil {
		d.value = before
		return d.value, err
	}
	return d.value, nil
}
