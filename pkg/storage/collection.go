package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// ErrNotFound is returned when a predicate matches no record.
var ErrNotFound = errors.New("record not found")

// Collection is a JSON-array file on disk holding every record of one
// resource type. Reads return a snapshot of the whole collection; every
// mutation rewrites the whole file and then invokes the change hook with
// the new state. Last writer wins; the mutex only serializes mutations
// within this process.
type Collection[T any] struct {
	path     string
	mu       sync.Mutex
	items    []T
	loaded   bool
	onChange func([]T)
}

// NewCollection opens (or lazily creates) the collection file at path.
func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// OnChange registers a hook invoked with the full collection after every
// successful mutation. Used to feed the SSE broker.
func (c *Collection[T]) OnChange(fn func([]T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

func (c *Collection[T]) load() error {
	if c.loaded {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			c.items = []T{}
			c.loaded = true
			return nil
		}
		return err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.items = items
	c.loaded = true
	return nil
}

func (c *Collection[T]) persist() error {
	data, err := json.MarshalIndent(c.items, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := c.path + ".tmp"
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

	return os.Rename(tmpFile, c.path)
}

func (c *Collection[T]) notify() {
	if c.onChange != nil {
		c.onChange(append([]T(nil), c.items...))
	}
}

// All returns a snapshot of every record in the collection.
func (c *Collection[T]) All() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return append([]T(nil), c.items...), nil
}

// Insert appends a record and rewrites the file.
func (c *Collection[T]) Insert(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return err
	}
	c.items = append(c.items, item)
	if err := c.persist(); err != nil {
		c.items = c.items[:len(c.items)-1]
		return err
	}
	c.notify()
	return nil
}

// Update applies mutate to the first record matching the predicate.
// Returns ErrNotFound if nothing matches. When mutate returns an error the
// record is restored and nothing is written or broadcast.
func (c *Collection[T]) Update(match func(T) bool, mutate func(*T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return err
	}
	for i := range c.items {
		if match(c.items[i]) {
			before := c.items[i]
			if err := mutate(&c.items[i]); err != nil {
				c.items[i] = before
				return err
			}
			if err := c.persist(); err != nil {
				c.items[i] = before
				return err
			}
			c.notify()
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the first record matching the predicate.
// Returns ErrNotFound if nothing matches.
func (c *Collection[T]) Delete(match func(T) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return err
	}
	for i := range c.items {
		if match(c.items[i]) {
			removed := c.items[i]
			c.items = append(c.items[:i], c.items[i+1:]...)
			if err := c.persist(); err != nil {
				c.items = append(c.items[:i], append([]T{removed}, c.items[i:]...)...)
				return err
			}
			c.notify()
			return nil
		}
	}
	return ErrNotFound
}

// Upsert replaces the first record matching the predicate, or appends the
// record if nothing matches. Returns true if an existing record was replaced.
func (c *Collection[T]) Upsert(match func(T) bool, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return false, err
	}
	for i := range c.items {
		if match(c.items[i]) {
			before := c.items[i]
			c.items[i] = item
			if err := c.persist(); err != nil {
				c.items[i] = before
				return true, err
			}
			c.notify()
			return true, nil
		}
	}
	c.items = append(c.items, item)
	if err := c.persist(); err != nil {
		c.items = c.items[:len(c.items)-1]
		return false, err
	}
	c.notify()
	return false, nil
}

// Replace swaps the entire collection contents.
func (c *Collection[T]) Replace(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return err
	}
	before := c.items
	c.items = append([]T(nil), items...)
	if err := c.persist(); err != nil {
		c.items = before
		return err
	}
	c.notify()
	return nil
}
