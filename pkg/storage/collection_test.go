package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func TestCollectionMissingFileLoadsEmpty(t *testing.T) {
	coll := NewCollection[record](filepath.Join(t.TempDir(), "records.json"))

	items, err := coll.All()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCollectionInsertPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	coll := NewCollection[record](path)

	require.NoError(t, coll.Insert(record{ID: "a", Value: 1}))
	require.NoError(t, coll.Insert(record{ID: "b", Value: 2}))

	// A fresh instance reads the same file
	reopened := NewCollection[record](path)
	items, err := reopened.All()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}

func TestCollectionUpdate(t *testing.T) {
	coll := NewCollection[record](filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, coll.Insert(record{ID: "a", Value: 1}))

	err := coll.Update(
		func(r record) bool { return r.ID == "a" },
		func(r *record) error { r.Value = 42; return nil },
	)
	require.NoError(t, err)

	items, err := coll.All()
	require.NoError(t, err)
	assert.Equal(t, 42, items[0].Value)
}

func TestCollectionUpdateNotFound(t *testing.T) {
	coll := NewCollection[record](filepath.Join(t.TempDir(), "records.json"))

	err := coll.Update(
		func(r record) bool { return r.ID == "missing" },
		func(r *record) error { r.Value = 42; return nil },
	)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionUpdateAbortsOnMutateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	coll := NewCollection[record](path)
	require.NoError(t, coll.Insert(record{ID: "a", Value: 1}))

	stat, err := os.Stat(path)
	require.NoError(t, err)

	calls := 0
	coll.OnChange(func([]record) { calls++ })

	abort := errors.New("nothing to change")
	err = coll.Update(
		func(r record) bool { return r.ID == "a" },
		func(r *record) error { r.Value = 99; return abort },
	)
	require.ErrorIs(t, err, abort)

	// The record is restored and nothing was written or broadcast.
	items, err := coll.All()
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Value)
	assert.Equal(t, 0, calls)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, stat.ModTime(), after.ModTime(), "file must not be rewritten")
}

func TestCollectionDelete(t *testing.T) {
	coll := NewCollection[record](filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, coll.Insert(record{ID: "a"}))
	require.NoError(t, coll.Insert(record{ID: "b"}))

	require.NoError(t, coll.Delete(func(r record) bool { return r.ID == "a" }))

	items, err := coll.All()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)

	assert.ErrorIs(t, coll.Delete(func(r record) bool { return r.ID == "a" }), ErrNotFound)
}

func TestCollectionUpsert(t *testing.T) {
	coll := NewCollection[record](filepath.Join(t.TempDir(), "records.json"))

	replaced, err := coll.Upsert(func(r record) bool { return r.ID == "a" }, record{ID: "a", Value: 1})
	require.NoError(t, err)
	assert.False(t, replaced)

	replaced, err = coll.Upsert(func(r record) bool { return r.ID == "a" }, record{ID: "a", Value: 2})
	require.NoError(t, err)
	assert.True(t, replaced)

	items, err := coll.All()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Value)
}

func TestCollectionOnChangeFiresWithFullCollection(t *testing.T) {
	coll := NewCollection[record](filepath.Join(t.TempDir(), "records.json"))

	var got []record
	calls := 0
	coll.OnChange(func(items []record) {
		got = items
		calls++
	})

	require.NoError(t, coll.Insert(record{ID: "a"}))
	require.NoError(t, coll.Insert(record{ID: "b"}))

	assert.Equal(t, 2, calls)
	require.Len(t, got, 2)
}

func TestCollectionInsertRevertsOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	coll := NewCollection[record](path)
	require.NoError(t, coll.Insert(record{ID: "a"}))

	// Block the temp file slot so the rewrite fails
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	err := coll.Insert(record{ID: "b"})
	require.Error(t, err)

	items, err := coll.All()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}
