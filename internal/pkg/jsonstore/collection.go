package jsonstore

import (
	"fmt"

	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

// Collection is the add/update/delete cycle layered over a single JSON array
// file. Records are addressed by the key extractor; "record not found" is a
// recoverable, reported failure (apperrors.ErrResourceNotFound), never a
// panic. All mutations run the full read-locate-rewrite cycle under the
// file's write lock.
type Collection[T any] struct {
	store *Store
	path  string
	key   func(T) string
}

// NewCollection creates a collection over the array file at path. The key
// function extracts each record's unique key.
func NewCollection[T any](store *Store, path string, key func(T) string) *Collection[T] {
	return &Collection[T]{store: store, path: path, key: key}
}

// Path returns the file backing the collection.
func (c *Collection[T]) Path() string {
	return c.path
}

// All returns every record in the collection. An absent or corrupt file
// yields the empty collection.
func (c *Collection[T]) All() []T {
	return Read(c.store, c.path, []T{})
}

// Find returns the record with the given key.
func (c *Collection[T]) Find(key string) (T, error) {
	var zero T
	for _, item := range c.All() {
		if c.key(item) == key {
			return item, nil
		}
	}
	return zero, apperrors.ErrResourceNotFound
}

// FindBy returns the first record matching the predicate.
func (c *Collection[T]) FindBy(match func(T) bool) (T, error) {
	var zero T
	for _, item := range c.All() {
		if match(item) {
			return item, nil
		}
	}
	return zero, apperrors.ErrResourceNotFound
}

// Add appends a record, rejecting a duplicate key with
// apperrors.ErrResourceAlreadyExists. The caller is expected to have filled
// in generated fields (id, timestamps) before calling.
func (c *Collection[T]) Add(record T) error {
	newKey := c.key(record)
	_, err := Update(c.store, c.path, []T{}, func(items []T) ([]T, error) {
		for _, item := range items {
			if c.key(item) == newKey {
				return nil, fmt.Errorf("%w: key %q", apperrors.ErrResourceAlreadyExists, newKey)
			}
		}
		return append(items, record), nil
	})
	return err
}

// Update locates a record by key and applies mutate to it in place, then
// rewrites the collection. Returns the mutated record.
func (c *Collection[T]) Update(key string, mutate func(*T) error) (T, error) {
	var updated T
	_, err := Update(c.store, c.path, []T{}, func(items []T) ([]T, error) {
		for i := range items {
			if c.key(items[i]) == key {
				if err := mutate(&items[i]); err != nil {
					return nil, err
				}
				updated = items[i]
				return items, nil
			}
		}
		return nil, apperrors.ErrResourceNotFound
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete filters out the record with the given key. When nothing matches the
// file is left untouched and ErrResourceNotFound is returned.
func (c *Collection[T]) Delete(key string) error {
	_, err := Update(c.store, c.path, []T{}, func(items []T) ([]T, error) {
		filtered := items[:0:0]
		for _, item := range items {
			if c.key(item) != key {
				filtered = append(filtered, item)
			}
		}
		if len(filtered) == len(items) {
			return nil, apperrors.ErrResourceNotFound
		}
		return filtered, nil
	})
	return err
}

// Mutate runs a bulk read-modify-write cycle over the whole collection
// under its write lock.
func (c *Collection[T]) Mutate(mutate func([]T) ([]T, error)) error {
	_, err := Update(c.store, c.path, []T{}, mutate)
	return err
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(items []T) error {
	return Write(c.store, c.path, items)
}
