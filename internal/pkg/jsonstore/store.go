package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/logger"
)

// Store provides load/store of JSON-serializable values rooted at a data
// directory. Absent files are an expected, non-exceptional condition: reads
// return the caller's default value instead of an error. Files that exist but
// fail to parse are logged and also replaced by the default, so a corrupted
// record never takes a read path down.
//
// Concurrent read-modify-write cycles against the same file are serialized by
// a per-path mutex, so two handlers mutating the same collection cannot race
// each other into a last-writer-wins overwrite.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// New creates a Store rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dataDir).Msg("Failed to create data directory")
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return &Store{
		root:  dataDir,
		locks: make(map[string]*sync.RWMutex),
	}, nil
}

// Root returns the data directory the store is rooted at.
func (s *Store) Root() string {
	return s.root
}

// Path resolves a relative record location to an absolute file path.
func (s *Store) Path(parts ...string) string {
	return filepath.Join(append([]string{s.root}, parts...)...)
}

// pathLock returns the mutex guarding a single file path.
func (s *Store) pathLock(path string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[path]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[path] = l
	}
	return l
}

// WithLock runs fn while holding the write locks of every given path. Paths
// are sorted before locking so two callers locking the same pair in opposite
// order cannot deadlock. Used for cross-file operations like the follow graph.
func (s *Store) WithLock(fn func() error, paths ...string) error {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	prev := ""
	for _, p := range sorted {
		if p == prev {
			// The per-path mutexes are not reentrant
			continue
		}
		prev = p
		l := s.pathLock(p)
		l.Lock()
		defer l.Unlock()
	}
	return fn()
}

// readFile loads and parses path into v. Returns os.ErrNotExist when absent
// and apperrors.ErrCorruptedRecord when the content does not parse.
func (s *Store) readFile(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptedRecord, path, err)
	}
	return nil
}

// writeFile serializes v with stable 2-space indentation and overwrites path,
// creating parent directories first.
func (s *Store) writeFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to create record directory")
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record for %s: %w", path, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write record")
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Read loads the value at path, returning def when the file is absent or
// does not parse. Parse failures are logged, never propagated.
func Read[T any](s *Store, path string, def T) T {
	l := s.pathLock(path)
	l.RLock()
	defer l.RUnlock()
	return readLocked(s, path, def)
}

func readLocked[T any](s *Store, path string, def T) T {
	var v T
	err := s.readFile(path, &v)
	switch {
	case err == nil:
		return v
	case errors.Is(err, os.ErrNotExist):
		return def
	case errors.Is(err, apperrors.ErrCorruptedRecord):
		logger.Warn().Str("path", path).Err(err).Msg("Record failed to parse, substituting default")
		return def
	default:
		logger.Error().Str("path", path).Err(err).Msg("Record read failed, substituting default")
		return def
	}
}

// Load parses the record at path into v, surfacing os.ErrNotExist and
// apperrors.ErrCorruptedRecord instead of substituting a default. Scan-based
// listings use it to tell a corrupt file from a legitimately sparse one.
func Load[T any](s *Store, path string, v *T) error {
	l := s.pathLock(path)
	l.RLock()
	defer l.RUnlock()
	return s.readFile(path, v)
}

// ReadLocked is Read for callers already holding the path's lock through
// WithLock. Using Read inside WithLock would self-deadlock, since the
// per-path mutexes are not reentrant.
func ReadLocked[T any](s *Store, path string, def T) T {
	return readLocked(s, path, def)
}

// WriteLocked is Write for callers already holding the path's lock through
// WithLock.
func WriteLocked[T any](s *Store, path string, v T) error {
	return s.writeFile(path, v)
}

// Write stores v at path, overwriting any previous content.
func Write[T any](s *Store, path string, v T) error {
	l := s.pathLock(path)
	l.Lock()
	defer l.Unlock()
	return s.writeFile(path, v)
}

// Update runs a read-modify-write cycle against path under its write lock.
// The mutate function receives the current value (or def when absent) and
// returns the value to persist. Errors from mutate abort the cycle without
// touching the file.
func Update[T any](s *Store, path string, def T, mutate func(T) (T, error)) (T, error) {
	var zero T
	l := s.pathLock(path)
	l.Lock()
	defer l.Unlock()

	current := readLocked(s, path, def)
	next, err := mutate(current)
	if err != nil {
		return zero, err
	}
	if err := s.writeFile(path, next); err != nil {
		return zero, err
	}
	return next, nil
}

// Exists reports whether a record file is present.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes a record file. Removing an absent file is not an error.
func (s *Store) Remove(path string) error {
	l := s.pathLock(path)
	l.Lock()
	defer l.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Error().Err(err).Str("path", path).Msg("Failed to remove record")
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// ListFiles returns the names of regular files directly under dir, sorted.
// An absent directory yields an empty listing.
func (s *Store) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListDirs returns the names of subdirectories directly under dir, sorted.
func (s *Store) ListDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
