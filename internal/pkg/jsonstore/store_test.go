package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

type record struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewRequiresDataDir(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestReadAbsentReturnsDefault(t *testing.T) {
	s := newTestStore(t)

	got := Read(s, s.Path("missing.json"), record{ID: "default"})
	assert.Equal(t, "default", got.ID)
}

func TestWriteReadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	path := s.Path("nested", "dir", "rec.json")

	require.NoError(t, Write(s, path, record{ID: "r1", Count: 3}))

	got := Read(s, path, record{})
	assert.Equal(t, record{ID: "r1", Count: 3}, got)
}

func TestWriteIndentsWithTwoSpaces(t *testing.T) {
	s := newTestStore(t)
	path := s.Path("rec.json")

	require.NoError(t, Write(s, path, record{ID: "r1"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"id\": \"r1\"")
}

func TestReadCorruptReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	path := s.Path("broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got := Read(s, path, record{ID: "fallback"})
	assert.Equal(t, "fallback", got.ID)
}

func TestLoadDistinguishesAbsentFromCorrupt(t *testing.T) {
	s := newTestStore(t)

	var v record
	err := Load(s, s.Path("absent.json"), &v)
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := s.Path("broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("]["), 0o644))
	err = Load(s, broken, &v)
	assert.ErrorIs(t, err, apperrors.ErrCorruptedRecord)
}

func TestUpdateMutatesUnderLock(t *testing.T) {
	s := newTestStore(t)
	path := s.Path("counter.json")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Update(s, path, record{ID: "c"}, func(r record) (record, error) {
				r.Count++
				return r, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got := Read(s, path, record{})
	assert.Equal(t, 20, got.Count)
}

func TestUpdateErrorLeavesFileUntouched(t *testing.T) {
	s := newTestStore(t)
	path := s.Path("rec.json")
	require.NoError(t, Write(s, path, record{ID: "r1", Count: 1}))

	sentinel := errors.New("nope")
	_, err := Update(s, path, record{}, func(r record) (record, error) {
		return record{}, sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	got := Read(s, path, record{})
	assert.Equal(t, record{ID: "r1", Count: 1}, got)
}

func TestRemoveAbsentIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Remove(s.Path("never-existed.json")))
}

func TestWithLockDedupesRepeatedPaths(t *testing.T) {
	s := newTestStore(t)
	path := s.Path("self.json")

	// A self-follow style operation passes the same path twice; the lock
	// must not be acquired twice.
	err := s.WithLock(func() error {
		return WriteLocked(s, path, record{ID: "x"})
	}, path, path)
	require.NoError(t, err)

	got := Read(s, path, record{})
	assert.Equal(t, "x", got.ID)
}

func TestWithLockOppositeOrderDoesNotDeadlock(t *testing.T) {
	s := newTestStore(t)
	a := s.Path("a.json")
	b := s.Path("b.json")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.WithLock(func() error { return nil }, a, b)
		}()
		go func() {
			defer wg.Done()
			_ = s.WithLock(func() error { return nil }, b, a)
		}()
	}
	wg.Wait()
}

func TestListFilesAndDirs(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, Write(s, s.Path("bank", "physics", "a.json"), record{ID: "a"}))
	require.NoError(t, Write(s, s.Path("bank", "physics", "b.json"), record{ID: "b"}))
	require.NoError(t, Write(s, s.Path("bank", "chemistry", "c.json"), record{ID: "c"}))

	dirs, err := s.ListDirs(s.Path("bank"))
	require.NoError(t, err)
	assert.Equal(t, []string{"chemistry", "physics"}, dirs)

	files, err := s.ListFiles(s.Path("bank", "physics"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, files)

	absent, err := s.ListFiles(filepath.Join(s.Root(), "no-such-dir"))
	require.NoError(t, err)
	assert.Empty(t, absent)
}
