package jsonstore

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestCollection(t *testing.T) *Collection[item] {
	t.Helper()
	s := newTestStore(t)
	return NewCollection(s, s.Path("items.json"), func(i item) string { return i.ID })
}

func TestCollectionAllEmptyWhenAbsent(t *testing.T) {
	c := newTestCollection(t)
	assert.Empty(t, c.All())
}

func TestCollectionAddAndFind(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Add(item{ID: "1", Name: "one"}))
	require.NoError(t, c.Add(item{ID: "2", Name: "two"}))

	got, err := c.Find("2")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Name)

	_, err = c.Find("3")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCollectionAddRejectsDuplicateKey(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Add(item{ID: "1", Name: "one"}))

	err := c.Add(item{ID: "1", Name: "again"})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)

	assert.Len(t, c.All(), 1)
}

func TestCollectionFindBy(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Add(item{ID: "1", Name: "alpha"}))
	require.NoError(t, c.Add(item{ID: "2", Name: "beta"}))

	got, err := c.FindBy(func(i item) bool { return i.Name == "beta" })
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)

	_, err = c.FindBy(func(i item) bool { return false })
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCollectionUpdate(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Add(item{ID: "1", Name: "before"}))

	updated, err := c.Update("1", func(i *item) error {
		i.Name = "after"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)

	got, err := c.Find("1")
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
}

func TestCollectionUpdateMissingKey(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.Update("ghost", func(i *item) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCollectionUpdateMutateErrorAborts(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Add(item{ID: "1", Name: "keep"}))

	sentinel := errors.New("refused")
	_, err := c.Update("1", func(i *item) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	got, err := c.Find("1")
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Name)
}

func TestCollectionDelete(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Add(item{ID: "1"}))
	require.NoError(t, c.Add(item{ID: "2"}))

	require.NoError(t, c.Delete("1"))
	assert.Len(t, c.All(), 1)

	err := c.Delete("1")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCollectionSurvivesCorruptFile(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, os.WriteFile(c.Path(), []byte("not json"), 0o644))

	// Reads fall back to an empty collection and the next mutation heals
	// the file.
	assert.Empty(t, c.All())
	require.NoError(t, c.Add(item{ID: "1", Name: "healed"}))

	got, err := c.Find("1")
	require.NoError(t, err)
	assert.Equal(t, "healed", got.Name)
}

func TestCollectionReplace(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Add(item{ID: "old"}))

	require.NoError(t, c.Replace([]item{{ID: "a"}, {ID: "b"}}))

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
}
