package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRecordDefaultsToEmptyLists(t *testing.T) {
	repo := NewFollowRepository(newTestStore(t))

	rec, err := repo.GetFollowRecord(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.UserID)
	assert.NotNil(t, rec.Following)
	assert.NotNil(t, rec.Followers)
	assert.Empty(t, rec.Following)
	assert.Empty(t, rec.Followers)
}

func TestFollowUpdatesBothSides(t *testing.T) {
	repo := NewFollowRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Follow(ctx, "u1", "u2"))

	follower, err := repo.GetFollowRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, follower.Following)
	assert.Empty(t, follower.Followers)

	followee, err := repo.GetFollowRecord(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, followee.Followers)
	assert.Empty(t, followee.Following)
}

func TestFollowIsIdempotent(t *testing.T) {
	repo := NewFollowRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Follow(ctx, "u1", "u2"))
	require.NoError(t, repo.Follow(ctx, "u1", "u2"))

	follower, err := repo.GetFollowRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, follower.Following)

	followee, err := repo.GetFollowRecord(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, followee.Followers)
}

func TestUnfollowRestoresBothSides(t *testing.T) {
	repo := NewFollowRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Follow(ctx, "u1", "u2"))
	require.NoError(t, repo.Unfollow(ctx, "u1", "u2"))

	follower, err := repo.GetFollowRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, follower.Following)

	followee, err := repo.GetFollowRecord(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, followee.Followers)

	// Unfollowing someone never followed is a no-op
	require.NoError(t, repo.Unfollow(ctx, "u1", "u3"))
}

func TestConcurrentFollowsOnSamePair(t *testing.T) {
	repo := NewFollowRepository(newTestStore(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Follow(ctx, "u1", "u2"))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Follow(ctx, "u2", "u1"))
		}()
	}
	wg.Wait()

	rec, err := repo.GetFollowRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, rec.Following)
	assert.Equal(t, []string{"u2"}, rec.Followers)
}
