package repositories

import (
	"context"
	"fmt"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
	"github.com/ekaplan/prepsphere/internal/pkg/logger"
)

// FollowRepository handles the follow graph, stored as one file per user in
// user-follows/{userId}.json. Follow and unfollow touch two files; both
// writes run under ordered per-path locks so concurrent follow operations on
// the same pair cannot interleave. A failure between the two writes still
// leaves the graph asymmetric; that is logged loudly rather than rolled back,
// since there is no transaction to lean on.
type FollowRepository struct {
	store *jsonstore.Store
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(store *jsonstore.Store) *FollowRepository {
	return &FollowRepository{store: store}
}

func (r *FollowRepository) path(userID string) string {
	return r.store.Path(followsDir, userID+".json")
}

func normalize(rec models.FollowRecord, userID string) models.FollowRecord {
	if rec.UserID == "" {
		rec.UserID = userID
	}
	if rec.Following == nil {
		rec.Following = []string{}
	}
	if rec.Followers == nil {
		rec.Followers = []string{}
	}
	return rec
}

func (r *FollowRepository) read(userID string) models.FollowRecord {
	rec := jsonstore.Read(r.store, r.path(userID), models.FollowRecord{UserID: userID})
	return normalize(rec, userID)
}

// readLocked reads a record whose path lock is already held by WithLock
func (r *FollowRepository) readLocked(userID string) models.FollowRecord {
	rec := jsonstore.ReadLocked(r.store, r.path(userID), models.FollowRecord{UserID: userID})
	return normalize(rec, userID)
}

// GetFollowRecord returns a user's follow record, defaulting to empty lists
func (r *FollowRepository) GetFollowRecord(ctx context.Context, userID string) (*models.FollowRecord, error) {
	rec := r.read(userID)
	return &rec, nil
}

// Follow makes follower follow followee. Membership is checked before
// appending, so repeating the call is a no-op.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	followerPath := r.path(followerID)
	followeePath := r.path(followeeID)

	return r.store.WithLock(func() error {
		followerRec := r.readLocked(followerID)
		followeeRec := r.readLocked(followeeID)

		if !models.Contains(followerRec.Following, followeeID) {
			followerRec.Following = append(followerRec.Following, followeeID)
		}
		if !models.Contains(followeeRec.Followers, followerID) {
			followeeRec.Followers = append(followeeRec.Followers, followerID)
		}

		if err := r.writeLocked(followerPath, followerRec); err != nil {
			return fmt.Errorf("error writing follower record: %w", err)
		}
		if err := r.writeLocked(followeePath, followeeRec); err != nil {
			// First write already landed; the graph is now asymmetric.
			logger.Error().Err(err).
				Str("followerID", followerID).
				Str("followeeID", followeeID).
				Msg("Follow graph left asymmetric: followee write failed after follower write")
			return fmt.Errorf("error writing followee record: %w", err)
		}
		return nil
	}, followerPath, followeePath)
}

// Unfollow makes follower stop following followee, idempotently
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	followerPath := r.path(followerID)
	followeePath := r.path(followeeID)

	return r.store.WithLock(func() error {
		followerRec := r.readLocked(followerID)
		followeeRec := r.readLocked(followeeID)

		followerRec.Following = models.Without(followerRec.Following, followeeID)
		followeeRec.Followers = models.Without(followeeRec.Followers, followerID)

		if err := r.writeLocked(followerPath, followerRec); err != nil {
			return fmt.Errorf("error writing follower record: %w", err)
		}
		if err := r.writeLocked(followeePath, followeeRec); err != nil {
			logger.Error().Err(err).
				Str("followerID", followerID).
				Str("followeeID", followeeID).
				Msg("Follow graph left asymmetric: followee write failed after follower write")
			return fmt.Errorf("error writing followee record: %w", err)
		}
		return nil
	}, followerPath, followeePath)
}

// writeLocked persists a record whose path lock is already held by WithLock
func (r *FollowRepository) writeLocked(path string, rec models.FollowRecord) error {
	return jsonstore.WriteLocked(r.store, path, rec)
}
