package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

func sampleOffer(title string, startsAt, endsAt time.Time) *models.ReferralOffer {
	return &models.ReferralOffer{
		Title:        title,
		RewardDays:   7,
		ReferrerDays: 3,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		IsActive:     true,
	}
}

func TestCreateAndGetOffer(t *testing.T) {
	repo := NewReferralRepository(newTestStore(t))
	ctx := context.Background()
	now := time.Now()

	offer := sampleOffer("Launch Week", now.Add(-time.Hour), now.Add(24*time.Hour))
	require.NoError(t, repo.CreateOffer(ctx, offer))
	assert.NotEmpty(t, offer.ID)

	got, err := repo.GetOfferByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch Week", got.Title)

	_, err = repo.GetOfferByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
}

func TestGetRunningOfferPicksMostRecentlyCreated(t *testing.T) {
	repo := NewReferralRepository(newTestStore(t))
	ctx := context.Background()
	now := time.Now()

	older := sampleOffer("Older", now.Add(-2*time.Hour), now.Add(48*time.Hour))
	require.NoError(t, repo.CreateOffer(ctx, older))
	time.Sleep(5 * time.Millisecond)
	newer := sampleOffer("Newer", now.Add(-time.Hour), now.Add(24*time.Hour))
	require.NoError(t, repo.CreateOffer(ctx, newer))

	got, err := repo.GetRunningOffer(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "Newer", got.Title)
}

func TestGetRunningOfferExcludesInactiveAndOutOfWindow(t *testing.T) {
	repo := NewReferralRepository(newTestStore(t))
	ctx := context.Background()
	now := time.Now()

	expired := sampleOffer("Expired", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, repo.CreateOffer(ctx, expired))

	deactivated := sampleOffer("Paused", now.Add(-time.Hour), now.Add(24*time.Hour))
	deactivated.IsActive = false
	require.NoError(t, repo.CreateOffer(ctx, deactivated))

	future := sampleOffer("Later", now.Add(24*time.Hour), now.Add(48*time.Hour))
	require.NoError(t, repo.CreateOffer(ctx, future))

	_, err := repo.GetRunningOffer(ctx, now)
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
}

func TestUpdateOffer(t *testing.T) {
	repo := NewReferralRepository(newTestStore(t))
	ctx := context.Background()
	now := time.Now()

	offer := sampleOffer("Launch Week", now, now.Add(24*time.Hour))
	require.NoError(t, repo.CreateOffer(ctx, offer))

	updated, err := repo.UpdateOffer(ctx, offer.ID, func(o *models.ReferralOffer) error {
		o.RewardDays = 14
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 14, updated.RewardDays)
	assert.True(t, updated.UpdatedAt.After(offer.UpdatedAt) || updated.UpdatedAt.Equal(offer.UpdatedAt))

	_, err = repo.UpdateOffer(ctx, "missing", func(o *models.ReferralOffer) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
}

func TestDeleteOffer(t *testing.T) {
	repo := NewReferralRepository(newTestStore(t))
	ctx := context.Background()
	now := time.Now()

	offer := sampleOffer("Launch Week", now, now.Add(24*time.Hour))
	require.NoError(t, repo.CreateOffer(ctx, offer))

	require.NoError(t, repo.DeleteOffer(ctx, offer.ID))
	err := repo.DeleteOffer(ctx, offer.ID)
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
}
