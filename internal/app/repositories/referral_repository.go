package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
)

// ReferralRepository handles referral offer data stored in referral-offers.json
type ReferralRepository struct {
	offers *jsonstore.Collection[models.ReferralOffer]
}

// NewReferralRepository creates a new ReferralRepository
func NewReferralRepository(store *jsonstore.Store) *ReferralRepository {
	return &ReferralRepository{
		offers: jsonstore.NewCollection(store, store.Path(referralsFile), func(o models.ReferralOffer) string {
			return o.ID
		}),
	}
}

// CreateOffer persists a new referral offer
func (r *ReferralRepository) CreateOffer(ctx context.Context, offer *models.ReferralOffer) error {
	now := time.Now()
	offer.ID = uuid.New().String()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if err := r.offers.Add(*offer); err != nil {
		return fmt.Errorf("error creating referral offer: %w", err)
	}
	return nil
}

// GetOfferByID retrieves a referral offer by id
func (r *ReferralRepository) GetOfferByID(ctx context.Context, id string) (*models.ReferralOffer, error) {
	offer, err := r.offers.Find(id)
	if err != nil {
		return nil, apperrors.ErrOfferNotFound
	}
	return &offer, nil
}

// GetRunningOffer returns the active offer whose window covers now.
// When several qualify the most recently created one wins.
func (r *ReferralRepository) GetRunningOffer(ctx context.Context, now time.Time) (*models.ReferralOffer, error) {
	var best *models.ReferralOffer
	for _, offer := range r.offers.All() {
		if !offer.IsRunning(now) {
			continue
		}
		if best == nil || offer.CreatedAt.After(best.CreatedAt) {
			o := offer
			best = &o
		}
	}
	if best == nil {
		return nil, apperrors.ErrOfferNotFound
	}
	return best, nil
}

// ListOffers returns all referral offers
func (r *ReferralRepository) ListOffers(ctx context.Context) ([]models.ReferralOffer, error) {
	return r.offers.All(), nil
}

// UpdateOffer applies mutate to a stored offer and stamps UpdatedAt
func (r *ReferralRepository) UpdateOffer(ctx context.Context, id string, mutate func(*models.ReferralOffer) error) (*models.ReferralOffer, error) {
	offer, err := r.offers.Update(id, func(o *models.ReferralOffer) error {
		if err := mutate(o); err != nil {
			return err
		}
		o.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, fmt.Errorf("error updating referral offer: %w", err)
	}
	return &offer, nil
}

// DeleteOffer removes a referral offer
func (r *ReferralRepository) DeleteOffer(ctx context.Context, id string) error {
	if err := r.offers.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrOfferNotFound
		}
		return fmt.Errorf("error deleting referral offer: %w", err)
	}
	return nil
}
