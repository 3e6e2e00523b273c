package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

// ReferralService handles referral offers and code redemption
type ReferralService struct {
	referralRepo *repositories.ReferralRepository
	userRepo     *repositories.UserRepository
	logger       zerolog.Logger
}

// NewReferralService creates a new ReferralService
func NewReferralService(referralRepo *repositories.ReferralRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// CreateOffer stores a new referral offer (admin only)
func (s *ReferralService) CreateOffer(ctx context.Context, req *dto.CreateReferralOfferRequest) (*dto.ReferralOfferResponse, error) {
	startsAt, endsAt, err := parseOfferWindow(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	offer := &models.ReferralOffer{
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		RewardDays:      req.RewardDays,
		ReferrerDays:    req.ReferrerDays,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		IsActive:        req.IsActive,
	}
	if err := s.referralRepo.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}

	resp := dto.ToReferralOfferResponse(offer)
	return &resp, nil
}

// ListOffers returns every referral offer
func (s *ReferralService) ListOffers(ctx context.Context) (*dto.ReferralOfferListResponse, error) {
	offers, err := s.referralRepo.ListOffers(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.ToReferralOfferListResponse(offers)
	return &resp, nil
}

// UpdateOffer applies partial updates to an offer (admin only)
func (s *ReferralService) UpdateOffer(ctx context.Context, id string, req *dto.UpdateReferralOfferRequest) (*dto.ReferralOfferResponse, error) {
	offer, err := s.referralRepo.UpdateOffer(ctx, id, func(o *models.ReferralOffer) error {
		if req.Title != nil {
			o.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			o.Description = strings.TrimSpace(*req.Description)
		}
		if req.RewardDays != nil {
			o.RewardDays = *req.RewardDays
		}
		if req.ReferrerDays != nil {
			o.ReferrerDays = *req.ReferrerDays
		}
		if req.DiscountPercent != nil {
			o.DiscountPercent = *req.DiscountPercent
		}
		if req.StartsAt != nil {
			t, err := time.Parse(time.RFC3339, *req.StartsAt)
			if err != nil {
				return fmt.Errorf("%w: invalid startsAt", apperrors.ErrValidationFailed)
			}
			o.StartsAt = t
		}
		if req.EndsAt != nil {
			t, err := time.Parse(time.RFC3339, *req.EndsAt)
			if err != nil {
				return fmt.Errorf("%w: invalid endsAt", apperrors.ErrValidationFailed)
			}
			o.EndsAt = t
		}
		if req.IsActive != nil {
			o.IsActive = *req.IsActive
		}
		if !o.EndsAt.After(o.StartsAt) {
			return fmt.Errorf("%w: offer must end after it starts", apperrors.ErrValidationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.ToReferralOfferResponse(offer)
	return &resp, nil
}

// DeleteOffer removes a referral offer (admin only)
func (s *ReferralService) DeleteOffer(ctx context.Context, id string) error {
	return s.referralRepo.DeleteOffer(ctx, id)
}

// ApplyCode redeems another user's referral code for the caller. Both sides
// get subscription days per the currently running offer; a user cannot apply
// their own code.
func (s *ReferralService) ApplyCode(ctx context.Context, userID, code string) (*dto.ApplyReferralResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.ErrInvalidReferral
	}

	referrer, err := s.userRepo.GetUserByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidReferral
		}
		return nil, err
	}
	if referrer.ID == userID {
		return nil, apperrors.ErrOwnReferral
	}

	offer, err := s.referralRepo.GetRunningOffer(ctx, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrOfferNotFound) {
			return nil, apperrors.ErrOfferInactive
		}
		return nil, err
	}

	if _, err := s.userRepo.UpdateUser(ctx, userID, extendSubscription(offer.RewardDays)); err != nil {
		return nil, fmt.Errorf("error extending subscription: %w", err)
	}
	if _, err := s.userRepo.UpdateUser(ctx, referrer.ID, extendSubscription(offer.ReferrerDays)); err != nil {
		s.logger.Error().Err(err).Str("referrerId", referrer.ID).Msg("Failed to extend referrer subscription")
	}

	s.logger.Info().
		Str("userId", userID).
		Str("referrerId", referrer.ID).
		Str("offerId", offer.ID).
		Msg("Referral code applied")

	return &dto.ApplyReferralResponse{
		OfferTitle:     offer.Title,
		DaysGranted:    offer.RewardDays,
		ReferrerUserID: referrer.ID,
		ReferrerDays:   offer.ReferrerDays,
	}, nil
}

// extendSubscription adds days of PRO access on top of any remaining time.
// A leftover expiry date on an account that is not currently subscribed does
// not count as remaining time.
func extendSubscription(days int) func(*models.User) error {
	return func(u *models.User) error {
		if days <= 0 {
			return nil
		}
		base := time.Now()
		if u.IsSubscribed(base) && u.Subscription.ExpiresAt != nil {
			base = *u.Subscription.ExpiresAt
		}
		expires := base.AddDate(0, 0, days)
		u.Subscription.Plan = models.PlanPro
		u.Subscription.ExpiresAt = &expires
		return nil
	}
}

func parseOfferWindow(startsAt, endsAt string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startsAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid startsAt", apperrors.ErrValidationFailed)
	}
	end, err := time.Parse(time.RFC3339, endsAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid endsAt", apperrors.ErrValidationFailed)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: offer must end after it starts", apperrors.ErrValidationFailed)
	}
	return start, end, nil
}
