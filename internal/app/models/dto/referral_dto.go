package dto

import "github.com/ekaplan/prepsphere/internal/app/models"

// CreateReferralOfferRequest represents referral offer creation data (admin)
type CreateReferralOfferRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description,omitempty"`
	RewardDays      int    `json:"rewardDays" binding:"min=0"`
	ReferrerDays    int    `json:"referrerDays" binding:"min=0"`
	DiscountPercent int    `json:"discountPercent" binding:"min=0,max=100"`
	StartsAt        string `json:"startsAt" binding:"required"`
	EndsAt          string `json:"endsAt" binding:"required"`
	IsActive        bool   `json:"isActive"`
}

// UpdateReferralOfferRequest represents partial referral offer updates
type UpdateReferralOfferRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	RewardDays      *int    `json:"rewardDays,omitempty" binding:"omitempty,min=0"`
	ReferrerDays    *int    `json:"referrerDays,omitempty" binding:"omitempty,min=0"`
	DiscountPercent *int    `json:"discountPercent,omitempty" binding:"omitempty,min=0,max=100"`
	StartsAt        *string `json:"startsAt,omitempty"`
	EndsAt          *string `json:"endsAt,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ApplyReferralRequest represents a referral code redemption
type ApplyReferralRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyReferralResponse reports the subscription days granted to each side
type ApplyReferralResponse struct {
	OfferTitle     string `json:"offerTitle"`
	DaysGranted    int    `json:"daysGranted"`
	ReferrerUserID string `json:"referrerUserId"`
	ReferrerDays   int    `json:"referrerDays"`
}

// ReferralOfferResponse represents a referral offer
type ReferralOfferResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	RewardDays      int    `json:"rewardDays"`
	ReferrerDays    int    `json:"referrerDays"`
	DiscountPercent int    `json:"discountPercent"`
	StartsAt        string `json:"startsAt"`
	EndsAt          string `json:"endsAt"`
	IsActive        bool   `json:"isActive"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ReferralOfferListResponse represents all referral offers
type ReferralOfferListResponse struct {
	Offers []ReferralOfferResponse `json:"offers"`
}

// ToReferralOfferResponse maps a stored offer to its API representation
func ToReferralOfferResponse(o *models.ReferralOffer) ReferralOfferResponse {
	return ReferralOfferResponse{
		ID:              o.ID,
		Title:           o.Title,
		Description:     o.Description,
		RewardDays:      o.RewardDays,
		ReferrerDays:    o.ReferrerDays,
		DiscountPercent: o.DiscountPercent,
		StartsAt:        o.StartsAt.Format(timeFormat),
		EndsAt:          o.EndsAt.Format(timeFormat),
		IsActive:        o.IsActive,
		CreatedAt:       o.CreatedAt.Format(timeFormat),
		UpdatedAt:       o.UpdatedAt.Format(timeFormat),
	}
}

// ToReferralOfferListResponse maps stored offers to the list representation
func ToReferralOfferListResponse(offers []models.ReferralOffer) ReferralOfferListResponse {
	resp := ReferralOfferListResponse{Offers: make([]ReferralOfferResponse, 0, len(offers))}
	for i := range offers {
		resp.Offers = append(resp.Offers, ToReferralOfferResponse(&offers[i]))
	}
	return resp
}
