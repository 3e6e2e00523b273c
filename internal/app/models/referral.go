package models

import (
	"time"
)

// ReferralOffer defines a scheduled referral promotion, stored in the
// referral-offers.json array.
type ReferralOffer struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	RewardDays      int       `json:"rewardDays"`      // subscription days granted to the referee
	ReferrerDays    int       `json:"referrerDays"`    // subscription days granted to the code owner
	DiscountPercent int       `json:"discountPercent"` // checkout discount while the offer runs
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IsRunning reports whether the offer is active at t.
func (o *ReferralOffer) IsRunning(t time.Time) bool {
	return o.IsActive && !t.Before(o.StartsAt) && t.Before(o.EndsAt)
}
