package models

import (
	"time"
)

// User defines the user record stored in users/users.json. The password hash
// has to round-trip through the JSON file, so it carries a json tag here;
// API responses go through dto.UserResponse, which never includes it.
type User struct {
	ID           string       `json:"id"`                      // Unique identifier for the user
	Email        string       `json:"email"`                   // User's email address
	PasswordHash string       `json:"passwordHash"`            // Bcrypt hash of the password
	Name         string       `json:"name"`                    // Display name
	Phone        string       `json:"phone,omitempty"`         // Optional phone number
	RoleType     RoleType     `json:"roleType"`                // USER or ADMIN
	ReferralCode string       `json:"referralCode"`            // Code other users can apply
	Subscription Subscription `json:"subscription"`            // Current subscription state
	IsActive     bool         `json:"isActive"`                // Whether the account is active
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	LastLoginAt  *time.Time   `json:"lastLoginAt,omitempty"`   // Timestamp of the last login (nullable)
}

// Subscription holds a user's plan state
type Subscription struct {
	Plan      PlanTier   `json:"plan"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"` // nil for FREE / never-expiring plans
}

// IsSubscribed reports whether the user has an unexpired paid plan at t.
func (u *User) IsSubscribed(t time.Time) bool {
	if u.Subscription.Plan == PlanFree || u.Subscription.Plan == "" {
		return false
	}
	if u.Subscription.ExpiresAt == nil {
		return true
	}
	return u.Subscription.ExpiresAt.After(t)
}
