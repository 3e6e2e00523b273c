package dto

import "github.com/ekaplan/prepsphere/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents user registration data. Referral codes are
// redeemed through the referral endpoint after signup, not here.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone,omitempty"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow with the emailed code
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// SubscriptionResponse represents a user's plan state
type SubscriptionResponse struct {
	Plan      string  `json:"plan" example:"PRO"`
	ExpiresAt *string `json:"expiresAt,omitempty"`
}

// UserResponse represents user information returned by the API.
// The password hash is never exposed here.
type UserResponse struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	Name         string               `json:"name"`
	Phone        string               `json:"phone,omitempty"`
	Role         string               `json:"role"`
	ReferralCode string               `json:"referralCode"`
	Subscription SubscriptionResponse `json:"subscription"`
	IsActive     bool                 `json:"isActive"`
	LastLoginAt  *string              `json:"lastLoginAt,omitempty"`
}

// ToUserResponse maps a stored user to its API representation
func ToUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Phone:        user.Phone,
		Role:         string(user.RoleType),
		ReferralCode: user.ReferralCode,
		IsActive:     user.IsActive,
		Subscription: SubscriptionResponse{
			Plan: string(user.Subscription.Plan),
		},
	}
	if user.Subscription.ExpiresAt != nil {
		s := user.Subscription.ExpiresAt.Format(timeFormat)
		resp.Subscription.ExpiresAt = &s
	}
	if user.LastLoginAt != nil {
		s := user.LastLoginAt.Format(timeFormat)
		resp.LastLoginAt = &s
	}
	return resp
}
