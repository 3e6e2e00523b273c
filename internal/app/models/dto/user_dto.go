package dto

import "github.com/ekaplan/prepsphere/internal/app/models"

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone,omitempty"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserListResponse represents a list of users (admin view)
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// ToUserListResponse maps stored users to the admin list representation
func ToUserListResponse(users []models.User) UserListResponse {
	resp := UserListResponse{Users: make([]UserResponse, 0, len(users)), Total: len(users)}
	for i := range users {
		resp.Users = append(resp.Users, ToUserResponse(&users[i]))
	}
	return resp
}

// UpdateUserStatusRequest toggles a user's active flag (admin only)
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// FollowRequest identifies the user to follow or unfollow
type FollowRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// FollowSummary represents one side of a user's follow graph
type FollowSummary struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}

// FollowListResponse represents a user's follow graph
type FollowListResponse struct {
	Following []FollowSummary `json:"following"`
	Followers []FollowSummary `json:"followers"`
}
