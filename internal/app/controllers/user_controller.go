package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// UserController handles profile, follow and user administration endpoints
type UserController struct {
	userService   *services.UserService
	followService *services.FollowService
	logger        zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, followService *services.FollowService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService:   userService,
		followService: followService,
		logger:        logger,
	}
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Security BearerAuth
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	resp, err := c.userService.GetProfile(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateProfile updates the caller's name and phone
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Security BearerAuth
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.userService.UpdateProfile(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ChangePassword changes the caller's password
// @Summary Change own password
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Current password incorrect"
// @Security BearerAuth
// @Router /users/me/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password changed"))
}

// Follow follows another user
// @Summary Follow a user
// @Tags follows
// @Accept json
// @Produce json
// @Param request body dto.FollowRequest true "User to follow"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /follows [post]
func (c *UserController) Follow(ctx *gin.Context) {
	var req dto.FollowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	followerID := ctx.GetString(middleware.ContextUserID)
	if err := c.followService.Follow(ctx.Request.Context(), followerID, req.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("followerId", followerID).Str("followeeId", req.UserID).Msg("User followed")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Followed"))
}

// Unfollow unfollows another user
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Param userId path string true "User to unfollow"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /follows/{userId} [delete]
func (c *UserController) Unfollow(ctx *gin.Context) {
	followerID := ctx.GetString(middleware.ContextUserID)
	followeeID := ctx.Param("userId")

	if err := c.followService.Unfollow(ctx.Request.Context(), followerID, followeeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Unfollowed"))
}

// GetFollowGraph returns the caller's followers and following lists
// @Summary Get own follow graph
// @Tags follows
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FollowListResponse}
// @Security BearerAuth
// @Router /follows [get]
func (c *UserController) GetFollowGraph(ctx *gin.Context) {
	resp, err := c.followService.GetFollowGraph(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ListUsers lists every account (admin only)
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Security BearerAuth
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	resp, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// SetUserStatus activates or deactivates an account (admin only)
// @Summary Set user active status
// @Tags admin
// @Accept json
// @Produce json
// @Param userId path string true "User id"
// @Param request body dto.UpdateUserStatusRequest true "Active flag"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Security BearerAuth
// @Router /admin/users/{userId}/status [put]
func (c *UserController) SetUserStatus(ctx *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID := ctx.Param("userId")
	resp, err := c.userService.SetUserStatus(ctx.Request.Context(), userID, *req.IsActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userId", userID).Bool("isActive", *req.IsActive).Msg("User status changed")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
