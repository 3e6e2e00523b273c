package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// ReferralController handles referral offer and redemption endpoints
type ReferralController struct {
	referralService *services.ReferralService
	logger          zerolog.Logger
}

// NewReferralController creates a new ReferralController
func NewReferralController(referralService *services.ReferralService, logger zerolog.Logger) *ReferralController {
	return &ReferralController{
		referralService: referralService,
		logger:          logger,
	}
}

// CreateOffer stores a new referral offer (admin only)
// @Summary Create a referral offer
// @Tags referrals
// @Accept json
// @Produce json
// @Param request body dto.CreateReferralOfferRequest true "Offer details"
// @Success 201 {object} dto.APIResponse{data=dto.ReferralOfferResponse}
// @Security BearerAuth
// @Router /referral-offers [post]
func (c *ReferralController) CreateOffer(ctx *gin.Context) {
	var req dto.CreateReferralOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.referralService.CreateOffer(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("offerId", resp.ID).Str("title", resp.Title).Msg("Referral offer created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// ListOffers returns every referral offer
// @Summary List referral offers
// @Tags referrals
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ReferralOfferListResponse}
// @Security BearerAuth
// @Router /referral-offers [get]
func (c *ReferralController) ListOffers(ctx *gin.Context) {
	resp, err := c.referralService.ListOffers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateOffer applies partial updates to an offer (admin only)
// @Summary Update a referral offer
// @Tags referrals
// @Accept json
// @Produce json
// @Param offerId path string true "Offer id"
// @Param request body dto.UpdateReferralOfferRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ReferralOfferResponse}
// @Security BearerAuth
// @Router /referral-offers/{offerId} [put]
func (c *ReferralController) UpdateOffer(ctx *gin.Context) {
	var req dto.UpdateReferralOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.referralService.UpdateOffer(ctx.Request.Context(), ctx.Param("offerId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteOffer removes a referral offer (admin only)
// @Summary Delete a referral offer
// @Tags referrals
// @Produce json
// @Param offerId path string true "Offer id"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /referral-offers/{offerId} [delete]
func (c *ReferralController) DeleteOffer(ctx *gin.Context) {
	if err := c.referralService.DeleteOffer(ctx.Request.Context(), ctx.Param("offerId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Offer deleted"))
}

// ApplyCode redeems another user's referral code for the caller
// @Summary Apply a referral code
// @Tags referrals
// @Accept json
// @Produce json
// @Param request body dto.ApplyReferralRequest true "Referral code"
// @Success 200 {object} dto.APIResponse{data=dto.ApplyReferralResponse}
// @Failure 404 {object} dto.ErrorResponse "Code invalid"
// @Failure 409 {object} dto.ErrorResponse "Own code, or no running offer"
// @Security BearerAuth
// @Router /referral/apply [post]
func (c *ReferralController) ApplyCode(ctx *gin.Context) {
	var req dto.ApplyReferralRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.referralService.ApplyCode(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID), req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
