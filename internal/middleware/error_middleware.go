package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Every handler
// funnels its failures through here so status codes stay consistent. Errors
// wrapped in an apperrors.CustomError keep their contextual message.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := mapError(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail.Message = custom.Message
		}
		if custom.Details != nil {
			detail.WithDetails(custom.Details)
		}
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func mapError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Permission denied")

	case errors.Is(err, apperrors.ErrOTPInvalid):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidOTP, "Incorrect verification code")
	case errors.Is(err, apperrors.ErrOTPExpired):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidOTP, "Verification code expired")
	case errors.Is(err, apperrors.ErrOTPMaxAttempts):
		return http.StatusTooManyRequests, dto.NewErrorDetail(dto.ErrorCodeInvalidOTP, "Too many verification attempts")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrNotebookNameExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Notebook with this name already exists")
	case errors.Is(err, apperrors.ErrTestCodeExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Test code already exists")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")

	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrNotebookNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Notebook not found")
	case errors.Is(err, apperrors.ErrBookmarkNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Bookmark not found")
	case errors.Is(err, apperrors.ErrTestNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Test not found")
	case errors.Is(err, apperrors.ErrQuestionNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Question not found")
	case errors.Is(err, apperrors.ErrOfferNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Referral offer not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrImmutableTestData):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Test subject and type cannot be changed")
	case errors.Is(err, apperrors.ErrOfferInactive):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeOfferNotRunning, "No referral offer is currently running")
	case errors.Is(err, apperrors.ErrOwnReferral):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeOwnReferral, "You cannot apply your own referral code")
	case errors.Is(err, apperrors.ErrInvalidReferral):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Referral code is invalid")

	case errors.Is(err, apperrors.ErrAIUnavailable):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Study advisor is unavailable")

	case errors.Is(err, apperrors.ErrInvalidEmail):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidEmail, "Email format is invalid")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidPassword, "Password does not meet requirements").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrInvalidOption):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid option data").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Bad request").WithDetails(err.Error())

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
