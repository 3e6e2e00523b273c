package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Notebook errors
var (
	ErrNotebookNotFound   = errors.New("notebook not found")
	ErrNotebookNameExists = errors.New("notebook with this name already exists")
	ErrBookmarkNotFound   = errors.New("bookmark not found")
)

// Test errors
var (
	ErrTestNotFound      = errors.New("test not found")
	ErrTestCodeExists    = errors.New("test code already exists")
	ErrImmutableTestData = errors.New("test subject and type cannot be changed")
)

// Question bank errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidOption    = errors.New("invalid option data")
)

// Referral errors
var (
	ErrOfferNotFound   = errors.New("referral offer not found")
	ErrOfferInactive   = errors.New("referral offer is not active")
	ErrOwnReferral     = errors.New("own referral code cannot be applied")
	ErrInvalidReferral = errors.New("referral code is invalid")
)

// OTP errors
var (
	ErrOTPInvalid     = errors.New("incorrect verification code")
	ErrOTPExpired     = errors.New("verification code expired")
	ErrOTPMaxAttempts = errors.New("too many verification attempts")
)

// AI errors
var (
	// ErrAIUnavailable marks requests to an advisor that is not configured
	ErrAIUnavailable = errors.New("study advisor is unavailable")
)

// Store errors
var (
	// ErrCorruptedRecord marks a file that exists but does not parse.
	// Read paths recover from it by substituting the declared default.
	ErrCorruptedRecord = errors.New("corrupted record")
)

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
