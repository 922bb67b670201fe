package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound) into a 404.
// Also used when an entity exists but is deliberately hidden from the caller,
// so existence is never leaked through the status code.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation is the 400 factory for operations the domain forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrStateConflict is returned when a status transition observed a state that
// no longer matches its precondition. 409, never a silent overwrite.
func ErrStateConflict(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// Predefined errors for the common static cases.

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrTierLimit is returned when a membership-tier resource cap is reached.
var ErrTierLimit = New(
	CodeLimitExceeded,
	"tiers",
	"Membership tier limit for this feature has been reached",
	http.StatusForbidden,
)

// ErrNoAICredits is returned when the monthly AI credit allowance is spent.
var ErrNoAICredits = New(
	CodeCreditsExhausted,
	"credits",
	"Monthly AI credit allowance exhausted",
	http.StatusTooManyRequests,
)

// ErrNotItemOwner is returned when a swap decision is attempted by anyone but
// the item's current owner.
var ErrNotItemOwner = New(
	CodeForbidden,
	"swaps",
	"Only the item owner may perform this action",
	http.StatusForbidden,
)

var ErrSwapSelf = New(
	CodeInvalidOperation,
	"swaps",
	"You cannot request a swap for your own item",
	http.StatusBadRequest,
)

var ErrItemNotAvailable = New(
	CodeInvalidStatus,
	"wardrobe",
	"Item is not available for this operation",
	http.StatusConflict,
)

var ErrItemNotForSale = New(
	CodeInvalidOperation,
	"payments",
	"Item is not listed for sale",
	http.StatusBadRequest,
)

var ErrStorefrontRequired = New(
	CodeInvalidOperation,
	"creators",
	"A creator storefront is required for this action",
	http.StatusBadRequest,
)

var ErrPaymentsNotOnboarded = New(
	CodeInvalidOperation,
	"payments",
	"Creator has not completed payment onboarding",
	http.StatusBadRequest,
)

var ErrPromotionExpired = New(
	CodeInvalidOperation,
	"creators",
	"Promotion code is expired or fully redeemed",
	http.StatusBadRequest,
)

var ErrPaymentProviderError = New(
	CodeExternalServiceError,
	"payments",
	"Payment provider error",
	http.StatusInternalServerError,
)

var ErrAIProviderError = New(
	CodeExternalServiceError,
	"ai",
	"AI provider error",
	http.StatusInternalServerError,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
