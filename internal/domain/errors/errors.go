package errors

import (
	"homestay/internal/errors"
)

// Kind classifies an application error. The delivery layer owns the single
// table that turns a Kind into a transport status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindInvalidOperation
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidOperation:
		return "invalid_operation"
	default:
		return "internal"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error classification
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// NewValidationError creates a validation error carrying its own message
func NewValidationError(message string) *BaseError {
	return NewBaseError(KindValidation, "VALIDATION_FAILED", message, "")
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error classification
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches errors with the same kind and code, so WithDetails copies still
// compare equal to the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.kind == t.kind && e.errorCode == t.errorCode
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		KindNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		KindInvalidOperation,
		"USER_ALREADY_EXISTS",
		"Username or email is already registered",
		"",
	)

	ErrUserHasDependents = NewBaseError(
		KindInvalidOperation,
		"USER_HAS_DEPENDENTS",
		"User still has bookings, payments or conversations",
		"",
	)

	ErrUserInactive = NewBaseError(
		KindUnauthorized,
		"USER_INACTIVE",
		"User account is disabled",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		KindUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		KindUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// Homestay-related errors
	ErrHomestayNotFound = NewBaseError(
		KindNotFound,
		"HOMESTAY_NOT_FOUND",
		"Homestay not found",
		"",
	)

	ErrNotHost = NewBaseError(
		KindUnauthorized,
		"NOT_HOST",
		"Only hosts can manage listings",
		"",
	)

	ErrNotHomestayOwner = NewBaseError(
		KindUnauthorized,
		"NOT_HOMESTAY_OWNER",
		"You do not own this homestay",
		"",
	)

	ErrHomestayHasBookings = NewBaseError(
		KindInvalidOperation,
		"HOMESTAY_HAS_BOOKINGS",
		"Homestay still has bookings",
		"",
	)

	ErrAmenityNotFound = NewBaseError(
		KindNotFound,
		"AMENITY_NOT_FOUND",
		"Amenity not found",
		"",
	)

	ErrAmenityAlreadyExists = NewBaseError(
		KindInvalidOperation,
		"AMENITY_ALREADY_EXISTS",
		"Amenity already exists",
		"",
	)

	ErrPricingAlreadyExists = NewBaseError(
		KindInvalidOperation,
		"PRICING_ALREADY_EXISTS",
		"A price is already set for this date",
		"",
	)

	ErrDateAlreadyBlocked = NewBaseError(
		KindInvalidOperation,
		"DATE_ALREADY_BLOCKED",
		"Date is already blocked",
		"",
	)

	ErrBlockedDateNotFound = NewBaseError(
		KindNotFound,
		"BLOCKED_DATE_NOT_FOUND",
		"Blocked date not found",
		"",
	)

	// Booking-related errors
	ErrBookingNotFound = NewBaseError(
		KindNotFound,
		"BOOKING_NOT_FOUND",
		"Booking not found",
		"",
	)

	ErrDatesUnavailable = NewBaseError(
		KindInvalidOperation,
		"DATES_UNAVAILABLE",
		"Homestay is not available for the selected dates",
		"",
	)

	ErrHomestayNotBookable = NewBaseError(
		KindInvalidOperation,
		"HOMESTAY_NOT_BOOKABLE",
		"Homestay is not open for booking",
		"",
	)

	ErrBookingNotCancellable = NewBaseError(
		KindInvalidOperation,
		"BOOKING_NOT_CANCELLABLE",
		"Booking can no longer be cancelled",
		"",
	)

	ErrBookingNotPayable = NewBaseError(
		KindInvalidOperation,
		"BOOKING_NOT_PAYABLE",
		"Booking cannot be paid in its current state",
		"",
	)

	// Promotion-related errors
	ErrPromotionNotFound = NewBaseError(
		KindNotFound,
		"PROMOTION_NOT_FOUND",
		"Promotion not found",
		"",
	)

	ErrPromotionCodeTaken = NewBaseError(
		KindInvalidOperation,
		"PROMOTION_CODE_TAKEN",
		"Promotion code already exists",
		"",
	)

	ErrPromotionNotApplicable = NewBaseError(
		KindInvalidOperation,
		"PROMOTION_NOT_APPLICABLE",
		"Promotion is inactive or expired",
		"",
	)

	// Messaging-related errors
	ErrConversationNotFound = NewBaseError(
		KindNotFound,
		"CONVERSATION_NOT_FOUND",
		"Conversation not found",
		"",
	)

	ErrConversationExists = NewBaseError(
		KindInvalidOperation,
		"CONVERSATION_EXISTS",
		"Conversation already exists",
		"",
	)

	ErrNotParticipant = NewBaseError(
		KindUnauthorized,
		"NOT_PARTICIPANT",
		"You are not part of this conversation",
		"",
	)

	ErrNotificationNotFound = NewBaseError(
		KindNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
		"",
	)

	ErrNotificationHandled = NewBaseError(
		KindInvalidOperation,
		"NOTIFICATION_HANDLED",
		"Request has already been answered",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		KindInternal,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindInternal,
		"INTERNAL_ERROR",
		"Internal system error",
		"",
	)

	ErrUnauthorized = NewBaseError(
		KindUnauthorized,
		"UNAUTHORIZED",
		"Not authorized",
		"",
	)

	ErrNotFound = NewBaseError(
		KindNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrInvalidOperation = NewBaseError(
		KindInvalidOperation,
		"INVALID_OPERATION",
		"Invalid operation",
		"",
	)

	ErrValidationFailed = NewBaseError(
		KindValidation,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the error classification
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
