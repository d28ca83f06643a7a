package apperrors

import "errors"

// Base error kinds. Every error surfaced by a service wraps exactly one of
// these, and the HTTP layer maps them onto status codes.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrInternal         = errors.New("internal failure")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// Authentication errors
var (
	ErrMissingCredentials = NewCustomError(ErrValidationFailed, "Username and password are required.").WithCode("MISSING_CREDENTIALS")
	ErrInvalidCredentials = NewCustomError(ErrUnauthorized, "Invalid credentials.").WithCode("INVALID_CREDENTIALS")
	ErrMissingToken       = NewCustomError(ErrValidationFailed, "Refresh token is required.").WithCode("MISSING_TOKEN")
	// ErrRefreshTokenInvalid is returned by refresh for malformed, expired or revoked tokens.
	ErrRefreshTokenInvalid = NewCustomError(ErrTokenInvalid, "Invalid refresh token.").WithCode("INVALID_TOKEN")
	// ErrLogoutTokenInvalid is a bad request rather than 401: the caller is authenticated.
	ErrLogoutTokenInvalid = NewCustomError(ErrBadRequest, "Invalid token.").WithCode("INVALID_TOKEN")
)

// Registration errors
var (
	ErrMissingFields      = NewCustomError(ErrValidationFailed, "Username, password, position, and campus_id are required.").WithCode("MISSING_FIELDS")
	ErrDuplicateUsername  = NewCustomError(ErrConflict, "Username already exists.").WithCode("DUPLICATE_USERNAME").WithField("username")
	ErrInvalidCampus      = NewCustomError(ErrValidationFailed, "Invalid campus ID.").WithCode("INVALID_CAMPUS").WithField("campus_id")
	ErrRegistrationFailed = NewCustomError(ErrInternal, "Registration failed. Please try again.").WithCode("REGISTRATION_FAILED")
)

// Officer gate errors
var (
	ErrNotAnOfficer      = NewCustomError(ErrPermissionDenied, "User is not an officer.").WithCode("NOT_AN_OFFICER")
	ErrInactiveOfficer   = NewCustomError(ErrPermissionDenied, "User is not an active officer.").WithCode("INACTIVE_OFFICER")
	ErrUnverifiedOfficer = NewCustomError(ErrPermissionDenied, "Officer account is pending verification.").WithCode("UNVERIFIED_OFFICER")
)

// GWA record errors
var (
	ErrDuplicateRecord = NewCustomError(ErrConflict, "A GWA record for this student, semester and academic year already exists.").WithCode("DUPLICATE_RECORD").WithField("semester")
)

// NewValidationError creates a validation error naming the offending field
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewConflictError creates a uniqueness violation naming the offending field
func NewConflictError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
	Code    string
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

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithField names the request field the error refers to
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// AsCustomError extracts the outermost CustomError from an error chain
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
