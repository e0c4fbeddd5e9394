package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// Ledger error taxonomy. These are validation-class errors: they are raised
// before anything is persisted, so a failed build never leaves partial state.
var (
	// ErrInvalidAmount indicates a non-positive or unparsable transaction amount.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", ErrValidation)

	// ErrMissingAccount indicates no source/destination account was selected.
	ErrMissingAccount = fmt.Errorf("%w: account is required", ErrValidation)

	// ErrEntityNotFound indicates the selected counterparty is not in the resolved candidate set.
	ErrEntityNotFound = fmt.Errorf("%w: counterparty not found in candidate set", ErrValidation)

	// ErrDuplicateRelationship indicates a junction row for the pair already exists.
	// Callers treat this as success (idempotent-by-convention), logging it only.
	ErrDuplicateRelationship = fmt.Errorf("%w: relationship already exists", ErrDuplicate)

	// ErrPartialBatch indicates some relationship writes in a fan-out succeeded
	// while others failed. The transactional batch path never returns this.
	ErrPartialBatch = errors.New("partial batch failure")
)

// AppError carries an HTTP status alongside a message so handlers can respond
// without re-deriving the status from sentinel checks.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with an explicit HTTP status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewBadRequestError builds a 400 AppError.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// NewInternalServerError builds a 500 AppError.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

// NewGatewayTimeoutError builds a 504 AppError for upstream provider failures.
func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, Message: message}
}
