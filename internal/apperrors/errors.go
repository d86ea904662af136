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

// ErrUnauthorized indicates that the caller does not hold the required authority.
var ErrUnauthorized = errors.New("missing required authority")

// ErrConflict indicates that the request conflicts with the current ledger state.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected failure inside the service.
var ErrInternal = errors.New("internal error")

// Ledger failure kinds. Each one wraps a generic category above so callers can
// branch on either the precise kind or the category.
var (
	ErrInvalidSymbol   = fmt.Errorf("%w: invalid symbol name", ErrValidation)
	ErrInvalidAmount   = fmt.Errorf("%w: invalid quantity", ErrValidation)
	ErrSymbolMismatch  = fmt.Errorf("%w: symbol precision mismatch", ErrValidation)
	ErrMemoTooLong     = fmt.Errorf("%w: memo has more than 256 bytes", ErrValidation)
	ErrSelfTransfer    = fmt.Errorf("%w: cannot transfer to self", ErrValidation)
	ErrDuplicateSymbol = fmt.Errorf("%w: token with symbol already exists", ErrDuplicate)
	ErrAlreadySignedUp = fmt.Errorf("%w: you have already signed up", ErrDuplicate)
	ErrUnknownSymbol   = fmt.Errorf("%w: token with symbol does not exist", ErrNotFound)
	ErrUnknownAccount  = fmt.Errorf("%w: to account does not exist", ErrNotFound)
	ErrNoBalance       = fmt.Errorf("%w: no balance object found", ErrNotFound)
	ErrRecordMissing   = fmt.Errorf("%w: destination account does not have balance", ErrNotFound)
	ErrSupplyExceeded  = fmt.Errorf("%w: quantity exceeds available supply", ErrConflict)
	ErrOverdrawn       = fmt.Errorf("%w: overdrawn balance", ErrConflict)
)

// kinds is ordered from most to least specific.
var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidSymbol, "InvalidSymbol"},
	{ErrInvalidAmount, "InvalidAmount"},
	{ErrSymbolMismatch, "SymbolMismatch"},
	{ErrMemoTooLong, "MemoTooLong"},
	{ErrSelfTransfer, "SelfTransfer"},
	{ErrDuplicateSymbol, "DuplicateSymbol"},
	{ErrAlreadySignedUp, "AlreadySignedUp"},
	{ErrUnknownSymbol, "UnknownSymbol"},
	{ErrUnknownAccount, "UnknownAccount"},
	{ErrNoBalance, "NoBalance"},
	{ErrRecordMissing, "RecordMissing"},
	{ErrSupplyExceeded, "SupplyExceeded"},
	{ErrOverdrawn, "Overdrawn"},
	{ErrUnauthorized, "Unauthorized"},
}

// KindOf returns the ledger failure kind carried by err, or "" if err is not a
// ledger failure.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// AppError is an error carrying an HTTP status code and a client-safe message.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewBadRequestError creates a 400 AppError.
func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewUnauthorizedError creates a 401 AppError.
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

// NewInternalServerError creates a 500 AppError.
func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, ErrInternal)
}

// StatusCode maps an error to the HTTP status code the API answers with.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 && appErr.Code != http.StatusInternalServerError {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
