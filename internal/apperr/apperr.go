package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the service-level error contract. Code is a stable machine
// identifier the UI can branch on, Status the HTTP status handlers map it to.
// All taxonomy errors are terminal for the caller except internal ones,
// which are safe to retry.

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a taxonomy error.
func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// Predeclared errors. Conflict-class errors keep distinct codes so the UI
// can show the specific message. Self-request is a 400 (bad input, not a
// permissions problem), duplicate is a 409.
var (
	ErrUnauthorized     = New("UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
	ErrForbidden        = New("FORBIDDEN", "you are not allowed to do that", http.StatusForbidden)
	ErrListingNotFound  = New("LISTING_NOT_FOUND", "listing not found", http.StatusNotFound)
	ErrRequestNotFound  = New("REQUEST_NOT_FOUND", "request not found", http.StatusNotFound)
	ErrUserNotFound     = New("USER_NOT_FOUND", "user not found", http.StatusNotFound)
	ErrSelfRequest      = New("SELF_REQUEST", "you cannot request your own listing", http.StatusBadRequest)
	ErrDuplicateRequest = New("DUPLICATE_REQUEST", "request already sent", http.StatusConflict)
	ErrRequestDecided   = New("REQUEST_DECIDED", "request is already decided", http.StatusConflict)
	ErrNoConnection     = New("NO_ACCEPTED_CONNECTION", "no accepted connection", http.StatusForbidden)
	ErrEmailTaken       = New("EMAIL_TAKEN", "user with this email already exists", http.StatusConflict)
	ErrBadCredentials   = New("BAD_CREDENTIALS", "invalid email or password", http.StatusUnauthorized)
	ErrBlacklisted      = New("BLACKLISTED", "account is suspended", http.StatusForbidden)
	ErrBadToken         = New("BAD_TOKEN", "invalid verification token", http.StatusBadRequest)
	ErrTokenExpired     = New("TOKEN_EXPIRED", "verification token expired", http.StatusBadRequest)
)

// Internal wraps a store or downstream failure. The original error is kept
// for logs, the message shown to the caller stays generic.
func Internal(err error) *Error {
	return &Error{
		Code:    "INTERNAL",
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		cause:   err,
	}
}

// From returns err as a taxonomy error, wrapping unknown errors as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// Invalid is a request-validation failure.
func Invalid(message string) *Error {
	return New("INVALID_INPUT", message, http.StatusBadRequest)
}
