package auth

import (
	"errors"
	"net/http"

	apperrors "github.com/invento/inventory-api/pkg/util"
)

// Reason is a stable machine-readable denial code returned to clients.
type Reason string

const (
	ReasonMissingToken         Reason = "MISSING_TOKEN"
	ReasonTokenInvalid         Reason = "TOKEN_INVALID"
	ReasonTokenExpired         Reason = "TOKEN_EXPIRED"
	ReasonIdentityNotFound     Reason = "IDENTITY_NOT_FOUND"
	ReasonAuthenticationFailed Reason = "AUTHENTICATION_FAILED"
	ReasonRoleNotAllowed       Reason = "ROLE_NOT_ALLOWED"
	ReasonPermissionDenied     Reason = "PERMISSION_DENIED"
	ReasonOfficeMismatch       Reason = "OFFICE_MISMATCH"
	ReasonUnavailable          Reason = "STORAGE_UNAVAILABLE"
)

var (
	// ErrAuthenticationFailed is the only error callers of the credential verifier see for bad credentials.
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrTokenMalformed       = errors.New("token malformed")
	ErrTokenExpired         = errors.New("token expired")
	ErrUserVanished         = errors.New("subject no longer exists")
	ErrRoleVanished         = errors.New("role no longer exists")
	ErrIdentityInactive     = errors.New("subject is inactive")
	ErrStorageUnavailable   = errors.New("storage unavailable")
)

var reasonMessages = map[Reason]string{
	ReasonMissingToken:         "authentication token required",
	ReasonTokenInvalid:         "invalid token",
	ReasonTokenExpired:         "token expired",
	ReasonIdentityNotFound:     "identity not found",
	ReasonAuthenticationFailed: "invalid email or password",
	ReasonRoleNotAllowed:       "role not allowed",
	ReasonPermissionDenied:     "permission denied",
	ReasonOfficeMismatch:       "access denied to this office",
	ReasonUnavailable:          "authorization temporarily unavailable",
}

// Status maps a reason to its HTTP status.
func (r Reason) Status() int {
	switch r {
	case ReasonRoleNotAllowed, ReasonPermissionDenied, ReasonOfficeMismatch:
		return http.StatusForbidden
	case ReasonUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnauthorized
	}
}

// Deny builds the client-facing error for reason. The cause is kept for logs only.
func Deny(reason Reason, cause error) error {
	return &apperrors.DomainError{
		Code:       string(reason),
		Message:    reasonMessages[reason],
		HTTPStatus: reason.Status(),
		Err:        cause,
	}
}

// ReasonFor classifies token and identity errors.
func ReasonFor(err error) Reason {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return ReasonTokenExpired
	case errors.Is(err, ErrTokenMalformed):
		return ReasonTokenInvalid
	case errors.Is(err, ErrUserVanished), errors.Is(err, ErrRoleVanished), errors.Is(err, ErrIdentityInactive):
		return ReasonIdentityNotFound
	case errors.Is(err, ErrAuthenticationFailed):
		return ReasonAuthenticationFailed
	default:
		return ReasonUnavailable
	}
}
