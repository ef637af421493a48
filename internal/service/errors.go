package service

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Failure taxonomy shared by every service. Handlers translate these into
// HTTP status codes; nothing in the service layer retries.
var (
	// ErrUnauthorized means no authenticated session was presented.
	ErrUnauthorized = errors.New("login is required")

	// ErrForbidden means the caller is authenticated but lacks the role
	// the operation demands.
	ErrForbidden = errors.New("access denied")

	// ErrInvalidRequest means a malformed or missing field.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound covers both an absent resource and a resource owned by
	// someone else; the two are deliberately indistinguishable.
	ErrNotFound = errors.New("resource not found")

	// ErrAmountMismatch is the tamper check: the claimed payment amount
	// differs from the stored order total.
	ErrAmountMismatch = errors.New("order amount does not match")
)

// GatewayError carries the payment gateway's own status code and error
// payload, forwarded verbatim to the caller.
type GatewayError struct {
	StatusCode int
	Payload    json.RawMessage
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway returned status %d", e.StatusCode)
}
