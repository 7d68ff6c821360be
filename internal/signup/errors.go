package signup

import (
	"errors"
	"fmt"
)

// ErrStaleResponse marks a gateway result that completed after the
// flow moved on (path switch, reset or close). It must be discarded,
// never surfaced to the user.
var ErrStaleResponse = errors.New("stale response")

var ErrFlowNotFound = errors.New("signup flow not found")

// ValidationError is a local, pre-network failure tied to one field.
// It never causes a gateway call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GatewayError wraps a provider failure as the single human-readable
// message the flow exposes.
type GatewayError struct {
	Op      string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
