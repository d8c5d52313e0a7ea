package wardrobe

import "fmt"

// Error codes carried by pkg/errors.AppError values in this domain.
const (
	CodeTransportFailure = "transport_failure"
	CodeInvalidInput     = "invalid_input"
	CodeNotFound         = "not_found"
)

// NetworkError describes a gateway call that did not produce a usable payload.
// Status is 0 when no HTTP response arrived.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
