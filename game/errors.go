package game

import (
	"errors"
	"fmt"
)

// Rejection is returned when an action or turn is not legal. It is always
// recoverable: the rejected action has not touched the state.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

func rejectf(format string, args ...any) *Rejection {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err, or anything it wraps, is a Rejection.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

// IntegrityPrefix starts the panic message raised when the executor meets a
// state the validator should have ruled out.
const IntegrityPrefix = "state integrity violation: "

func integrityf(format string, args ...any) string {
	return IntegrityPrefix + fmt.Sprintf(format, args...)
}
