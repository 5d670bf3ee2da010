package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition is the sentinel error for status changes that are not
// present in the order status adjacency table.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrConfirmationRequired is the sentinel error for status changes that are
// allowed by the adjacency table but guarded by an explicit confirmation
// (force) flag.
var ErrConfirmationRequired = errors.New("confirmation required")

// InvalidTransitionError indicates that a requested status change is not in
// the adjacency table for the current status. Allowed carries the statuses the
// order may move to instead, for caller guidance.
type InvalidTransitionError struct {
	From    string
	To      string
	Allowed []string
	Cause   error
}

// NewInvalidTransitionError creates an InvalidTransitionError listing the
// transitions allowed from the current status.
func NewInvalidTransitionError(from, to string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{
		From:    from,
		To:      to,
		Allowed: allowed,
	}
}

// Error formats the error message, enumerating the allowed next statuses.
func (e *InvalidTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	msg := fmt.Sprintf("%s: cannot move from %s to %s, allowed: %s",
		ErrInvalidTransition, sanitize(e.From), sanitize(e.To), sanitize(allowed))
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the sentinel error to support errors.Is classification.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConfirmationRequiredError indicates that a status change is permitted but
// destructive enough that the caller must resubmit it with force set.
type ConfirmationRequiredError struct {
	From    string
	To      string
	Warning string
}

// NewConfirmationRequiredError creates a ConfirmationRequiredError carrying the
// warning to surface to the caller.
func NewConfirmationRequiredError(from, to, warning string) *ConfirmationRequiredError {
	return &ConfirmationRequiredError{
		From:    from,
		To:      to,
		Warning: warning,
	}
}

// Error formats the error message with the confirmation warning.
func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%s: %s to %s: %s",
		ErrConfirmationRequired, sanitize(e.From), sanitize(e.To), sanitize(e.Warning))
}

// Unwrap returns the sentinel error to support errors.Is classification.
func (e *ConfirmationRequiredError) Unwrap() error {
	return ErrConfirmationRequired
}
