package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for escrow business-rule violations. Handlers match these
// with errors.Is to pick the corrective message shown to the caller.
var (
	ErrDuplicateTranche   = errors.New("tranche already deposited for this contract")
	ErrOrderViolation     = errors.New("prerequisite tranche has not been deposited")
	ErrAmountMismatch     = errors.New("amount does not match the contract tranche amount")
	ErrIncompleteSchedule = errors.New("prior tranches must be released before the final tranche")
)

// ValidationError reports a malformed or inconsistent input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// AuthorizationError reports a caller lacking permission for an operation.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

// InvalidStateError reports an operation attempted from a payment status
// that does not permit it.
type InvalidStateError struct {
	Current   string
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while payment is %s", e.Operation, e.Current)
}

// InvalidTransitionError reports a contract status transition that is not
// reachable from the current status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}
