package models

import (
	"time"

	"github.com/google/uuid"
)

// Tranche types, in construction-progress order.
const (
	TrancheDeposit = "deposit"
	TrancheMid     = "mid"
	TrancheFinal   = "final"
)

// Payment statuses
const (
	PaymentStatusHeld            = "held"
	PaymentStatusPendingApproval = "pending_approval"
	PaymentStatusReleased        = "released"
	PaymentStatusRefunded        = "refunded"
)

// Valid payment state transitions: from -> []to
var ValidPaymentTransitions = map[string][]string{
	PaymentStatusHeld:            {PaymentStatusPendingApproval, PaymentStatusRefunded},
	PaymentStatusPendingApproval: {PaymentStatusReleased, PaymentStatusHeld, PaymentStatusRefunded},
	PaymentStatusReleased:        {},
	PaymentStatusRefunded:        {},
}

func IsValidPaymentTransition(from, to string) bool {
	allowed, ok := ValidPaymentTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// PaymentStatusLabels maps payment statuses to the display vocabulary the
// existing pages depend on.
var PaymentStatusLabels = map[string]StatusLabel{
	PaymentStatusHeld:            {KO: "보관중", EN: "held"},
	PaymentStatusPendingApproval: {KO: "승인 대기중", EN: "pending approval"},
	PaymentStatusReleased:        {KO: "지급완료", EN: "released"},
	PaymentStatusRefunded:        {KO: "환불완료", EN: "refunded"},
}

// EscrowPayment is one deposited tranche of a contract. At most one row may
// exist per (contract_id, tranche_type); the table carries a unique
// constraint as the last line of defense against concurrent deposits.
type EscrowPayment struct {
	ID          uuid.UUID  `json:"id"`
	ContractID  uuid.UUID  `json:"contract_id"`
	TrancheType string     `json:"tranche_type"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ReleasedAt  *time.Time `json:"released_at,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty"`
}

func IsValidTrancheType(t string) bool {
	return t == TrancheDeposit || t == TrancheMid || t == TrancheFinal
}

// TranchePrereq returns the tranche that must already be deposited before
// the given tranche may be, or "" for the deposit tranche.
//
// The prerequisite is existence only, not release: a mid tranche may be
// deposited the moment a deposit row exists in any status. This lets all
// three tranches be escrowed up front while payout order is still enforced
// at release time (see CanApprove).
func TranchePrereq(trancheType string) string {
	switch trancheType {
	case TrancheMid:
		return TrancheDeposit
	case TrancheFinal:
		return TrancheMid
	}
	return ""
}

// CanDeposit evaluates the deposit preconditions for a tranche against the
// contract and the payments already recorded for it.
func CanDeposit(c *Contract, existing []EscrowPayment, trancheType string, amount int64) error {
	if !IsValidTrancheType(trancheType) {
		return &ValidationError{Field: "tranche_type", Reason: "must be one of deposit, mid, final"}
	}
	byType := make(map[string]bool, len(existing))
	for _, p := range existing {
		byType[p.TrancheType] = true
	}
	if byType[trancheType] {
		return ErrDuplicateTranche
	}
	if prereq := TranchePrereq(trancheType); prereq != "" && !byType[prereq] {
		return ErrOrderViolation
	}
	if amount != c.TrancheAmount(trancheType) {
		return ErrAmountMismatch
	}
	return nil
}

// ContractStatusAfterRelease returns the status the contract must move to
// when a tranche of the given type is released, or "" when release leaves
// the contract unchanged.
func ContractStatusAfterRelease(trancheType string) string {
	switch trancheType {
	case TrancheDeposit:
		return ContractStatusInProgress
	case TrancheFinal:
		return ContractStatusCompleted
	}
	return ""
}

// CanAdvanceOnRelease checks that the contract can take the status move a
// release of the given tranche entails. Release and advance are one unit:
// a release whose advance is unreachable (the contract was cancelled in the
// meantime) must not go through at all.
func CanAdvanceOnRelease(contractStatus, trancheType string) error {
	to := ContractStatusAfterRelease(trancheType)
	if to == "" {
		return nil
	}
	if !IsValidContractTransition(contractStatus, to) {
		return &InvalidTransitionError{From: contractStatus, To: to}
	}
	return nil
}

// CanApprove evaluates whether a pending-approval payment may be released.
// Releasing the final tranche additionally requires every prior tranche of
// the contract to already be released, so funds cannot be paid out of
// construction-progress order.
func CanApprove(p *EscrowPayment, siblings []EscrowPayment) error {
	if p.Status != PaymentStatusPendingApproval {
		return &InvalidStateError{Current: p.Status, Operation: "approve"}
	}
	if p.TrancheType != TrancheFinal {
		return nil
	}
	released := make(map[string]bool, len(siblings))
	for _, s := range siblings {
		if s.Status == PaymentStatusReleased {
			released[s.TrancheType] = true
		}
	}
	if !released[TrancheDeposit] || !released[TrancheMid] {
		return ErrIncompleteSchedule
	}
	return nil
}
