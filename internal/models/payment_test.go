package models

import (
	"errors"
	"testing"
)

func TestIsValidPaymentTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{PaymentStatusHeld, PaymentStatusPendingApproval, true},
		{PaymentStatusPendingApproval, PaymentStatusReleased, true},

		// Rejection sends the request back to held
		{PaymentStatusPendingApproval, PaymentStatusHeld, true},

		// Refund paths
		{PaymentStatusHeld, PaymentStatusRefunded, true},
		{PaymentStatusPendingApproval, PaymentStatusRefunded, true},

		// Invalid transitions
		{PaymentStatusHeld, PaymentStatusReleased, false},
		{PaymentStatusReleased, PaymentStatusRefunded, false},
		{PaymentStatusReleased, PaymentStatusHeld, false},
		{PaymentStatusRefunded, PaymentStatusHeld, false},
		{PaymentStatusRefunded, PaymentStatusReleased, false},
		{"nonexistent", PaymentStatusHeld, false},
		{PaymentStatusHeld, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidPaymentTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidPaymentTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestPaymentStatusLabelsComplete(t *testing.T) {
	for status := range ValidPaymentTransitions {
		label, ok := PaymentStatusLabels[status]
		if !ok {
			t.Errorf("status %q missing from PaymentStatusLabels", status)
			continue
		}
		if label.KO == "" || label.EN == "" {
			t.Errorf("status %q has incomplete label %+v", status, label)
		}
	}
}

func TestTranchePrereq(t *testing.T) {
	tests := []struct {
		trancheType string
		want        string
	}{
		{TrancheDeposit, ""},
		{TrancheMid, TrancheDeposit},
		{TrancheFinal, TrancheMid},
	}
	for _, tt := range tests {
		if got := TranchePrereq(tt.trancheType); got != tt.want {
			t.Errorf("TranchePrereq(%q) = %q, want %q", tt.trancheType, got, tt.want)
		}
	}
}

func payment(trancheType, status string) EscrowPayment {
	return EscrowPayment{TrancheType: trancheType, Status: status}
}

func TestCanDeposit(t *testing.T) {
	contract := validContract()

	tests := []struct {
		name        string
		existing    []EscrowPayment
		trancheType string
		amount      int64
		wantErr     error
	}{
		{"deposit first", nil, TrancheDeposit, 300_000, nil},
		{"mid after deposit", []EscrowPayment{payment(TrancheDeposit, PaymentStatusHeld)}, TrancheMid, 400_000, nil},
		{"final after mid", []EscrowPayment{
			payment(TrancheDeposit, PaymentStatusReleased),
			payment(TrancheMid, PaymentStatusHeld),
		}, TrancheFinal, 300_000, nil},

		// Existence is enough: the prior tranche need not be released yet.
		{"mid while deposit still held", []EscrowPayment{payment(TrancheDeposit, PaymentStatusHeld)}, TrancheMid, 400_000, nil},

		{"mid before deposit", nil, TrancheMid, 400_000, ErrOrderViolation},
		{"final before mid", []EscrowPayment{payment(TrancheDeposit, PaymentStatusReleased)}, TrancheFinal, 300_000, ErrOrderViolation},
		{"duplicate deposit", []EscrowPayment{payment(TrancheDeposit, PaymentStatusHeld)}, TrancheDeposit, 300_000, ErrDuplicateTranche},
		{"duplicate refunded tranche", []EscrowPayment{payment(TrancheDeposit, PaymentStatusRefunded)}, TrancheDeposit, 300_000, ErrDuplicateTranche},
		{"wrong amount", nil, TrancheDeposit, 250_000, ErrAmountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanDeposit(contract, tt.existing, tt.trancheType, tt.amount)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CanDeposit() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanDeposit() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanDepositRejectsUnknownTranche(t *testing.T) {
	err := CanDeposit(validContract(), nil, "bonus", 100)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("CanDeposit() = %v, want *ValidationError", err)
	}
}

func TestCanApprove(t *testing.T) {
	tests := []struct {
		name     string
		p        EscrowPayment
		siblings []EscrowPayment
		wantErr  error
	}{
		{"deposit pending approval", payment(TrancheDeposit, PaymentStatusPendingApproval), nil, nil},
		{"mid pending approval", payment(TrancheMid, PaymentStatusPendingApproval), nil, nil},
		{"final with all prior released", payment(TrancheFinal, PaymentStatusPendingApproval), []EscrowPayment{
			payment(TrancheDeposit, PaymentStatusReleased),
			payment(TrancheMid, PaymentStatusReleased),
		}, nil},
		{"final while mid still held", payment(TrancheFinal, PaymentStatusPendingApproval), []EscrowPayment{
			payment(TrancheDeposit, PaymentStatusReleased),
			payment(TrancheMid, PaymentStatusHeld),
		}, ErrIncompleteSchedule},
		{"final while deposit pending approval", payment(TrancheFinal, PaymentStatusPendingApproval), []EscrowPayment{
			payment(TrancheDeposit, PaymentStatusPendingApproval),
			payment(TrancheMid, PaymentStatusReleased),
		}, ErrIncompleteSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanApprove(&tt.p, tt.siblings)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CanApprove() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanApprove() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestContractStatusAfterRelease(t *testing.T) {
	tests := []struct {
		trancheType string
		want        string
	}{
		{TrancheDeposit, ContractStatusInProgress},
		{TrancheMid, ""},
		{TrancheFinal, ContractStatusCompleted},
	}
	for _, tt := range tests {
		if got := ContractStatusAfterRelease(tt.trancheType); got != tt.want {
			t.Errorf("ContractStatusAfterRelease(%q) = %q, want %q", tt.trancheType, got, tt.want)
		}
	}
}

func TestCanAdvanceOnRelease(t *testing.T) {
	tests := []struct {
		name           string
		contractStatus string
		trancheType    string
		wantErr        bool
	}{
		{"deposit release on pending contract", ContractStatusPending, TrancheDeposit, false},
		{"final release on in-progress contract", ContractStatusInProgress, TrancheFinal, false},
		{"mid release needs no advance", ContractStatusInProgress, TrancheMid, false},

		// A cancelled contract has no reachable advance, so the release as a
		// whole must fail rather than pay out with the contract left behind.
		{"deposit release on cancelled contract", ContractStatusCancelled, TrancheDeposit, true},
		{"final release on cancelled contract", ContractStatusCancelled, TrancheFinal, true},
		{"final release on completed contract", ContractStatusCompleted, TrancheFinal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAdvanceOnRelease(tt.contractStatus, tt.trancheType)
			if (err != nil) != tt.wantErr {
				t.Errorf("CanAdvanceOnRelease(%q, %q) error = %v, wantErr %v", tt.contractStatus, tt.trancheType, err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*InvalidTransitionError); !ok {
					t.Errorf("CanAdvanceOnRelease() returned %T, want *InvalidTransitionError", err)
				}
			}
		})
	}
}

func TestCanApproveRequiresPendingApproval(t *testing.T) {
	for _, status := range []string{PaymentStatusHeld, PaymentStatusReleased, PaymentStatusRefunded} {
		p := payment(TrancheDeposit, status)
		err := CanApprove(&p, nil)
		var stateErr *InvalidStateError
		if !errors.As(err, &stateErr) {
			t.Errorf("CanApprove() with status %q = %v, want *InvalidStateError", status, err)
		}
	}
}

// Rejection returns the payment to held, so a fresh request-approval cycle
// must be evaluated exactly like the first one.
func TestRejectionThenReapprovalCycle(t *testing.T) {
	p := payment(TrancheMid, PaymentStatusPendingApproval)

	if !IsValidPaymentTransition(p.Status, PaymentStatusHeld) {
		t.Fatal("rejecting a pending_approval payment should be valid")
	}
	p.Status = PaymentStatusHeld

	if !IsValidPaymentTransition(p.Status, PaymentStatusPendingApproval) {
		t.Fatal("re-requesting approval after rejection should be valid")
	}
	p.Status = PaymentStatusPendingApproval

	if err := CanApprove(&p, nil); err != nil {
		t.Fatalf("approval after a rejection cycle failed: %v", err)
	}
}
