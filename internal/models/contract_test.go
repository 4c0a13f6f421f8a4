package models

import (
	"testing"
	"time"
)

func TestIsValidContractTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{ContractStatusPending, ContractStatusInProgress, true},
		{ContractStatusInProgress, ContractStatusCompleted, true},

		// Cancellation paths
		{ContractStatusPending, ContractStatusCancelled, true},
		{ContractStatusInProgress, ContractStatusCancelled, true},

		// Invalid transitions
		{ContractStatusPending, ContractStatusCompleted, false},
		{ContractStatusCompleted, ContractStatusCancelled, false},
		{ContractStatusCompleted, ContractStatusInProgress, false},
		{ContractStatusCancelled, ContractStatusPending, false},
		{ContractStatusCancelled, ContractStatusInProgress, false},
		{ContractStatusInProgress, ContractStatusPending, false},
		{"nonexistent", ContractStatusInProgress, false},
		{ContractStatusPending, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidContractTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidContractTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestTerminalContractStatusesHaveNoTransitions(t *testing.T) {
	for _, status := range []string{ContractStatusCompleted, ContractStatusCancelled} {
		if transitions := ValidContractTransitions[status]; len(transitions) != 0 {
			t.Errorf("terminal status %q should have no transitions, got %v", status, transitions)
		}
	}
}

func TestContractStatusLabelsComplete(t *testing.T) {
	for status := range ValidContractTransitions {
		label, ok := ContractStatusLabels[status]
		if !ok {
			t.Errorf("status %q missing from ContractStatusLabels", status)
			continue
		}
		if label.KO == "" || label.EN == "" {
			t.Errorf("status %q has incomplete label %+v", status, label)
		}
	}
}

func validContract() *Contract {
	return &Contract{
		Title:          "Apartment full remodel",
		ContractorName: "Hanul Interiors",
		TotalAmount:    1_000_000,
		DepositAmount:  300_000,
		MidAmount:      400_000,
		FinalAmount:    300_000,
	}
}

func TestContractValidateNew(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -7)
	future := now.AddDate(0, 1, 0)
	later := now.AddDate(0, 2, 0)

	tests := []struct {
		name    string
		mutate  func(*Contract)
		wantErr bool
	}{
		{"valid three-way split", func(c *Contract) {}, false},
		{"valid with schedule", func(c *Contract) {
			c.StartDate = &future
			c.EndDate = &later
		}, false},
		{"tranche sum mismatch", func(c *Contract) {
			c.FinalAmount = 400_000 // 1,100,000 != 1,000,000
		}, true},
		{"negative tranche", func(c *Contract) {
			c.MidAmount = -400_000
			c.TotalAmount = 200_000
		}, true},
		{"missing title", func(c *Contract) { c.Title = "" }, true},
		{"missing contractor name", func(c *Contract) { c.ContractorName = "" }, true},
		{"end before start", func(c *Contract) {
			c.StartDate = &later
			c.EndDate = &future
		}, true},
		{"start in the past", func(c *Contract) { c.StartDate = &past }, true},
		{"zero tranche allowed", func(c *Contract) {
			c.DepositAmount = 0
			c.MidAmount = 0
			c.FinalAmount = 1_000_000
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContract()
			tt.mutate(c)
			err := c.ValidateNew(now)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNew() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*ValidationError); !ok {
					t.Errorf("ValidateNew() returned %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestContractTrancheAmount(t *testing.T) {
	c := validContract()
	tests := []struct {
		trancheType string
		want        int64
	}{
		{TrancheDeposit, 300_000},
		{TrancheMid, 400_000},
		{TrancheFinal, 300_000},
		{"bogus", 0},
	}
	for _, tt := range tests {
		if got := c.TrancheAmount(tt.trancheType); got != tt.want {
			t.Errorf("TrancheAmount(%q) = %d, want %d", tt.trancheType, got, tt.want)
		}
	}
}
