package rbac

import (
	"testing"

	"github.com/renohub/backend/internal/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{models.RoleHomeowner, PermCreateContract, true},
		{models.RoleHomeowner, PermDepositTranche, true},
		{models.RoleHomeowner, PermRequestApproval, true},
		{models.RoleHomeowner, PermApprovePayment, false},
		{models.RoleHomeowner, PermRefundPayment, false},
		{models.RoleHomeowner, PermSubmitQuote, false},

		{models.RoleContractor, PermSubmitQuote, true},
		{models.RoleContractor, PermCreateContract, false},
		{models.RoleContractor, PermApprovePayment, false},

		{models.RoleAdmin, PermApprovePayment, true},
		{models.RoleAdmin, PermRejectApproval, true},
		{models.RoleAdmin, PermRefundPayment, true},
		{models.RoleAdmin, PermCancelContract, true},

		{"unknown", PermCreateContract, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestIsFinancialOperation(t *testing.T) {
	if !IsFinancialOperation(PermApprovePayment) {
		t.Error("approve_payment should be financial")
	}
	if !IsFinancialOperation(PermRefundPayment) {
		t.Error("refund_payment should be financial")
	}
	if IsFinancialOperation(PermRequestApproval) {
		t.Error("request_approval should not be financial")
	}
}
