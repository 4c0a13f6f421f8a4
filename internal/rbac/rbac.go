package rbac

import (
	"context"

	"github.com/google/uuid"
	"github.com/renohub/backend/internal/models"
)

// Permission constants
const (
	PermPostRequest     = "post_request"
	PermSubmitQuote     = "submit_quote"
	PermAcceptQuote     = "accept_quote"
	PermCreateContract  = "create_contract"
	PermDepositTranche  = "deposit_tranche"
	PermRequestApproval = "request_approval"
	PermApprovePayment  = "approve_payment"
	PermRejectApproval  = "reject_approval"
	PermRefundPayment   = "refund_payment"
	PermCancelContract  = "cancel_contract"
)

// RolePermissions defines what each role can do. Fund release and refund are
// admin-only: money never moves without the arbiter.
var RolePermissions = map[string][]string{
	models.RoleHomeowner: {
		PermPostRequest, PermAcceptQuote, PermCreateContract,
		PermDepositTranche, PermRequestApproval,
	},
	models.RoleContractor: {
		PermSubmitQuote,
	},
	models.RoleAdmin: {
		PermPostRequest, PermAcceptQuote, PermCreateContract,
		PermDepositTranche, PermRequestApproval, PermSubmitQuote,
		PermApprovePayment, PermRejectApproval, PermRefundPayment,
		PermCancelContract,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// IsFinancialOperation reports whether a permission moves escrowed funds.
func IsFinancialOperation(permission string) bool {
	return permission == PermApprovePayment || permission == PermRefundPayment
}

// AdminChecker is the capability check the ledger and payment engine depend
// on instead of querying roles inline.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type userSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Checker answers IsAdmin from the user's stored role, with a config-level
// bootstrap list for the first admin accounts.
type Checker struct {
	users     userSource
	bootstrap map[string]bool
}

func NewChecker(users userSource, bootstrapIDs []string) *Checker {
	m := make(map[string]bool, len(bootstrapIDs))
	for _, id := range bootstrapIDs {
		m[id] = true
	}
	return &Checker{users: users, bootstrap: m}
}

func (c *Checker) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	if c.bootstrap[userID.String()] {
		return true, nil
	}
	u, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.Role == models.RoleAdmin, nil
}
