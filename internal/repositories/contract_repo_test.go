package repositories

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestBuildContractListQueryUnbounded(t *testing.T) {
	query, args := buildContractListQuery(ContractFilter{})
	if strings.Contains(query, "LIMIT") {
		t.Errorf("listing without a limit should be unbounded, got %q", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildContractListQueryFilters(t *testing.T) {
	owner := uuid.New()
	status := "pending"
	query, args := buildContractListQuery(ContractFilter{
		OwnerUserID: &owner,
		Status:      &status,
		Limit:       10,
		Offset:      5,
	})

	for _, want := range []string{"owner_user_id = $1", "status = $2", "ORDER BY created_at DESC", "LIMIT $3 OFFSET $4"} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q: %q", want, query)
		}
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
	if args[2] != 10 || args[3] != 5 {
		t.Errorf("limit/offset args = %v/%v, want 10/5", args[2], args[3])
	}
}
