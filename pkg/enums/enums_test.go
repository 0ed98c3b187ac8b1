package enums

import "testing"

func TestParseRole(t *testing.T) {
	role, err := ParseRole("Administrator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleAdministrator {
		t.Fatalf("expected RoleAdministrator, got %q", role)
	}

	if _, err := ParseRole("administrator"); err == nil {
		t.Fatal("role parsing is case sensitive; lowercase input must fail")
	}
}

func TestProductStatusValues(t *testing.T) {
	if !ProductStatusOutOfStock.IsValid() {
		t.Fatal("Out of Stock must be a valid product status")
	}
	if ProductStatus("Archived").IsValid() {
		t.Fatal("unknown product status must be invalid")
	}
	if ProductStatusOutOfStock.String() != "Out of Stock" {
		t.Fatalf("unexpected wire value %q", ProductStatusOutOfStock.String())
	}
}

func TestOrderStatusTransitionsAreFlat(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusInProgress, OrderStatusHold, OrderStatusCompleted} {
		if !s.IsValid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
}

func TestParseChangeRequestType(t *testing.T) {
	typ, err := ParseChangeRequestType("STOCK_ADJUSTMENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ != ChangeRequestTypeStockAdjustment {
		t.Fatalf("expected STOCK_ADJUSTMENT, got %q", typ)
	}
	if _, err := ParseChangeRequestType("stock_adjustment"); err == nil {
		t.Fatal("lowercase change request type must fail")
	}
}

func TestParseActivityType(t *testing.T) {
	for _, raw := range []string{"ORDER", "PRODUCT", "VENDOR", "SHOP", "SYSTEM"} {
		if _, err := ParseActivityType(raw); err != nil {
			t.Fatalf("expected %q to parse: %v", raw, err)
		}
	}
}
