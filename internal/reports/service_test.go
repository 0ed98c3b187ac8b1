package reports

import (
	"context"
	"testing"

	"github.com/trosone/tros-backend/internal/activity"
	"github.com/trosone/tros-backend/pkg/enums"
)

type stubProductCounter struct {
	all        int64
	byVendor   map[string]int64
	outOfStock map[string]int64
	lowStock   map[string]int64
}

func (s *stubProductCounter) CountAll(ctx context.Context) (int64, error) {
	return s.all, nil
}

func (s *stubProductCounter) CountAllByVendorEmail(ctx context.Context, email string) (int64, error) {
	return s.byVendor[email], nil
}

func (s *stubProductCounter) CountOutOfStock(ctx context.Context, vendorEmail string) (int64, error) {
	return s.outOfStock[vendorEmail], nil
}

func (s *stubProductCounter) CountLowStock(ctx context.Context, vendorEmail string) (int64, error) {
	return s.lowStock[vendorEmail], nil
}

type stubOrderCounter struct {
	pending int64
}

func (s *stubOrderCounter) CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error) {
	if status == enums.OrderStatusPending {
		return s.pending, nil
	}
	return 0, nil
}

type stubTimeline struct {
	entries []activity.EntryDTO
}

func (s *stubTimeline) Recent(ctx context.Context, limit int) ([]activity.EntryDTO, error) {
	return s.entries, nil
}

func TestAdminStatsAreGlobal(t *testing.T) {
	products := &stubProductCounter{
		all:        120,
		outOfStock: map[string]int64{"": 7},
		lowStock:   map[string]int64{"": 15},
	}
	orders := &stubOrderCounter{pending: 4}
	timeline := &stubTimeline{entries: []activity.EntryDTO{{Description: "Order placed"}}}
	svc, _ := NewService(products, orders, timeline)

	stats, err := svc.Stats(context.Background(), Actor{Email: "admin@tros.one", Role: enums.RoleAdministrator})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalProducts != 120 || stats.OutOfStock != 7 || stats.LowStock != 15 || stats.PendingOrders != 4 {
		t.Fatalf("wrong stats %+v", stats)
	}
	if len(stats.RecentActivity) != 1 {
		t.Fatal("timeline missing")
	}
}

func TestVendorStatsAreScoped(t *testing.T) {
	email := "vendor@acme.com"
	products := &stubProductCounter{
		all:        120,
		byVendor:   map[string]int64{email: 9},
		outOfStock: map[string]int64{email: 2},
		lowStock:   map[string]int64{email: 3},
	}
	svc, _ := NewService(products, &stubOrderCounter{pending: 1}, &stubTimeline{})

	stats, err := svc.Stats(context.Background(), Actor{Email: email, Role: enums.RoleVendor})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalProducts != 9 || stats.OutOfStock != 2 || stats.LowStock != 3 {
		t.Fatalf("vendor counts must be scoped, got %+v", stats)
	}
}
