package reports

import (
	"context"
	"fmt"

	"github.com/trosone/tros-backend/internal/activity"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
)

type productCounter interface {
	CountAll(ctx context.Context) (int64, error)
	CountAllByVendorEmail(ctx context.Context, email string) (int64, error)
	CountOutOfStock(ctx context.Context, vendorEmail string) (int64, error)
	CountLowStock(ctx context.Context, vendorEmail string) (int64, error)
}

type orderCounter interface {
	CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error)
}

type activityReader interface {
	Recent(ctx context.Context, limit int) ([]activity.EntryDTO, error)
}

// Actor identifies the caller for stat scoping.
type Actor struct {
	Email string
	Role  enums.Role
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdministrator
}

// DashboardStats backs the stat cards and the timeline.
type DashboardStats struct {
	TotalProducts  int64               `json:"total_products"`
	LowStock       int64               `json:"low_stock"`
	OutOfStock     int64               `json:"out_of_stock"`
	PendingOrders  int64               `json:"pending_orders"`
	RecentActivity []activity.EntryDTO `json:"recent_activity"`
}

// Service aggregates dashboard numbers.
type Service interface {
	Stats(ctx context.Context, actor Actor) (*DashboardStats, error)
}

type service struct {
	products productCounter
	orders   orderCounter
	timeline activityReader
}

// NewService builds a reports service over the counting repositories.
func NewService(products productCounter, orders orderCounter, timeline activityReader) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product counter required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order counter required")
	}
	if timeline == nil {
		return nil, fmt.Errorf("activity reader required")
	}
	return &service{products: products, orders: orders, timeline: timeline}, nil
}

// Stats returns the dashboard counts. Vendors see product counts scoped to
// their own email; order and activity numbers are shared.
func (s *service) Stats(ctx context.Context, actor Actor) (*DashboardStats, error) {
	scope := ""
	if !actor.IsAdmin() {
		scope = actor.Email
	}

	var (
		stats DashboardStats
		err   error
	)
	if actor.IsAdmin() {
		stats.TotalProducts, err = s.products.CountAll(ctx)
	} else {
		stats.TotalProducts, err = s.products.CountAllByVendorEmail(ctx, scope)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}

	if stats.OutOfStock, err = s.products.CountOutOfStock(ctx, scope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count out of stock")
	}
	if stats.LowStock, err = s.products.CountLowStock(ctx, scope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count low stock")
	}
	if stats.PendingOrders, err = s.orders.CountByStatus(ctx, enums.OrderStatusPending); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}

	stats.RecentActivity, err = s.timeline.Recent(ctx, activity.DefaultRecentLimit)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
