package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trosone/tros-backend/internal/cart"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListByVendorName(ctx context.Context, vendorName string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type cartReader interface {
	Get(ctx context.Context, userID string) (*cart.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type vendorLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.Vendor, error)
}

type activityRecorder interface {
	Record(ctx context.Context, kind enums.ActivityType, description, actor string)
}

// Actor identifies the caller placing or viewing orders.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   enums.Role
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdministrator
}

// Service exposes the order lifecycle.
type Service interface {
	Place(ctx context.Context, actor Actor) (*OrderDTO, error)
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, actor Actor) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*OrderDTO, error)
}

type service struct {
	repo     orderRepository
	carts    cartReader
	vendors  vendorLookup
	activity activityRecorder
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds an order service with the provided collaborators.
func NewService(repo orderRepository, carts cartReader, vendors vendorLookup, activity activityRecorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor lookup required")
	}
	if activity == nil {
		return nil, fmt.Errorf("activity recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		carts:    carts,
		vendors:  vendors,
		activity: activity,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Place turns the caller's cart into an order. Totals are computed here once
// and frozen; later product edits never flow back into the order.
func (s *service) Place(ctx context.Context, actor Actor) (*OrderDTO, error) {
	basket, err := s.carts.Get(ctx, actor.UserID.String())
	if err != nil {
		return nil, err
	}
	if len(basket.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if basket.ShopName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a shop must be selected before placing an order")
	}

	vendorName, err := s.resolveVendorName(ctx, actor)
	if err != nil {
		return nil, err
	}

	totalItems := 0
	totalValue := decimal.Zero
	for i := range basket.Items {
		item := &basket.Items[i]
		item.Total = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalItems += item.Quantity
		totalValue = totalValue.Add(item.Total)
	}

	order := &models.Order{
		ID:         uuid.New(),
		VendorName: vendorName,
		Shop:       basket.ShopName,
		Date:       s.now(),
		TotalItems: totalItems,
		TotalValue: totalValue,
		Status:     enums.OrderStatusPending,
		Items:      basket.Items,
	}
	if basket.ShopID != "" {
		if shopID, err := uuid.Parse(basket.ShopID); err == nil {
			order.ShopID = &shopID
		}
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	if err := s.carts.Clear(ctx, actor.UserID.String()); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("cart not cleared after order %s: %v", order.ID, err))
	}
	s.activity.Record(ctx, enums.ActivityTypeOrder,
		fmt.Sprintf("Order placed for %s (%d items)", order.Shop, order.TotalItems), vendorName)

	return FromModel(order), nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	if !actor.IsAdmin() {
		vendorName, err := s.resolveVendorName(ctx, actor)
		if err != nil {
			return nil, err
		}
		if order.VendorName != vendorName {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another vendor")
		}
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, actor Actor) ([]OrderDTO, error) {
	if actor.IsAdmin() {
		rows, err := s.repo.List(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
		}
		return fromModels(rows), nil
	}

	vendorName, err := s.resolveVendorName(ctx, actor)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByVendorName(ctx, vendorName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return fromModels(rows), nil
}

// UpdateStatus is a flat field write. Any transition between known statuses
// is allowed, including leaving Completed.
func (s *service) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*OrderDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only administrators can update order status")
	}
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = parsed
	return FromModel(order), nil
}

// resolveVendorName maps the caller's email to their vendor record's name.
// Orders store the display name, not the email.
func (s *service) resolveVendorName(ctx context.Context, actor Actor) (string, error) {
	v, err := s.vendors.FindByEmail(ctx, actor.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "no vendor record for caller")
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "vendor lookup")
	}
	return v.Name, nil
}

func mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order lookup")
}
