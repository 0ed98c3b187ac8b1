package orders

import (
	"context"
	"testing"
	"time"

	"github.com/trosone/tros-backend/internal/cart"
	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubOrderRepo struct {
	byID map[uuid.UUID]*models.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: map[uuid.UUID]*models.Order{}}
}

func (s *stubOrderRepo) Create(ctx context.Context, o *models.Order) error {
	s.byID[o.ID] = o
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := s.byID[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) List(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.byID {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrderRepo) ListByVendorName(ctx context.Context, vendorName string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.byID {
		if o.VendorName == vendorName {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	if o, ok := s.byID[id]; ok {
		o.Status = status
	}
	return nil
}

type stubCarts struct {
	carts   map[string]*cart.Cart
	cleared []string
}

func newStubCarts() *stubCarts {
	return &stubCarts{carts: map[string]*cart.Cart{}}
}

func (s *stubCarts) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	if c, ok := s.carts[userID]; ok {
		return c, nil
	}
	return &cart.Cart{Items: dbtypes.OrderItems{}}, nil
}

func (s *stubCarts) Clear(ctx context.Context, userID string) error {
	delete(s.carts, userID)
	s.cleared = append(s.cleared, userID)
	return nil
}

type stubVendors struct {
	byEmail map[string]*models.Vendor
}

func (s *stubVendors) FindByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	if v, ok := s.byEmail[email]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubActivity struct {
	entries []string
}

func (s *stubActivity) Record(ctx context.Context, kind enums.ActivityType, description, actor string) {
	s.entries = append(s.entries, string(kind)+": "+description)
}

type fixture struct {
	repo     *stubOrderRepo
	carts    *stubCarts
	vendors  *stubVendors
	activity *stubActivity
	svc      Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newStubOrderRepo(),
		carts:    newStubCarts(),
		vendors:  &stubVendors{byEmail: map[string]*models.Vendor{}},
		activity: &stubActivity{},
	}
	logg := logger.New(logger.Options{ServiceName: "orders-test", Level: logger.ParseLevel("error")})
	svc, err := NewService(f.repo, f.carts, f.vendors, f.activity, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.svc = svc
	return f
}

var (
	adminActor  = Actor{UserID: uuid.New(), Email: "admin@tros.one", Role: enums.RoleAdministrator}
	vendorActor = Actor{UserID: uuid.New(), Email: "vendor@acme.com", Role: enums.RoleVendor}
)

func (f *fixture) seedVendor(name string) {
	f.vendors.byEmail[vendorActor.Email] = &models.Vendor{
		ID: uuid.New(), Name: name, Email: vendorActor.Email,
	}
}

func (f *fixture) seedCart() {
	f.carts.carts[vendorActor.UserID.String()] = &cart.Cart{
		ShopID:   uuid.NewString(),
		ShopName: "Downtown",
		Items: dbtypes.OrderItems{
			{ProductID: uuid.New(), ProductName: "Widget", Price: decimal.RequireFromString("2.50"), Quantity: 4},
			{ProductID: uuid.New(), ProductName: "Gadget", Price: decimal.RequireFromString("10.00"), Quantity: 1},
		},
	}
}

func TestPlaceFreezesTotalsAndClearsCart(t *testing.T) {
	f := newFixture(t)
	f.seedVendor("Acme Goods")
	f.seedCart()

	order, err := f.svc.Place(context.Background(), vendorActor)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if order.TotalItems != 5 {
		t.Fatalf("expected 5 total items, got %d", order.TotalItems)
	}
	if !order.TotalValue.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected total 20.00, got %s", order.TotalValue)
	}
	if order.Status != "Pending" {
		t.Fatalf("new orders must be Pending, got %q", order.Status)
	}
	if order.VendorName != "Acme Goods" {
		t.Fatalf("order carries the vendor display name, got %q", order.VendorName)
	}
	if len(f.carts.cleared) != 1 {
		t.Fatal("cart must be cleared after placement")
	}
	if len(f.activity.entries) != 1 {
		t.Fatal("placement must record an activity entry")
	}
}

func TestPlaceRejectsEmptyCartAndMissingShop(t *testing.T) {
	f := newFixture(t)
	f.seedVendor("Acme Goods")

	_, err := f.svc.Place(context.Background(), vendorActor)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("empty cart must be a validation error, got %v", err)
	}

	f.carts.carts[vendorActor.UserID.String()] = &cart.Cart{
		Items: dbtypes.OrderItems{{ProductID: uuid.New(), ProductName: "Widget", Price: decimal.NewFromInt(1), Quantity: 1}},
	}
	_, err = f.svc.Place(context.Background(), vendorActor)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing shop must be a validation error, got %v", err)
	}
}

func TestListIsScopedByVendorName(t *testing.T) {
	f := newFixture(t)
	f.seedVendor("Acme Goods")
	f.repo.byID[uuid.New()] = &models.Order{ID: uuid.New(), VendorName: "Acme Goods", Status: enums.OrderStatusPending}
	f.repo.byID[uuid.New()] = &models.Order{ID: uuid.New(), VendorName: "Other Corp", Status: enums.OrderStatusPending}

	mine, err := f.svc.List(context.Background(), vendorActor)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(mine) != 1 || mine[0].VendorName != "Acme Goods" {
		t.Fatalf("vendor must only see own orders, got %v", mine)
	}

	all, err := f.svc.List(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("List admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin must see all orders, got %d", len(all))
	}
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.repo.byID[id] = &models.Order{ID: id, VendorName: "Acme Goods", Status: enums.OrderStatusCompleted}

	got, err := f.svc.UpdateStatus(context.Background(), adminActor, id, "Pending")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != "Pending" {
		t.Fatalf("completed orders may be reopened, got %q", got.Status)
	}

	_, err = f.svc.UpdateStatus(context.Background(), vendorActor, id, "Hold")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("vendors must not update status, got %v", err)
	}

	_, err = f.svc.UpdateStatus(context.Background(), adminActor, id, "Shipped")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unknown statuses must be rejected, got %v", err)
	}
}

func TestPlaceWithoutVendorRecordFails(t *testing.T) {
	f := newFixture(t)
	f.seedCart()

	_, err := f.svc.Place(context.Background(), vendorActor)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("missing vendor record must be not found, got %v", err)
	}
}

func TestOrderDateComesFromClock(t *testing.T) {
	f := newFixture(t)
	f.seedVendor("Acme Goods")
	f.seedCart()
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.(*service).now = func() time.Time { return fixed }

	order, err := f.svc.Place(context.Background(), vendorActor)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !order.Date.Equal(fixed) {
		t.Fatalf("expected order date %v, got %v", fixed, order.Date)
	}
}
