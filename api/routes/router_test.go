package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trosone/tros-backend/api/controllers"
	activitysvc "github.com/trosone/tros-backend/internal/activity"
	assignmentsvc "github.com/trosone/tros-backend/internal/assignments"
	authsvc "github.com/trosone/tros-backend/internal/auth"
	cartsvc "github.com/trosone/tros-backend/internal/cart"
	crsvc "github.com/trosone/tros-backend/internal/changerequests"
	importsvc "github.com/trosone/tros-backend/internal/importer"
	ordersvc "github.com/trosone/tros-backend/internal/orders"
	productsvc "github.com/trosone/tros-backend/internal/products"
	reportsvc "github.com/trosone/tros-backend/internal/reports"
	shopsvc "github.com/trosone/tros-backend/internal/shops"
	usersvc "github.com/trosone/tros-backend/internal/users"
	vendorsvc "github.com/trosone/tros-backend/internal/vendors"
	pkgAuth "github.com/trosone/tros-backend/pkg/auth"
	"github.com/trosone/tros-backend/pkg/config"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/trosone/tros-backend/pkg/metrics"
	redisclient "github.com/trosone/tros-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, input authsvc.RegisterInput) (*authsvc.Session, error) {
	return &authsvc.Session{}, nil
}

func (stubAuthService) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.Session, error) {
	return &authsvc.Session{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, expiredAccessToken, refreshToken string) (*authsvc.Session, error) {
	return &authsvc.Session{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error { return nil }

func (stubAuthService) RepairProfile(ctx context.Context, email string) error { return nil }

func (stubAuthService) ResolveRole(ctx context.Context, email string) authsvc.RoleResolution {
	return authsvc.RoleResolution{}
}

type stubUserService struct{}

func (stubUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{}, nil
}

func (stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usersvc.UpdateProfileInput) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{}, nil
}

func (stubUserService) List(ctx context.Context) ([]usersvc.UserDTO, error) {
	return []usersvc.UserDTO{}, nil
}

type stubVendorService struct{}

func (stubVendorService) Create(ctx context.Context, input vendorsvc.CreateVendorInput) (*vendorsvc.VendorDTO, string, error) {
	return &vendorsvc.VendorDTO{}, "", nil
}

func (stubVendorService) GetByID(ctx context.Context, id uuid.UUID) (*vendorsvc.VendorDTO, error) {
	return &vendorsvc.VendorDTO{}, nil
}

func (stubVendorService) List(ctx context.Context) ([]vendorsvc.VendorDTO, error) {
	return []vendorsvc.VendorDTO{}, nil
}

func (stubVendorService) Update(ctx context.Context, id uuid.UUID, input vendorsvc.UpdateVendorInput) (*vendorsvc.VendorDTO, error) {
	return &vendorsvc.VendorDTO{}, nil
}

func (stubVendorService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubShopService struct{}

func (stubShopService) Create(ctx context.Context, input shopsvc.CreateShopInput) (*shopsvc.ShopDTO, error) {
	return &shopsvc.ShopDTO{}, nil
}

func (stubShopService) GetByID(ctx context.Context, id uuid.UUID) (*shopsvc.ShopDTO, error) {
	return &shopsvc.ShopDTO{}, nil
}

func (stubShopService) List(ctx context.Context) ([]shopsvc.ShopDTO, error) {
	return []shopsvc.ShopDTO{}, nil
}

func (stubShopService) ListForVendorEmail(ctx context.Context, email string) ([]shopsvc.ShopDTO, error) {
	return []shopsvc.ShopDTO{}, nil
}

func (stubShopService) Update(ctx context.Context, id uuid.UUID, input shopsvc.UpdateShopInput) (*shopsvc.ShopDTO, error) {
	return &shopsvc.ShopDTO{}, nil
}

func (stubShopService) AssignVendor(ctx context.Context, shopID, vendorID uuid.UUID) (*shopsvc.ShopDTO, error) {
	return &shopsvc.ShopDTO{}, nil
}

func (stubShopService) UnassignVendor(ctx context.Context, shopID uuid.UUID) (*shopsvc.ShopDTO, error) {
	return &shopsvc.ShopDTO{}, nil
}

func (stubShopService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubAssignmentService struct{}

func (stubAssignmentService) Toggle(ctx context.Context, vendorID, shopID uuid.UUID) (*assignmentsvc.ToggleResult, error) {
	return &assignmentsvc.ToggleResult{}, nil
}

func (stubAssignmentService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Assignment, error) {
	return []models.Assignment{}, nil
}

func (stubAssignmentService) ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Assignment, error) {
	return []models.Assignment{}, nil
}

type stubProductService struct{}

func (stubProductService) Create(ctx context.Context, actor productsvc.Actor, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) GetByID(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) GetByBarcode(ctx context.Context, barcode string) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) List(ctx context.Context, actor productsvc.Actor) ([]productsvc.ProductDTO, error) {
	return []productsvc.ProductDTO{}, nil
}

func (stubProductService) Update(ctx context.Context, actor productsvc.Actor, id uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) Delete(ctx context.Context, actor productsvc.Actor, id uuid.UUID) error {
	return nil
}

func (stubProductService) BulkAssign(ctx context.Context, actor productsvc.Actor, input productsvc.BulkAssignInput) (*productsvc.BulkAssignResult, error) {
	return &productsvc.BulkAssignResult{}, nil
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, userID string) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{}, nil
}

func (stubCartService) Put(ctx context.Context, userID string, cart cartsvc.Cart) error { return nil }

func (stubCartService) Clear(ctx context.Context, userID string) error { return nil }

type stubOrderService struct{}

func (stubOrderService) Place(ctx context.Context, actor ordersvc.Actor) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

func (stubOrderService) GetByID(ctx context.Context, actor ordersvc.Actor, id uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

func (stubOrderService) List(ctx context.Context, actor ordersvc.Actor) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}

func (stubOrderService) UpdateStatus(ctx context.Context, actor ordersvc.Actor, id uuid.UUID, status string) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{}, nil
}

type stubChangeRequestService struct{}

func (stubChangeRequestService) Submit(ctx context.Context, actor crsvc.Actor, input crsvc.SubmitInput) (*crsvc.ChangeRequestDTO, error) {
	return &crsvc.ChangeRequestDTO{}, nil
}

func (stubChangeRequestService) List(ctx context.Context, actor crsvc.Actor) ([]crsvc.ChangeRequestDTO, error) {
	return []crsvc.ChangeRequestDTO{}, nil
}

type stubActivityService struct{}

func (stubActivityService) Record(ctx context.Context, kind enums.ActivityType, description, actor string) {
}

func (stubActivityService) Recent(ctx context.Context, limit int) ([]activitysvc.EntryDTO, error) {
	return []activitysvc.EntryDTO{}, nil
}

type stubReportService struct{}

func (stubReportService) Stats(ctx context.Context, actor reportsvc.Actor) (*reportsvc.DashboardStats, error) {
	return &reportsvc.DashboardStats{}, nil
}

type stubImportService struct{}

func (stubImportService) Export(ctx context.Context, collection string) (*importsvc.ExportResult, error) {
	return &importsvc.ExportResult{Filename: "products_2026-01-01.csv", Content: "name\n"}, nil
}

func (stubImportService) Import(ctx context.Context, collection, content string) (*importsvc.ImportResult, error) {
	return &importsvc.ImportResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret-router-test-secret",
			Issuer:            "tros-test",
			ExpirationMinutes: 15,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		map[string]controllers.Pinger{"db": stubPinger{}},
		metrics.NewHTTPMetrics(nil),
		(*redisclient.Client)(nil),
		stubSessionChecker{},
		stubAuthService{},
		stubUserService{},
		stubVendorService{},
		stubShopService{},
		stubAssignmentService{},
		stubProductService{},
		stubCartService{},
		stubOrderService{},
		stubChangeRequestService{},
		stubActivityService{},
		stubReportService{},
		stubImportService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role, email string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  email,
		Role:   role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	return token
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestVendorRoutesRequireAdministrator(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	vendor := httptest.NewRequest(http.MethodGet, "/api/v1/vendors", nil)
	vendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVendor, "vendor@acme.com"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, vendor)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/vendors", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdministrator, "admin@tros.one"))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestVendorCanListProducts(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVendor, "vendor@acme.com"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for vendor product list got %d", resp.Code)
	}
}

func TestOrderStatusUpdateIsAdminOnly(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	url := "/api/v1/orders/" + uuid.NewString() + "/status"
	req := httptest.NewRequest(http.MethodPatch, url, nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVendor, "vendor@acme.com"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor status update got %d", resp.Code)
	}
}

func TestCollectionExportIsAdminOnly(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	vendor := httptest.NewRequest(http.MethodGet, "/api/v1/products/export", nil)
	vendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleVendor, "vendor@acme.com"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, vendor)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor export got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/products/export", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdministrator, "admin@tros.one"))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin export got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Disposition"); got == "" {
		t.Fatal("expected a download disposition header")
	}
}
