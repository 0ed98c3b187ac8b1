package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trosone/tros-backend/api/controllers"
	"github.com/trosone/tros-backend/api/middleware"
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
	"github.com/trosone/tros-backend/pkg/auth/session"
	"github.com/trosone/tros-backend/pkg/config"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/trosone/tros-backend/pkg/metrics"
	redisclient "github.com/trosone/tros-backend/pkg/redis"
)

const adminRole = string(enums.RoleAdministrator)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers map[string]controllers.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	redisClient *redisclient.Client,
	sessionManager session.AccessSessionChecker,
	authService authsvc.Service,
	userService usersvc.Service,
	vendorService vendorsvc.Service,
	shopService shopsvc.Service,
	assignmentService assignmentsvc.Service,
	productService productsvc.Service,
	cartService cartsvc.Service,
	orderService ordersvc.Service,
	changeRequestService crsvc.Service,
	activityService activitysvc.Service,
	reportService reportsvc.Service,
	importService importsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Get("/profile", controllers.Profile(userService, logg))
		r.Put("/profile", controllers.ProfileUpdate(userService, logg))
		r.With(middleware.RequireRole(adminRole, logg)).Get("/users", controllers.UserList(userService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/barcode/{barcode}", controllers.ProductByBarcode(productService, logg))
			r.Get("/{productId}", controllers.ProductDetail(productService, logg))
			r.Put("/{productId}", controllers.ProductUpdate(productService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(adminRole, logg))
				r.Post("/", controllers.ProductCreate(productService, logg))
				r.Post("/bulk-assign", controllers.ProductBulkAssign(productService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(productService, logg))
				r.Get("/export", controllers.CollectionExport(importService, "products", logg))
				r.Post("/import", controllers.CollectionImport(importService, "products", logg))
			})
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Use(middleware.RequireRole(adminRole, logg))
			r.Post("/", controllers.VendorCreate(vendorService, logg))
			r.Get("/", controllers.VendorList(vendorService, logg))
			r.Get("/{vendorId}", controllers.VendorDetail(vendorService, logg))
			r.Put("/{vendorId}", controllers.VendorUpdate(vendorService, logg))
			r.Delete("/{vendorId}", controllers.VendorDelete(vendorService, logg))
			r.Get("/export", controllers.CollectionExport(importService, "vendors", logg))
			r.Post("/import", controllers.CollectionImport(importService, "vendors", logg))
		})

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", controllers.ShopList(shopService, logg))
			r.Get("/{shopId}", controllers.ShopDetail(shopService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(adminRole, logg))
				r.Post("/", controllers.ShopCreate(shopService, logg))
				r.Put("/{shopId}", controllers.ShopUpdate(shopService, logg))
				r.Delete("/{shopId}", controllers.ShopDelete(shopService, logg))
				r.Put("/{shopId}/vendor", controllers.ShopAssignVendor(shopService, logg))
				r.Delete("/{shopId}/vendor", controllers.ShopUnassignVendor(shopService, logg))
				r.Get("/export", controllers.CollectionExport(importService, "shops", logg))
				r.Post("/import", controllers.CollectionImport(importService, "shops", logg))
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", controllers.AssignmentList(assignmentService, logg))
			r.With(middleware.RequireRole(adminRole, logg)).Post("/toggle", controllers.AssignmentToggle(assignmentService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(orderService, logg))
			r.Post("/", controllers.OrderPlace(orderService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(orderService, logg))
			r.With(middleware.RequireRole(adminRole, logg)).Patch("/{orderId}/status", controllers.OrderUpdateStatus(orderService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Put("/", controllers.CartPut(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.Route("/change-requests", func(r chi.Router) {
			r.Post("/", controllers.ChangeRequestSubmit(changeRequestService, logg))
			r.Get("/", controllers.ChangeRequestList(changeRequestService, logg))
		})

		r.Get("/activity", controllers.ActivityRecent(activityService, logg))
		r.Get("/dashboard/stats", controllers.DashboardStats(reportService, logg))
	})

	return r
}
