package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trosone/tros-backend/api/controllers"
	"github.com/trosone/tros-backend/api/routes"
	"github.com/trosone/tros-backend/internal/activity"
	"github.com/trosone/tros-backend/internal/assignments"
	"github.com/trosone/tros-backend/internal/auth"
	"github.com/trosone/tros-backend/internal/cart"
	"github.com/trosone/tros-backend/internal/changerequests"
	"github.com/trosone/tros-backend/internal/importer"
	"github.com/trosone/tros-backend/internal/orders"
	"github.com/trosone/tros-backend/internal/products"
	"github.com/trosone/tros-backend/internal/reports"
	"github.com/trosone/tros-backend/internal/shops"
	"github.com/trosone/tros-backend/internal/users"
	"github.com/trosone/tros-backend/internal/vendors"
	"github.com/trosone/tros-backend/pkg/auth/session"
	"github.com/trosone/tros-backend/pkg/config"
	"github.com/trosone/tros-backend/pkg/db"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/trosone/tros-backend/pkg/metrics"
	"github.com/trosone/tros-backend/pkg/migrate"
	"github.com/trosone/tros-backend/pkg/pubsub"
	"github.com/trosone/tros-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var activityMirror activity.EventPublisher
	if cfg.PubSub.Enabled() && cfg.GCP.ProjectID != "" {
		psClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		activityMirror = psClient.ActivityPublisher()
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	vendorsRepo := vendors.NewRepository(dbClient.DB())
	shopsRepo := shops.NewRepository(dbClient.DB())
	assignmentsRepo := assignments.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	changeRequestsRepo := changerequests.NewRepository(dbClient.DB())
	activityRepo := activity.NewRepository(dbClient.DB())
	importJobsRepo := importer.NewJobRepository(dbClient.DB())

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	importMetrics := metrics.NewImportMetrics(prometheus.DefaultRegisterer)

	authService, err := auth.NewService(usersRepo, sessionManager, cfg.JWT, cfg.Password, logg)
	requireService(logg, "auth", err)

	userService, err := users.NewService(usersRepo)
	requireService(logg, "users", err)

	vendorService, err := vendors.NewService(vendorsRepo, shopsRepo, usersRepo, cfg.Password)
	requireService(logg, "vendors", err)

	shopService, err := shops.NewService(shopsRepo, vendorsRepo)
	requireService(logg, "shops", err)

	assignmentService, err := assignments.NewService(assignmentsRepo)
	requireService(logg, "assignments", err)

	productService, err := products.NewService(productsRepo, vendorsRepo, shopsRepo, logg, cfg.Import.BatchSize)
	requireService(logg, "products", err)

	cartService, err := cart.NewService(redisClient, cart.DefaultTTL)
	requireService(logg, "cart", err)

	activityService, err := activity.NewService(activityRepo, activityMirror, logg)
	requireService(logg, "activity", err)

	orderService, err := orders.NewService(ordersRepo, cartService, vendorsRepo, activityService, logg)
	requireService(logg, "orders", err)

	changeRequestService, err := changerequests.NewService(changeRequestsRepo, vendorsRepo)
	requireService(logg, "change requests", err)

	reportService, err := reports.NewService(productsRepo, ordersRepo, activityService)
	requireService(logg, "reports", err)

	importService, err := importer.NewService(
		importJobsRepo,
		importMetrics,
		logg,
		cfg.Import.BatchSize,
		importer.NewProductCollection(productsRepo),
		importer.NewVendorCollection(vendorsRepo, shopsRepo),
		importer.NewShopCollection(shopsRepo),
	)
	requireService(logg, "importer", err)

	pingers := map[string]controllers.Pinger{
		"db":    dbClient,
		"redis": redisClient,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			pingers,
			httpMetrics,
			redisClient,
			sessionManager,
			authService,
			userService,
			vendorService,
			shopService,
			assignmentService,
			productService,
			cartService,
			orderService,
			changeRequestService,
			activityService,
			reportService,
			importService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
