package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/blissmahlathi/campusmarket-backend/api/routes"
	"github.com/blissmahlathi/campusmarket-backend/internal/auth"
	"github.com/blissmahlathi/campusmarket-backend/internal/cart"
	checkoutsvc "github.com/blissmahlathi/campusmarket-backend/internal/checkout"
	"github.com/blissmahlathi/campusmarket-backend/internal/notifications"
	"github.com/blissmahlathi/campusmarket-backend/internal/orders"
	"github.com/blissmahlathi/campusmarket-backend/internal/products"
	"github.com/blissmahlathi/campusmarket-backend/internal/users"
	"github.com/blissmahlathi/campusmarket-backend/internal/vendors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/auth/session"
	"github.com/blissmahlathi/campusmarket-backend/pkg/config"
	"github.com/blissmahlathi/campusmarket-backend/pkg/db"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
	"github.com/blissmahlathi/campusmarket-backend/pkg/migrate"
	"github.com/blissmahlathi/campusmarket-backend/pkg/redis"
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, logg, dbClient, redisClient, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	sessionManager *session.Manager,
) (routes.Services, error) {
	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	vendorService, err := vendors.NewService(vendors.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	productRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productRepo)
	if err != nil {
		return routes.Services{}, err
	}

	cartStore, err := cart.NewStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		return routes.Services{}, err
	}
	cartService, err := cart.NewService(cartStore, productRepo)
	if err != nil {
		return routes.Services{}, err
	}

	notificationService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()), logg)
	if err != nil {
		return routes.Services{}, err
	}
	notifier := notifications.NewNotifier(notificationService, logg)

	orderRepo := orders.NewRepository(dbClient.DB())
	orderService, err := orders.NewService(orderRepo, notifier)
	if err != nil {
		return routes.Services{}, err
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		CartStore:   cartStore,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		OrderRepo:   orderRepo,
		TxRunner:    dbClient,
		Notifier:    notifier,
		Logger:      logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:          authService,
		Vendors:       vendorService,
		Products:      productService,
		Cart:          cartService,
		Checkout:      checkoutService,
		Orders:        orderService,
		Notifications: notificationService,
	}, nil
}
