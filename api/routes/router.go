package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blissmahlathi/campusmarket-backend/api/controllers"
	"github.com/blissmahlathi/campusmarket-backend/api/middleware"
	"github.com/blissmahlathi/campusmarket-backend/internal/auth"
	"github.com/blissmahlathi/campusmarket-backend/internal/cart"
	checkoutsvc "github.com/blissmahlathi/campusmarket-backend/internal/checkout"
	"github.com/blissmahlathi/campusmarket-backend/internal/notifications"
	"github.com/blissmahlathi/campusmarket-backend/internal/orders"
	"github.com/blissmahlathi/campusmarket-backend/internal/products"
	"github.com/blissmahlathi/campusmarket-backend/internal/vendors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/auth/session"
	"github.com/blissmahlathi/campusmarket-backend/pkg/config"
	"github.com/blissmahlathi/campusmarket-backend/pkg/db"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
	"github.com/blissmahlathi/campusmarket-backend/pkg/redis"
)

// Services bundles the wired domain services the router exposes.
type Services struct {
	Auth          auth.Service
	Vendors       vendors.Service
	Products      products.Service
	Cart          cart.Service
	Checkout      checkoutsvc.Service
	Orders        orders.Service
	Notifications notifications.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions *session.Manager,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	// Catalog reads are open so buyers can browse before signing in.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(svcs.Products, logg))
		r.Get("/products/{productId}", controllers.GetProduct(svcs.Products, logg))
		r.Get("/categories", controllers.ListCategories(svcs.Products, logg))
		r.Get("/vendors/{vendorId}", controllers.GetVendor(svcs.Vendors, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/me", controllers.AuthProfile(svcs.Auth, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/items", controllers.CartAdd(svcs.Cart, logg))
			r.Put("/items/{productId}", controllers.CartUpdateQuantity(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemove(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Post("/apply", controllers.VendorApply(svcs.Vendors, logg))
			r.Get("/me", controllers.VendorProfile(svcs.Vendors, logg))
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleVendor), logg))
			r.Use(middleware.VendorContext(svcs.Vendors, logg))

			r.Post("/products", controllers.VendorCreateProduct(svcs.Products, logg))
			r.Patch("/products/{productId}", controllers.VendorUpdateProduct(svcs.Products, logg))
			r.Delete("/products/{productId}", controllers.VendorDeleteProduct(svcs.Products, logg))
			r.Patch("/orders/{orderId}/status", controllers.OrderUpdateStatus(svcs.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.Use(middleware.RequireAdminEmail(cfg.Admin.Email, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.AdminPing())

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.AdminListVendors(svcs.Vendors, logg))
			r.Post("/{vendorId}/decision", controllers.AdminVendorDecision(svcs.Vendors, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.OrderUpdateStatus(svcs.Orders, logg))
		})

		r.Post("/categories", controllers.AdminCreateCategory(svcs.Products, logg))
	})

	return r
}
