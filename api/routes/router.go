package routes

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TalhaZaheer1/SmartBridge-Backend/api/controllers"
	"github.com/TalhaZaheer1/SmartBridge-Backend/api/middleware"
	authsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/auth"
	exportsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/export"
	ordersvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/orders"
	paymentsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/payments"
	productsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/products"
	rechargesvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/recharges"
	usersvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/users"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/logger"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/redis"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/storage/local"
)

// Deps carries everything the HTTP surface needs. Nil optional members
// (redis, metrics registry) degrade gracefully.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	Database controllers.Pinger
	Redis    *redis.Client
	Uploads  *local.Client
	Registry *prometheus.Registry

	UserLoader middleware.UserLoader

	Auth      authsvc.Service
	Users     usersvc.Service
	Dashboard usersvc.DashboardService
	Products  productsvc.Service
	Orders    ordersvc.Service
	Recharges rechargesvc.Service
	Payments  paymentsvc.Service
	Export    exportsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Mail.ClientURL),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		"phone",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginPhoneLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		"email",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Database, redisPinger(deps.Redis), logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	if deps.Uploads != nil {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(filepath.Clean(deps.Uploads.BaseDir()))))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, rateLimitStore(deps.Redis), logg)).Post("/register", controllers.Register(deps.Auth, logg))
		r.Post("/verify-otp", controllers.VerifyOTP(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, rateLimitStore(deps.Redis), logg)).Post("/login", controllers.Login(deps.Auth, logg))
		r.Post("/forgot-password", controllers.ForgotPassword(deps.Auth, logg))
		r.Post("/reset-password", controllers.ResetPassword(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.UserLoader, logg))
			r.Get("/profile", controllers.Profile(deps.Auth, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.UserLoader, logg))

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
			r.Get("/", controllers.ListUsers(deps.Users, logg))
			r.Post("/", controllers.CreateUser(deps.Users, logg))
			r.Get("/{userId}", controllers.GetUser(deps.Users, logg))
			r.Put("/{userId}", controllers.UpdateUser(deps.Users, logg))
			r.Put("/{userId}/status", controllers.UpdateUserStatus(deps.Users, logg))
			r.Delete("/{userId}", controllers.DeleteUser(deps.Users, logg))
			r.Post("/{userId}/adjust-balance", controllers.AdjustBalance(deps.Users, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.With(middleware.RequireRole(enums.RoleAdmin, logg)).Get("/admin", controllers.AdminDashboard(deps.Dashboard, logg))
			r.With(middleware.RequireRole(enums.RoleStore, logg)).Get("/vendor", controllers.VendorDashboard(deps.Dashboard, logg))
			r.With(middleware.RequireRole(enums.RoleCustomer, logg)).Get("/customer", controllers.CustomerDashboard(deps.Dashboard, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/adopted", controllers.ListAdoptedProducts(deps.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleStore, logg))
				r.Get("/selectable", controllers.ListSelectableProducts(deps.Products, logg))
				r.Get("/my", controllers.ListMyProducts(deps.Products, logg))
				r.Post("/{productId}/adopt", controllers.AdoptProduct(deps.Products, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
				r.Get("/", controllers.ListProducts(deps.Products, logg))
				r.Post("/", controllers.CreateProduct(deps.Products, deps.Uploads, logg))
				r.Put("/{productId}", controllers.UpdateProduct(deps.Products, deps.Uploads, logg))
				r.Delete("/{productId}", controllers.DeleteProduct(deps.Products, logg))
			})

			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RequireRole(enums.RoleCustomer, logg)).Post("/admin/create", controllers.CreateOrder(deps.Orders, logg))
			r.With(middleware.RequireRole(enums.RoleCustomer, logg)).Get("/customer", controllers.CustomerOrders(deps.Orders, logg))
			r.With(middleware.RequireRole(enums.RoleStore, logg)).Get("/vendor", controllers.VendorOrders(deps.Orders, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
				r.Get("/admin/all", controllers.AdminOrders(deps.Orders, logg))
				r.Get("/admin/export/csv", controllers.ExportOrdersXLSX(deps.Export, logg))
				r.Get("/admin/export/pdf", controllers.ExportOrdersPDF(deps.Export, logg))
				r.Put("/{orderId}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
				r.Get("/{orderId}/activity", controllers.OrderActivity(deps.Orders, logg))
			})
		})

		r.Route("/recharges", func(r chi.Router) {
			r.Post("/upload", controllers.UploadRechargeProof(deps.Recharges, deps.Uploads, logg))
			r.With(middleware.RequireRole(enums.RoleCustomer, logg)).Get("/my", controllers.MyRecharges(deps.Recharges, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
				r.Get("/", controllers.AllRecharges(deps.Recharges, logg))
				r.Post("/approve", controllers.ApproveRecharge(deps.Recharges, logg))
				r.Get("/pending", controllers.PendingRecharges(deps.Recharges, logg))
			})
		})

		r.Route("/payment-config", func(r chi.Router) {
			r.Get("/", controllers.GetPaymentConfig(deps.Payments, logg))
			r.With(middleware.RequireRole(enums.RoleAdmin, logg)).Put("/", controllers.UpdatePaymentConfig(deps.Payments, deps.Uploads, logg))
		})
	})

	return r
}

// redisPinger avoids handing health checks a typed-nil interface when the
// cache is disabled.
func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}

// rateLimitStore keeps the auth throttling middleware disabled when the
// cache is not configured; a typed-nil client would defeat its nil guard.
func rateLimitStore(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}
