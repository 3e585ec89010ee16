package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ovenfresh/bakery-platform/internal/api/handlers"
	"github.com/ovenfresh/bakery-platform/internal/api/middleware"
	"github.com/ovenfresh/bakery-platform/internal/cache"
	"github.com/ovenfresh/bakery-platform/internal/config"
	"github.com/ovenfresh/bakery-platform/internal/health"
	"github.com/ovenfresh/bakery-platform/internal/metrics"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
	service "github.com/ovenfresh/bakery-platform/internal/services"
	"github.com/ovenfresh/bakery-platform/internal/uploads"
	"github.com/ovenfresh/bakery-platform/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	tokenRepo := repository.NewTokenRepo(redisClient, cfg)
	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	uploadStore, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		slog.Error("❌ Error preparing uploads directory", "error", err.Error())
		os.Exit(1)
	}

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, tokenRepo, cfg.Security)
	userHandler := handlers.NewUserHandler(userService)
	catalogService := service.NewCatalogService(repos.Category, repos.Subcategory, catalogCache)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	productService := service.NewProductService(repos.Product, repos.Subcategory)
	productHandler := handlers.NewProductHandler(productService, uploadStore)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.User, emailService)
	orderHandler := handlers.NewOrderHandler(orderService, uploadStore)
	adminHandler := handlers.NewAdminHandler(orderService, userService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Auth
	routerMux.HandleFunc("POST /api/v1/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/refresh", userHandler.Refresh())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PATCH /api/v1/users/profile", authMiddleware.Authenticate(userHandler.UpdateProfile()))

	// Public catalog
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", catalogHandler.GetCategory())
	routerMux.HandleFunc("GET /api/v1/subcategories", catalogHandler.ListSubcategories())
	routerMux.HandleFunc("GET /api/v1/subcategories/{id}", catalogHandler.GetSubcategory())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())

	// Cart
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))

	// Orders
	routerMux.HandleFunc("POST /api/v1/orders/checkout", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListMyOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))

	// Admin
	admin := func(h http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(h))
	}

	routerMux.HandleFunc("POST /api/v1/admin/categories", admin(catalogHandler.CreateCategory()))
	routerMux.HandleFunc("PATCH /api/v1/admin/categories/{id}", admin(catalogHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/admin/categories/{id}", admin(catalogHandler.DeleteCategory()))
	routerMux.HandleFunc("POST /api/v1/admin/subcategories", admin(catalogHandler.CreateSubcategory()))
	routerMux.HandleFunc("PATCH /api/v1/admin/subcategories/{id}", admin(catalogHandler.UpdateSubcategory()))
	routerMux.HandleFunc("DELETE /api/v1/admin/subcategories/{id}", admin(catalogHandler.DeleteSubcategory()))
	routerMux.HandleFunc("POST /api/v1/admin/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PATCH /api/v1/admin/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", admin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/admin/products/{id}/images", admin(productHandler.UploadImage()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", admin(adminHandler.ListOrders()))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", admin(adminHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("GET /api/v1/admin/orders/export", admin(adminHandler.ExportOrders()))
	routerMux.HandleFunc("GET /api/v1/admin/customers", admin(adminHandler.ListCustomers()))
	routerMux.HandleFunc("GET /api/v1/admin/customers/{id}", admin(adminHandler.GetCustomer()))

	// Operational endpoints
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Uploaded payment proofs and product images
	routerMux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadStore.Dir()))))

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
