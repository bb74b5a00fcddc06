package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shutterhub/backend/internal/catalog"
	"github.com/shutterhub/backend/internal/config"
	"github.com/shutterhub/backend/internal/handlers"
	"github.com/shutterhub/backend/internal/logger"
	appMiddleware "github.com/shutterhub/backend/internal/middleware"
	"github.com/shutterhub/backend/internal/services"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// Mongo-backed services, falling back to in-memory stores when no
	// database is reachable (local development without Mongo).
	var (
		productService services.ProductService
		userService    services.UserService
		orderService   services.OrderService
	)

	mongoProducts, err := services.NewMongoProductService(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Warn("MongoDB unavailable, using in-memory stores", "error", err)
		memProducts := services.NewMemoryProductService()
		memUsers := services.NewMemoryUserService()
		productService = memProducts
		userService = memUsers
		orderService = services.NewMemoryOrderService(memUsers, memProducts)
	} else {
		productService = mongoProducts
		defer mongoProducts.Close(ctx)

		mongoUsers, err := services.NewMongoUserService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("failed to connect user store", "error", err)
			os.Exit(1)
		}
		userService = mongoUsers
		defer mongoUsers.Close(ctx)

		mongoOrders, err := services.NewMongoOrderService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("failed to connect order store", "error", err)
			os.Exit(1)
		}
		orderService = mongoOrders
		defer mongoOrders.Close(ctx)
	}

	engine := catalog.NewEngine(catalog.DefaultTaxonomy())

	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration, cfg.AllowAdminBootstrap)
	productHandler := handlers.NewProductHandler(productService)
	catalogHandler := handlers.NewCatalogHandler(productService, engine)
	quoteHandler := handlers.NewQuoteHandler(productService, cfg.WhatsAppNumber)
	orderHandler := handlers.NewOrderHandler(orderService, productService)
	analyticsHandler := handlers.NewAnalyticsHandler(productService, userService, orderService)

	// Self-issued JWTs by default; Firebase ID tokens when configured.
	authMW := appMiddleware.JWTAuth(cfg.JWTSecret)
	if cfg.AuthProvider == "firebase" {
		authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
		})
		if err != nil {
			logger.Warn("failed to initialize Firebase Auth, falling back to JWT", "error", err)
		} else {
			authMW = appMiddleware.FirebaseAuth(authClient)
		}
	}

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", authHandler.Register)
		r.Post("/create-admin", authHandler.CreateAdmin)
		r.Post("/login", authHandler.Login)
		r.Get("/products", productHandler.ListAvailable)
		r.Get("/category", productHandler.Categories)
		r.Get("/catalog", catalogHandler.Browse)
		r.Get("/catalog/facets", catalogHandler.Facets)
		r.Post("/quote", quoteHandler.CreateQuote)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMW)

			r.Get("/profile", authHandler.GetProfile)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderHandler.Create)
				r.Get("/", orderHandler.ListMine)
			})

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Use(appMiddleware.RequireAdmin)

				r.Get("/profile", authHandler.GetProfile)
				r.Get("/customers", authHandler.ListCustomers)
				r.Get("/analytics", analyticsHandler.Summary)

				r.Route("/products", func(r chi.Router) {
					r.Get("/", productHandler.AdminList)
					r.Post("/", productHandler.Create)
					r.Put("/{productId}", productHandler.Update)
					r.Delete("/{productId}", productHandler.Delete)
				})

				r.Get("/orders", orderHandler.AdminList)
				r.Put("/orders/{orderId}/status", orderHandler.UpdateStatus)
			})
		})
	})

	logger.Info("API server starting", "address", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
