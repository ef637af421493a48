package main

import (
	"log"
	"net/http"

	"github.com/babo072/my-shopping-mall/internal/auth"
	"github.com/babo072/my-shopping-mall/internal/cache"
	"github.com/babo072/my-shopping-mall/internal/config"
	"github.com/babo072/my-shopping-mall/internal/gateway"
	"github.com/babo072/my-shopping-mall/internal/handler"
	"github.com/babo072/my-shopping-mall/internal/infrastructure"
	"github.com/babo072/my-shopping-mall/internal/middleware"
	"github.com/babo072/my-shopping-mall/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := infrastructure.ConnectDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := infrastructure.MigrateAllSchemas(db); err != nil {
		log.Fatalf("Failed to migrate database schemas: %v", err)
	}

	rdb := infrastructure.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
	views := cache.NewOrderViews(rdb)

	// Services
	userStore := infrastructure.NewUserStore(db)
	userService := service.NewUserService(userStore)
	productService := service.NewProductService(db)
	orderStore := infrastructure.NewOrderStore(db)
	orderService := service.NewOrderService(orderStore, views)
	orderAdminService := service.NewOrderAdminService(orderStore, views)

	paymentGateway := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewaySecret, cfg.GatewayTimeout)
	paymentService := service.NewPaymentService(orderStore, paymentGateway, views)

	authzService, err := service.NewAuthorizationService()
	if err != nil {
		log.Fatalf("Failed to initialize authorization service: %v", err)
	}
	tokenService := auth.NewService(cfg.JWTSecret)

	// Seed data
	seedManager := infrastructure.NewSeedDataManager(db, userService, productService)
	if err := seedManager.SeedAll(); err != nil {
		log.Fatalf("Failed to setup seed data: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(userService, tokenService)
	profileHandler := handler.NewProfileHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService, userService)
	orderAdminHandler := handler.NewOrderAdminHandler(orderAdminService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	metrics := middleware.NewMetrics()

	r := gin.Default()
	r.Use(metrics.Handler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", middleware.MetricsEndpoint())

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(tokenService))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile", profileHandler.Update)

	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)

	authed.POST("/payment/verify", paymentHandler.Verify)

	// Admin routes: the caller's role is re-resolved from storage on every
	// request before the permission check.
	authed.POST("/products",
		middleware.RequirePermission(authzService, userService, service.ResourceProducts, service.ActionWrite),
		productHandler.Create)
	authed.PUT("/products/:id",
		middleware.RequirePermission(authzService, userService, service.ResourceProducts, service.ActionWrite),
		productHandler.Update)
	authed.DELETE("/products/:id",
		middleware.RequirePermission(authzService, userService, service.ResourceProducts, service.ActionWrite),
		productHandler.Delete)
	authed.DELETE("/products/:id/images/:imageId",
		middleware.RequirePermission(authzService, userService, service.ResourceProducts, service.ActionWrite),
		productHandler.DeleteImage)

	authed.POST("/admin/orders/:id/status",
		middleware.RequirePermission(authzService, userService, service.ResourceOrders, service.ActionWrite),
		orderAdminHandler.UpdateStatus)
	authed.PATCH("/admin/orders",
		middleware.RequirePermission(authzService, userService, service.ResourceOrders, service.ActionWrite),
		orderAdminHandler.UpdateStatusBatch)
	authed.POST("/admin/orders/:id/memo",
		middleware.RequirePermission(authzService, userService, service.ResourceOrderMemo, service.ActionWrite),
		orderAdminHandler.UpdateMemo)

	log.Printf("Starting storefront API on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
