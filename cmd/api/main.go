package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/beautyhub/shop_api/internal/cache"
	"github.com/beautyhub/shop_api/internal/config"
	"github.com/beautyhub/shop_api/internal/database"
	"github.com/beautyhub/shop_api/internal/handler"
	"github.com/beautyhub/shop_api/internal/middleware"
	"github.com/beautyhub/shop_api/internal/repository"
	"github.com/beautyhub/shop_api/internal/service"
	"github.com/beautyhub/shop_api/pkg/whatsapp"
)

// main is the application entrypoint for the BeautyHub storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting shop api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize the cart mirror
	cartCache := cache.NewCartCache(redisClient, cfg.Cart.MirrorTTL)

	// 4. Initialize the notification gateway client
	waClient := whatsapp.NewClient(cfg.WhatsApp.GatewayURL, cfg.WhatsApp.APIKey, cfg.WhatsApp.Recipient, cfg.WhatsApp.Timeout)
	if waClient.Enabled() {
		log.Info().Msg("order notifications enabled")
	} else {
		log.Warn().Msg("no notification gateway configured - order notifications disabled")
	}

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// 6. Initialize services
	productSvc := service.NewProductService(productRepo)
	cartSvc := service.NewCartService(cartCache, cartRepo, productRepo)
	couponSvc := service.NewCouponService(couponRepo)
	reviewSvc := service.NewReviewService(reviewRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartSvc, couponSvc, waClient, cfg.WhatsApp.Timeout)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db, redisClient),
		Product: handler.NewProductHandler(productSvc, reviewSvc),
		Cart:    handler.NewCartHandler(cartSvc),
		Coupon:  handler.NewCouponHandler(couponSvc),
		Order:   handler.NewOrderHandler(orderSvc),
		Review:  handler.NewReviewHandler(reviewSvc),
	}

	// 8. Initialize middleware
	adminMw := middleware.NewAdminMiddleware(cfg.AdminKey)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SessionMiddleware(cfg.JWTSecret))
	setupRoutes(router, handlers, adminMw)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Coupon  *handler.CouponHandler
	Order   *handler.OrderHandler
	Review  *handler.ReviewHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, adminMw *middleware.AdminMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Storefront routes (guests allowed; session middleware resolves the cart)
	store := router.Group("/v1")
	{
		store.GET("/products/:id", handlers.Product.GetProduct)
		store.GET("/products/:id/reviews", handlers.Product.GetProductReviews)

		store.GET("/cart", handlers.Cart.GetCart)
		store.POST("/cart/items", handlers.Cart.AddItem)
		store.PATCH("/cart/items/:productId", handlers.Cart.UpdateQuantity)
		store.DELETE("/cart/items/:productId", handlers.Cart.RemoveItem)
		store.DELETE("/cart", handlers.Cart.ClearCart)

		store.GET("/coupons/:code", handlers.Coupon.ValidateCoupon)
	}

	// Account routes (sign-in required)
	account := router.Group("/v1")
	account.Use(middleware.RequireAccount())
	{
		account.POST("/checkout", handlers.Order.Checkout)
		account.GET("/orders", handlers.Order.ListOrders)
		account.GET("/orders/:id", handlers.Order.GetOrder)
		account.POST("/products/:id/reviews", handlers.Review.SubmitReview)
	}

	// Admin routes (static admin key)
	admin := router.Group("/v1/admin")
	admin.Use(adminMw.Handle())
	{
		admin.GET("/orders", handlers.Order.ListOrdersAdmin)
		admin.GET("/orders/stats", handlers.Order.GetOrderStats)
		admin.GET("/orders/:id", handlers.Order.GetOrderAdmin)
		admin.PATCH("/orders/:id/status", handlers.Order.UpdateOrderStatus)

		admin.GET("/coupons", handlers.Coupon.ListCoupons)
		admin.POST("/coupons", handlers.Coupon.CreateCoupon)
		admin.DELETE("/coupons/:code", handlers.Coupon.DeleteCoupon)

		admin.GET("/reviews", handlers.Review.ListModeration)
		admin.POST("/reviews/:id/approve", handlers.Review.ApproveReview)
		admin.DELETE("/reviews/:id", handlers.Review.DeleteReview)
	}
}

func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
