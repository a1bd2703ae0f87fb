package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/google/uuid"
	"github.com/wichananm65/fyx-store/internal/address"
	"github.com/wichananm65/fyx-store/internal/ai"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/category"
	"github.com/wichananm65/fyx-store/internal/config"
	"github.com/wichananm65/fyx-store/internal/content"
	"github.com/wichananm65/fyx-store/internal/customer"
	"github.com/wichananm65/fyx-store/internal/events"
	"github.com/wichananm65/fyx-store/internal/favorite"
	"github.com/wichananm65/fyx-store/internal/kvstore"
	"github.com/wichananm65/fyx-store/internal/logging"
	"github.com/wichananm65/fyx-store/internal/metrics"
	"github.com/wichananm65/fyx-store/internal/order"
	"github.com/wichananm65/fyx-store/internal/product"
	"github.com/wichananm65/fyx-store/internal/promotion"
	"github.com/wichananm65/fyx-store/internal/settings"
	"github.com/wichananm65/fyx-store/internal/storefront"
	"github.com/wichananm65/fyx-store/internal/user"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)
	if cfg.GeneratedSecret {
		logger.Warn("JWT_SECRET not set, using a random secret; tokens stop working on restart")
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store unavailable", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	kv := metrics.InstrumentStore(store)

	var publisher events.Publisher = events.LogPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
	}
	defer publisher.Close()

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	app := fiber.New(fiber.Config{AppName: "fyx-store"})
	setupCORS(app)
	app.Use(requestLogger(logger))

	if err := wire(ctx, app, cfg, kv, publisher); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr, "store", cfg.Store)
		if err := app.Listen(cfg.Addr); err != nil {
			logger.Error("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

// wire builds every service on the shared store and mounts the routes:
// public first, then everything behind the session token, then the admin
// group.
func wire(ctx context.Context, app *fiber.App, cfg config.Config, kv kvstore.Store, publisher events.Publisher) error {
	productRepo, err := product.NewStoreRepository(ctx, kv, product.Seed())
	if err != nil {
		return fmt.Errorf("products: %w", err)
	}
	products := product.NewService(productRepo)

	categoryRepo, err := category.NewStoreRepository(ctx, kv, category.Seed())
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	categories := category.NewService(categoryRepo)

	customers, err := customer.NewService(ctx, kv, customer.Seed())
	if err != nil {
		return fmt.Errorf("customers: %w", err)
	}
	orderRepo, err := order.NewStoreRepository(ctx, kv)
	if err != nil {
		return fmt.Errorf("orders: %w", err)
	}
	orders := order.NewService(orderRepo, customers, publisher, cfg.OrderTopic)

	siteSettings, err := settings.NewService(ctx, kv)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	promotions, err := promotion.NewService(ctx, kv)
	if err != nil {
		return fmt.Errorf("promotions: %w", err)
	}
	posts, err := content.NewService(ctx, kv)
	if err != nil {
		return fmt.Errorf("content: %w", err)
	}
	users := user.NewService(user.NewStoreRepository(kv))

	manager := storefront.NewManager(storefront.Config{
		Store:    kv,
		Provider: auth.NewFixedProvider(cfg.OTPCode, cfg.OAuthDelay),
		Users:    users,
		Catalog:  products,
		Orders:   orders,
		Settings: siteSettings,
		UPIPayee: cfg.UPIPayee,
	})
	go manager.RunSweeper(ctx, cfg.SessionSweep, cfg.SessionIdle)

	if cfg.GeminiAPIKey == "" {
		logging.FromContext(ctx).Warn("GEMINI_API_KEY not set, AI tools answer with fallback text")
	}
	assistant := ai.NewAdapter(ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.AITimeout), cfg.GeminiModel, cfg.GeminiChatModel)
	storeContext := func() string {
		s := siteSettings.Get()
		return fmt.Sprintf("%s sells %s. Shipping is %v rupees. Support: %s",
			s.SiteName, strings.Join(categories.List(0), ", "), s.ShippingFee, s.SupportEmail)
	}

	if cfg.AdminPasswordHash == "" {
		logging.FromContext(ctx).Warn("FYX_ADMIN_PASSWORD_HASH not set, admin login is disabled")
	}

	productHandler := product.NewHandler(products)
	categoryHandler := category.NewHandler(categories)
	promotionHandler := promotion.NewHandler(promotions, manager)
	settingsHandler := settings.NewHandler(siteSettings, kv)
	contentHandler := content.NewHandler(posts, manager)
	authHandler := auth.NewHandler([]byte(cfg.JWTSecret), cfg.AdminPasswordHash)
	storefrontHandler := storefront.NewHandler(manager)
	cartHandler := cart.NewHandler(manager)
	favoriteHandler := favorite.NewHandler(manager, products)
	userHandler := user.NewHandler(users, manager)
	orderHandler := order.NewHandler(orders, manager)
	addressHandler := address.NewHandler(address.NewService(address.NewFakeGeocoder()))
	aiHandler := ai.NewHandler(assistant, orders, storeContext)
	customerHandler := customer.NewHandler(customers, orders)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	authHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	promotionHandler.RegisterPublicRoutes(app)
	settingsHandler.RegisterPublicRoutes(app)
	contentHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	}))

	storefrontHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)
	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	promotionHandler.RegisterProtectedRoutes(app)
	contentHandler.RegisterProtectedRoutes(app)
	aiHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", auth.RequireAdmin())
	productHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	promotionHandler.RegisterAdminRoutes(admin)
	settingsHandler.RegisterAdminRoutes(admin)
	contentHandler.RegisterAdminRoutes(admin)
	userHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	aiHandler.RegisterAdminRoutes(admin)
	customerHandler.RegisterAdminRoutes(admin)
	return nil
}

// openStore picks the blob store named by FYX_STORE. The returned func
// releases it.
func openStore(ctx context.Context, cfg config.Config) (kvstore.Store, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		return kvstore.NewMemoryStore(), func() {}, nil
	case config.StoreSQLite:
		s, err := kvstore.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.StorePostgres:
		db, err := kvstore.OpenPostgres(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		s := kvstore.NewPostgresStore(db)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// requestLogger puts a per-request logger into the user context so handlers
// and services can reach it through logging.FromContext.
func requestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		l := base.With("request_id", uuid.NewString(), "method", c.Method(), "path", c.Path())
		c.SetUserContext(logging.IntoContext(c.UserContext(), l))
		err := c.Next()
		l.Debug("request", "status", c.Response().StatusCode(), "duration", time.Since(start))
		return err
	}
}
