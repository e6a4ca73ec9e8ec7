package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mkamanga/sokoni-backend/internal/config"
	"github.com/mkamanga/sokoni-backend/internal/mail"
	"github.com/mkamanga/sokoni-backend/internal/modules/buyer"
	"github.com/mkamanga/sokoni-backend/internal/modules/cart"
	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
	"github.com/mkamanga/sokoni-backend/internal/modules/checkout"
	"github.com/mkamanga/sokoni-backend/internal/modules/inventory"
	"github.com/mkamanga/sokoni-backend/internal/modules/notification"
	"github.com/mkamanga/sokoni-backend/internal/modules/order"
	"github.com/mkamanga/sokoni-backend/internal/modules/shop"
	"github.com/mkamanga/sokoni-backend/internal/obs"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := obs.NewLogger(cfg.Development)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return err
	}
	logger.Info("connected to postgres")

	if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return err
	}
	logger.Info("migrations applied")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// ── Identity & Shops ────────────────────────────────────
	buyerRepo := buyer.NewPostgresRepository(db)
	buyerService := buyer.NewService(buyerRepo)
	buyer.NewHandler(buyerService).RegisterRoutes(router)

	shopRepo := shop.NewPostgresRepository(db)
	shopService := shop.NewService(shopRepo)
	shop.NewHandler(shopService).RegisterRoutes(router)

	// ── Catalog & Inventory ─────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	// ── Cart ────────────────────────────────────────────────
	cartRepo := cart.NewPostgresRepository(db)
	cartCache := cart.NewRedisCache(rdb, cfg.CartCacheTTL)
	cartService := cart.NewService(cartRepo, cartCache, catalogService, logger)
	cart.NewHandler(cartService).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Notifications ───────────────────────────────────────
	notificationRepo := notification.NewPostgresRepository(db)
	dispatcher := notification.NewDispatcher(notificationRepo, logger,
		cfg.DispatchBuffer, cfg.DispatchMaxAttempts, cfg.DispatchRetryDelay)
	dispatcher.Start()
	notificationService := notification.NewService(notificationRepo)
	notification.NewHandler(notificationService).RegisterRoutes(router)

	// ── Checkout ────────────────────────────────────────────
	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		mailer = mail.NewNoopMailer(logger)
	}
	checkoutService := checkout.NewService(checkout.Deps{
		Buyers:     buyerRepo,
		Carts:      cartService,
		Catalog:    catalogService,
		Stock:      inventoryService,
		Orders:     orderRepo,
		Shops:      shopRepo,
		Dispatcher: dispatcher,
		Mailer:     mailer,
		Logger:     logger,
	})
	checkout.NewHandler(checkoutService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	// Drain in-flight receipts and queued sold-out events before exit.
	checkoutService.Close()
	dispatcher.Close()
	return nil
}

func runMigrations(databaseURL, path string) error {
	m, err := migrate.New("file://"+path, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
