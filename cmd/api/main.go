package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/core/config"
	"nearzy/internal/core/httpclient"
	"nearzy/internal/core/logger"
	"nearzy/internal/core/money"
	"nearzy/internal/core/server"
	"nearzy/internal/core/telemetry"
	authadapter "nearzy/internal/features/auth/adapters"
	auth "nearzy/internal/features/auth/domain"
	authhandler "nearzy/internal/features/auth/handler"
	authservice "nearzy/internal/features/auth/service"
	cartadapter "nearzy/internal/features/cart/adapters"
	carthandler "nearzy/internal/features/cart/handler"
	cartservice "nearzy/internal/features/cart/service"
	catalogadapter "nearzy/internal/features/catalog/adapters"
	cataloghandler "nearzy/internal/features/catalog/handler"
	catalogservice "nearzy/internal/features/catalog/service"
	dashboardadapter "nearzy/internal/features/dashboard/adapters"
	dashboardhandler "nearzy/internal/features/dashboard/handler"
	dashboardservice "nearzy/internal/features/dashboard/service"
	navigationhandler "nearzy/internal/features/navigation/handler"
	orderadapter "nearzy/internal/features/orders/adapters"
	orderhandler "nearzy/internal/features/orders/handler"
	orderservice "nearzy/internal/features/orders/service"
	promotionadapter "nearzy/internal/features/promotions/adapters"
	promotionhandler "nearzy/internal/features/promotions/handler"
	promotionservice "nearzy/internal/features/promotions/service"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Nearzy Storefront API
// @version 1.0
// @description Quick-commerce grocery storefront: catalog, cart, checkout, order tracking and role dashboards.
// @contact.name API Support
// @contact.email support@nearzy.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, "nearzy", cfg.TracingEnabled)
	if err != nil {
		l.Fatal("Failed to init tracing", zap.Error(err))
	}

	// Session store and health check
	store, err := cache.NewFromURL(cfg.Session.RedisURL)
	if err != nil {
		l.Fatal("Failed to create session store", zap.Error(err))
	}
	if err := store.Ping(ctx); err != nil {
		l.Fatal("Session store health check failed", zap.Error(err))
	}
	l.Info("Session store ready", zap.Bool("redis", cfg.Session.RedisURL != ""))

	// Catalog
	catalogSource, err := catalogadapter.NewStaticCatalog()
	if err != nil {
		l.Fatal("Failed to load catalog", zap.Error(err))
	}
	catalogSvc := catalogservice.NewCatalogService(catalogSource)
	catalogHdl := cataloghandler.NewCatalogHandler(catalogSvc)

	// Cart
	cartSvc := cartservice.NewCartService(
		cartadapter.NewCacheCartRepository(store, cfg.Session.TTL),
		cartadapter.NewCatalogLookup(catalogSvc),
		money.NewFormatter(cfg.Locale),
	)
	cartHdl := carthandler.NewCartHandler(cartSvc)

	// Orders and simulated fulfilment
	scheduler := orderadapter.NewTickerScheduler()
	orderSvc := orderservice.NewOrderService(
		orderadapter.NewCacheOrderRepository(store, cfg.Session.TTL),
		cartSvc,
		orderadapter.NewSimulatedGateway(cfg.Orders.PaymentDelay),
	)
	progressor := orderservice.NewProgressor(orderSvc, scheduler, cfg.Orders.AdvanceInterval)
	orderHdl := orderhandler.NewOrderHandler(orderSvc, progressor)

	// Auth
	identity := authadapter.NewIdentityToolkitAdapter(
		cfg.Identity.URL,
		cfg.Identity.APIKey,
		httpclient.NewClient(cfg.Identity.Timeout),
	)
	authSvc := authservice.NewAuthService(
		identity,
		authadapter.NewCacheUserStore(store, cfg.Session.TTL),
		authservice.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
	)
	authHdl := authhandler.NewAuthHandler(authSvc)

	stopExpiry := scheduler.Every(cfg.Session.TTL, func() {
		if n := authSvc.Sessions().Expire(cfg.Session.TTL); n > 0 {
			l.Info("Expired idle sessions",
				zap.Int("count", n),
				zap.Int("live", authSvc.Sessions().Len()),
			)
		}
		if sweeper, ok := store.(cache.Sweeper); ok {
			if n := sweeper.Sweep(); n > 0 {
				l.Debug("Swept expired store entries", zap.Int("count", n))
			}
		}
	})

	// Dashboards, promotion and navigation
	dashboardSource, err := dashboardadapter.NewStaticDashboard()
	if err != nil {
		l.Fatal("Failed to load dashboard data", zap.Error(err))
	}
	dashboardHdl := dashboardhandler.NewDashboardHandler(
		dashboardservice.NewDashboardService(dashboardSource, catalogSvc),
	)
	promotionHdl := promotionhandler.NewPromotionHandler(
		promotionservice.NewPromotionService(promotionadapter.NewCachePromotionRepository(store)),
	)
	navigationHdl := navigationhandler.NewNavigationHandler(cartSvc)

	srv := server.New(cfg)
	app := srv.App
	app.Use(authhandler.Authenticate(authSvc))

	// Register Routes
	app.Get("/products", catalogHdl.ListProducts)
	app.Get("/products/:id", catalogHdl.GetProduct)
	app.Get("/categories", catalogHdl.ListCategories)
	app.Get("/stores", catalogHdl.ListStores)
	app.Get("/brands", catalogHdl.ListBrands)

	app.Get("/cart", cartHdl.GetCart)
	app.Delete("/cart", cartHdl.ClearCart)
	app.Put("/cart/items/:productId", cartHdl.SetQuantity)
	app.Delete("/cart/items/:productId", cartHdl.RemoveItem)
	app.Post("/cart/coupon", cartHdl.ApplyCoupon)
	app.Delete("/cart/coupon", cartHdl.RemoveCoupon)

	app.Post("/checkout", orderHdl.Checkout)
	app.Post("/payments", orderHdl.Pay)
	app.Get("/orders/current", orderHdl.GetCurrentOrder)
	app.Get("/orders/:id", orderHdl.GetOrder)
	app.Post("/orders/:id/advance", orderHdl.AdvanceOrder)
	app.Delete("/orders/:id/tracking", orderHdl.StopTracking)

	app.Post("/auth/login", authHdl.Login)
	app.Post("/auth/signup", authHdl.SignUp)
	app.Post("/auth/phone", authHdl.StartPhone)
	app.Post("/auth/phone/confirm", authHdl.ConfirmPhone)
	app.Post("/auth/password-reset", authHdl.ResetPassword)
	app.Post("/auth/logout", authHdl.Logout)
	app.Get("/auth/me", authHdl.Me)

	app.Get("/screens/:target", navigationHdl.GetScreen)

	app.Get("/promotion", promotionHdl.GetPromotion)
	app.Post("/promotion", authhandler.RequireRole(auth.RoleAdmin), promotionHdl.SetPromotion)
	app.Delete("/promotion", authhandler.RequireRole(auth.RoleAdmin), promotionHdl.RemovePromotion)

	app.Get("/admin/dashboard", authhandler.RequireRole(auth.RoleAdmin), dashboardHdl.GetAdminDashboard)
	app.Get("/shopkeeper/dashboard", authhandler.RequireRole(auth.RoleShopkeeper), dashboardHdl.GetShopkeeperDashboard)

	go func() {
		if err := srv.Run(); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	l.Info("Shutting down", zap.String("signal", sig.String()))

	stopExpiry()
	progressor.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		l.Error("Tracing shutdown failed", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		l.Error("Session store close failed", zap.Error(err))
	}
}
