package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hut/internal/config"
	"hut/internal/domain"
	"hut/internal/middleware"
	"hut/internal/modules/admin"
	"hut/internal/modules/auth"
	"hut/internal/modules/booking"
	"hut/internal/modules/catalog"
	"hut/internal/modules/fraud"
	"hut/internal/modules/notification"
	"hut/internal/modules/payment"
	"hut/internal/modules/realtime"
	"hut/internal/modules/wallet"
	"hut/internal/obs"
	jwtsvc "hut/internal/pkg/jwt"
	"hut/internal/pkg/response"
	"hut/internal/store"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.AppEnv)

	persister, err := store.OpenPersister(cfg, logger)
	if err != nil {
		logger.Error("store init failed", "error", err)
		os.Exit(1)
	}
	st := store.New(persister, logger)
	if err := st.Do(ctx, func(_ context.Context, doc *domain.Document) error {
		if cfg.PlatformBankAccount != "" {
			doc.Platform.BankAccount = cfg.PlatformBankAccount
		}
		return nil
	}); err != nil {
		logger.Error("store load failed", "error", err)
		os.Exit(1)
	}

	provider, err := payment.New(cfg.PaymentProvider)
	if err != nil {
		logger.Error("payment provider init failed", "error", err)
		os.Exit(1)
	}
	guarded := payment.NewGuarded(provider, cfg.PaymentTimeout, cfg.PaymentBreakerThreshold, logger)

	scorer := fraud.NewScorer(fraud.Config{
		BlockThreshold:   cfg.FraudBlockThreshold,
		ReviewThreshold:  cfg.FraudReviewThreshold,
		VelocityWindow:   cfg.FraudVelocityWindow,
		VelocityMaxCount: cfg.FraudVelocityMax,
		HighValue:        cfg.FraudHighValue,
	})
	hub := realtime.NewHub(logger)
	notifs := notification.NewService()

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(st, j, cfg.MinPasswordLength, logger))
	catalogHandler := catalog.NewHandler(catalog.NewService(st))
	bookingHandler := booking.NewHandler(
		booking.NewService(st, guarded, scorer, notifs, hub, cfg.MinServiceFee, logger),
	)
	walletHandler := wallet.NewHandler(wallet.NewService(st))
	adminHandler := admin.NewHandler(admin.NewService(st, cfg.MinPasswordLength, logger))
	realtimeHandler := realtime.NewHandler(hub)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.ErrorLogger(logger))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "paymentBreakerOpen": guarded.Tripped()})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		realtimeHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			walletHandler.RegisterRoutes(protected)
			adminHandler.RegisterRoutes(protected)
		}
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreBackend, "payment_provider", guarded.Name())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}
