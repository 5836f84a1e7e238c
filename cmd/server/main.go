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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcatalog "github.com/vintagecrib/backend/internal/application/catalog"
	appcrosspost "github.com/vintagecrib/backend/internal/application/crosspost"
	appsub "github.com/vintagecrib/backend/internal/application/subscription"
	"github.com/vintagecrib/backend/internal/domain/crosspost"
	domainsub "github.com/vintagecrib/backend/internal/domain/subscription"
	"github.com/vintagecrib/backend/internal/infrastructure/auth"
	"github.com/vintagecrib/backend/internal/infrastructure/cache"
	"github.com/vintagecrib/backend/internal/infrastructure/config"
	"github.com/vintagecrib/backend/internal/infrastructure/logger"
	"github.com/vintagecrib/backend/internal/infrastructure/marketplace"
	"github.com/vintagecrib/backend/internal/infrastructure/persistence"
	"github.com/vintagecrib/backend/internal/interfaces/http/handler"
	"github.com/vintagecrib/backend/internal/interfaces/http/middleware"
	"github.com/vintagecrib/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting VintageCrib backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database, with GORM logging routed through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	recordRepo := persistence.NewGormCrossPostRecordRepository(db.DB)

	// Optional Redis read-through cache in front of subscription lookups
	var subs domainsub.SubscriptionRepository = subscriptionRepo
	if cfg.Entitlement.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		subs = cache.NewSubscriptionCache(subscriptionRepo, redisClient,
			cache.WithSubscriptionTTL(cfg.Entitlement.TTL),
			cache.WithSubscriptionCacheLogger(log),
		)
		log.Info("Subscription cache enabled", zap.String("redis", cfg.Redis.Addr()))
	}

	// Marketplace publishers
	publishers := []crosspost.MarketplacePublisher{
		marketplace.NewPoshmarkAdapter(),
		marketplace.NewDepopAdapter(),
		marketplace.NewMercariAdapter(),
	}
	if cfg.Ebay.OAuthToken != "" {
		ebayAdapter, err := marketplace.NewEbayAdapter(buildEbayConfig(&cfg.Ebay))
		if err != nil {
			log.Fatal("Failed to configure eBay adapter", zap.Error(err))
		}
		publishers = append(publishers, ebayAdapter)
	} else {
		// Without a token every eBay publish fails and lands in the
		// retry ledger, so the server still comes up.
		log.Warn("eBay OAuth token not configured, eBay publishing disabled")
	}
	registry := marketplace.NewRegistry(publishers...)

	// Application services
	gate := appsub.NewGate(subs, domainsub.DefaultEntitlements(), log,
		appsub.GateConfig{FailOpen: cfg.Gate.FailOpen})
	engine := appcrosspost.NewEngine(itemRepo, sellerRepo, recordRepo, registry, gate, log,
		appcrosspost.EngineConfig{PublishTimeout: cfg.Engine.PublishTimeout})
	catalogService := appcatalog.NewService(itemRepo, gate, log)
	tokens := auth.NewTokenService(cfg.JWT)

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	ginEngine := gin.New()
	if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	ginEngine.Use(middleware.RequestID())
	ginEngine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))
	ginEngine.Use(logger.GinMiddleware(log))
	ginEngine.Use(logger.Recovery(log))
	ginEngine.Use(middleware.CORSWithConfig(corsCfg))

	handler.NewSystemHandler(db, version).RegisterRoutes(ginEngine)

	ginEngine.Use(middleware.JWTAuth(tokens))
	router.NewRouter(ginEngine).
		Register(handler.NewItemHandler(catalogService)).
		Register(handler.NewCrossPostHandler(engine)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildEbayConfig maps the app configuration onto the adapter's config
func buildEbayConfig(cfg *config.EbayConfig) *marketplace.EbayConfig {
	var ebayCfg *marketplace.EbayConfig
	if cfg.Sandbox {
		ebayCfg = marketplace.NewSandboxEbayConfig(cfg.OAuthToken)
	} else {
		ebayCfg = marketplace.NewEbayConfig(cfg.OAuthToken)
	}
	if cfg.MarketplaceID != "" {
		ebayCfg.MarketplaceID = cfg.MarketplaceID
	}
	if cfg.TimeoutSeconds > 0 {
		ebayCfg.TimeoutSeconds = cfg.TimeoutSeconds
	}
	ebayCfg.FulfillmentPolicyID = cfg.FulfillmentPolicyID
	ebayCfg.PaymentPolicyID = cfg.PaymentPolicyID
	ebayCfg.ReturnPolicyID = cfg.ReturnPolicyID
	ebayCfg.MerchantLocationKey = cfg.MerchantLocationKey
	return ebayCfg
}
