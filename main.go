package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/auth"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	apperrors "github.com/Harshit-patil56/Land-deals-manager-sub000/common/errors"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/logger"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/middleware"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/config"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/controllers"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/database"
	awspkg "github.com/Harshit-patil56/Land-deals-manager-sub000/pkg/aws"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/repository"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/routes"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "landdeals-bff"

// locationCacheTTL is how long state and district lists stay cached.
const locationCacheTTL = 24 * time.Hour

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Initialize("development")
		logger.Log.Fatal("Failed to load config", zap.Error(err))
	}

	// AWS is optional: without credentials the BFF runs with logs on stdout
	// only, no metrics, no events and no export archive.
	ctx := context.Background()
	awsCfg, awsErr := awspkg.LoadAWSConfig(ctx)

	var shipper *awspkg.LogShipper
	if cfg.CloudWatchEnabled && awsErr == nil {
		shipper, err = awspkg.NewLogShipper(ctx, awsCfg, awspkg.LogsOptions{
			Group:         cfg.CloudWatchLogGroup,
			Stream:        fmt.Sprintf("%s-%d", serviceName, time.Now().Unix()),
			RetentionDays: 30,
			BatchSize:     20,
		})
	}
	if shipper != nil {
		logger.InitializeWithWriter(cfg.Env, shipper)
	} else {
		logger.Initialize(cfg.Env)
	}
	log := logger.Log
	defer log.Sync() //nolint:errcheck
	if err != nil {
		log.Warn("CloudWatch logs disabled (non-fatal)", zap.Error(err))
	}

	var (
		metrics   awspkg.MetricsRecorder
		snsClient awspkg.SNSPublisher
		store     awspkg.ObjectStore
	)
	if awsErr != nil {
		log.Warn("AWS config unavailable, metrics, SNS and export archive disabled", zap.Error(awsErr))
	} else {
		if cfg.CloudWatchEnabled {
			metrics = awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, serviceName)
		}
		if cfg.EventsTopicARN != "" {
			snsClient = awspkg.NewSNSClient(awsCfg, log)
		}
		if cfg.ExportBucket != "" {
			store = awspkg.NewS3Store(awsCfg, cfg.ExportBucket)
		}
	}

	// Sessions live in Redis when configured so every BFF instance sees them.
	var (
		tokenStore    auth.TokenStore = auth.NewMemoryTokenStore()
		locationCache repository.LocationCache
	)
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close() //nolint:errcheck
		tokenStore = auth.NewRedisTokenStore(rdb, cfg.SessionTTL)
		locationCache = repository.NewRedisLocationCache(rdb, locationCacheTTL)
	} else {
		log.Warn("REDIS_URL not set, sessions are kept in memory")
	}

	var auditRepo repository.AuditRepository
	if cfg.AuditEnabled() {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		auditRepo = repository.NewGormAuditRepository(db)
	}

	session := auth.NewSession(tokenStore, log, auth.OnForcedLogout(func(ctx context.Context) {
		if metrics != nil {
			_ = metrics.RecordCount(ctx, awspkg.MetricSessionsForcedOut, nil)
		}
	}))
	client := clients.NewAPIClient(cfg.APIBaseURL, cfg.RequestTimeout,
		clients.WithTokenSource(session),
		clients.WithUnauthorizedHandler(session.HandleUnauthorized),
		clients.WithLogger(log),
	)

	// DI chain
	paymentService := services.NewPaymentService(client.Payments(), auditRepo, snsClient, cfg.EventsTopicARN, metrics, log)
	proofService := services.NewProofService(client.Payments(), payments.NewRenderTracker(), snsClient, cfg.EventsTopicARN, metrics, log)
	ledgerService := services.NewLedgerService(client.Payments(), store, metrics, log)
	dealService := services.NewDealService(client.Deals(), auditRepo, snsClient, cfg.EventsTopicARN, metrics, log)
	locationService := services.NewLocationService(client.Locations(), locationCache, metrics, log)
	sessionService := services.NewSessionService(session, client, log)

	ctrl := routes.Controllers{
		Auth:      controllers.NewAuthController(sessionService, cfg.SessionTTL, cfg.Env == "production"),
		Locations: controllers.NewLocationController(locationService),
		Deals:     controllers.NewDealController(dealService),
		Payments:  controllers.NewPaymentController(paymentService, proofService),
		Ledger:    controllers.NewLedgerController(ledgerService),
		Proxy:     controllers.NewProxyController(client),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	if metrics != nil {
		r.Use(middleware.MetricsMiddleware(metrics, serviceName))
	}
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, ctrl, middleware.RequireSession(session, auth.NewVerifier(cfg.JWTSecret)))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	log.Info("Land deals BFF started",
		zap.String("port", cfg.Port),
		zap.String("backend", client.BaseURL()),
		zap.Bool("audit", auditRepo != nil),
	)
	<-quit
	log.Info("Shutting down land deals BFF...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited cleanly")
}
