// cmd/storefront-api/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront-platform/internal/api"
	updatestatus "storefront-platform/internal/api/orders/update-status"
	"storefront-platform/internal/api/products/notify"
	"storefront-platform/internal/catalog"
	"storefront-platform/internal/common/auth"
	awsclient "storefront-platform/internal/common/aws"
	"storefront-platform/internal/common/config"
	"storefront-platform/internal/common/database"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/observability"
	"storefront-platform/internal/common/storage"
	"storefront-platform/internal/common/validation"
	"storefront-platform/internal/notifications"
	"storefront-platform/internal/promo"
	"storefront-platform/internal/slug"
	"storefront-platform/internal/store"
	"storefront-platform/internal/tenant"
	"storefront-platform/internal/users"

	listnotifications "storefront-platform/internal/api/dashboard/list-notifications"
	marknotificationread "storefront-platform/internal/api/dashboard/mark-notification-read"
	updatewebsite "storefront-platform/internal/api/dashboard/update-website"
	"storefront-platform/internal/api/onboarding/launchpad"
	"storefront-platform/internal/api/onboarding/signup"
	slugavailability "storefront-platform/internal/api/onboarding/slug-availability"
	getstore "storefront-platform/internal/api/storefront/get-store"
	searchproducts "storefront-platform/internal/api/storefront/search-products"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting storefront API...",
		zap.String("environment", cfg.App.Environment),
		zap.String("baseDomain", cfg.Tenant.BaseDomain),
	)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	obs, err := observability.New(cfg.Observability.ServiceName)
	if err != nil {
		zapLog.Fatal("metrics init failed", zap.Error(err))
	}
	tracing, err := observability.NewTracing(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init External Service Clients ---
	fbClient, err := auth.NewFirebaseClient(ctx, cfg.Auth.Firebase.ProjectID, cfg.Auth.Firebase.CredentialsFile)
	if err != nil {
		zapLog.Fatal("firebase auth init failed", zap.Error(err))
	}
	var authn auth.Authenticator = auth.NewFirebaseAuthenticator(fbClient)
	if cfg.Auth.TokenCacheTTL > 0 {
		authn = auth.NewCachedAuthenticator(authn, rdb.Client, time.Duration(cfg.Auth.TokenCacheTTL)*time.Second, log)
	}

	blobs, err := storage.NewGCSStore(ctx, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL,
		cfg.Storage.CacheControl, cfg.Storage.CredentialsFile)
	if err != nil {
		zapLog.Fatal("storage init failed", zap.Error(err))
	}
	defer blobs.Close()

	var mailer notifications.Mailer
	if cfg.Integrations.AWS.SES.Enabled {
		m, err := awsclient.NewSESMailer(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SES.FromEmail)
		if err != nil {
			zapLog.Fatal("ses init failed", zap.Error(err))
		}
		mailer = m
	}
	var events updatestatus.EventPublisher
	if cfg.Integrations.AWS.SNS.Enabled {
		p, err := awsclient.NewSNSPublisher(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SNS.TopicARN)
		if err != nil {
			zapLog.Fatal("sns init failed", zap.Error(err))
		}
		events = p
	}

	// --- Domain services ---
	validator := validation.MustNewValidator(validation.RequestSchemas)
	responder := apperrors.NewErrorHandler(log)

	storeRepo := store.NewRepository(pg.DB)
	lookup := store.NewLookup(storeRepo, storeRepo, log)
	suggester := slug.NewSuggester(storeRepo)
	notificationRepo := notifications.NewRepository(pg.DB)
	notifier := notifications.NewNotifier(notificationRepo, mailer, log)
	allocator := promo.NewAllocator(pg.DB, cfg.Promo.ConfigID, cfg.Promo.TotalSpots, log)
	searcher := catalog.NewSearcher(esClient.Client, cfg.Database.Elasticsearch.ProductIndex)
	userRepo := users.NewRepository(pg.DB)

	// --- Handlers ---
	handlers := api.Handlers{
		UpdateOrderStatus: updatestatus.NewHandler(updatestatus.LoadConfig(cfg), updatestatus.Dependencies{
			DB:        pg.DB,
			Validator: validator,
			Notifier:  notifier,
			Events:    events,
			Metrics:   obs,
			Tracer:    tracing.Tracer(),
			Responder: responder,
		}, log).Handle,
		NotifyProduct: notify.NewHandler(notify.LoadConfig(cfg), pg.DB, rdb.Client, validator, responder, log).Handle,
		Signup: signup.NewHandler(signup.LoadConfig(cfg), pg.DB, storeRepo, suggester, allocator,
			validator, responder, log).Handle,
		SlugAvailability: slugavailability.NewHandler(slugavailability.LoadConfig(), storeRepo, suggester,
			responder, log).Handle,
		Launchpad: launchpad.NewHandler(launchpad.LoadConfig(cfg), storeRepo, userRepo, blobs,
			validator, responder, log).Handle,
		GetStore:       getstore.NewHandler(getstore.LoadConfig(), lookup, responder, log).Handle,
		SearchProducts: searchproducts.NewHandler(searchproducts.LoadConfig(cfg), lookup, searcher, responder, log).Handle,
		ListNotifications: listnotifications.NewHandler(listnotifications.LoadConfig(), notificationRepo,
			responder, log).Handle,
		MarkNotificationRead: marknotificationread.NewHandler(marknotificationread.LoadConfig(), notificationRepo,
			responder, log).Handle,
		UpdateWebsite: updatewebsite.NewHandler(updatewebsite.LoadConfig(), storeRepo, validator, responder, log).Handle,
	}

	router := api.NewRouter(api.RouterConfig{Authenticator: authn, Responder: responder, Logger: log}, handlers)
	resolver := tenant.NewResolver(cfg.Tenant)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      tenant.Middleware(resolver, router, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Health & Metrics Server ---
	ops := &http.Server{Addr: cfg.Server.OpsAddress, Handler: opsMux(pg, rdb, esClient)}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.OpsAddress))
		if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}
	if err := ops.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down ops server", zap.Error(err))
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing traces", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping metrics", zap.Error(err))
	}

	zapLog.Info("Storefront API stopped gracefully")
}

type pinger interface {
	Ping(ctx context.Context) error
}

func opsMux(deps ...pinger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, d := range deps {
			if err := d.Ping(ctx); err != nil {
				writeStatus(w, http.StatusServiceUnavailable, "not ready: "+err.Error())
				return
			}
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
