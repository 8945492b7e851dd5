package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"salonagenda/internal/config"
	"salonagenda/internal/database"
	"salonagenda/internal/middleware"
	"salonagenda/internal/modules/booking"
	"salonagenda/internal/modules/catalog"
	jwtsvc "salonagenda/internal/pkg/jwt"
	"salonagenda/internal/pkg/logging"
	"salonagenda/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	drafts, closeDrafts, err := newDraftStore(cfg, logger)
	if err != nil {
		logger.Fatal("draft store failed", zap.Error(err))
	}
	defer closeDrafts()

	slots, err := booking.ParseSlotCatalog(cfg.SlotTimes)
	if err != nil {
		logger.Fatal("slot catalog", zap.Error(err))
	}

	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	machine := booking.NewMachine(booking.NewAvailabilityFilter(slots, cfg.LastDate))
	bookingService := booking.NewService(
		appointmentRepo,
		serviceRepo,
		drafts,
		machine,
		booking.NewPriceResolver(),
		booking.NewSystemClock(cfg.Location),
		booking.WithLogger(logger.Named("booking")),
		booking.WithMetrics(booking.NewMetrics(prometheus.DefaultRegisterer)),
		booking.WithDraftTTL(cfg.SessionTTL),
	)

	tokens := jwtsvc.New(cfg.SessionSecret, cfg.SessionTTL)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestLogger(logger.Named("http")),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute, logger).Middleware())
	{
		catalog.NewHandler(catalog.NewService(serviceRepo)).RegisterRoutes(v1)
		booking.NewHandler(bookingService, tokens).RegisterRoutes(v1)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newDraftStore(cfg *config.Config, logger *zap.Logger) (booking.DraftStore, func(), error) {
	if cfg.DraftStore != config.DraftStoreRedis {
		return booking.NewMemoryDraftStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logger.Info("draft store: redis", zap.String("addr", cfg.RedisAddr))
	return booking.NewRedisDraftStore(client), func() { _ = client.Close() }, nil
}
