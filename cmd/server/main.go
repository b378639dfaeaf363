package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rideshare/internal/app"
	"rideshare/internal/config"
	"rideshare/internal/events"
	"rideshare/internal/handler"
	"rideshare/internal/logging"
	"rideshare/internal/middleware"
	internalRedis "rideshare/internal/redis"
	"rideshare/internal/repository"
	"rideshare/internal/repository/memory"
	"rideshare/internal/repository/postgres"
	"rideshare/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
			nrApp = nil
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	var db *sql.DB
	if cfg.Storage.Backend == config.BackendPostgres {
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("connected to PostgreSQL", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

		if cfg.Storage.RunMigrations {
			if err := app.MigrateUp(db); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
			logger.Info("migrations applied")
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info("publishing change events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	server := wireServer(db, redisClient, nrApp, publisher, logger, cfg)

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if nrApp != nil {
		nrApp.Shutdown(cfg.Server.ShutdownTimeout)
	}

	logger.Info("server exited")
}

// stores groups the repositories of one storage backend.
type stores struct {
	riders   repository.RiderRepository
	drivers  repository.DriverRepository
	rides    repository.RideRepository
	profiles repository.ProfileRepository
}

// newStores picks the record backend from db and the profile backend from
// redisClient; a nil argument selects the in-memory store.
func newStores(db *sql.DB, redisClient *redis.Client) stores {
	var s stores
	if db != nil {
		s.riders = postgres.NewRiderRepository(db)
		s.drivers = postgres.NewDriverRepository(db)
		s.rides = postgres.NewRideRepository(db)
	} else {
		s.riders = memory.NewRiderStore()
		s.drivers = memory.NewDriverStore()
		s.rides = memory.NewRideStore()
	}

	if redisClient != nil {
		s.profiles = internalRedis.NewProfileStore(redisClient)
	} else {
		s.profiles = memory.NewProfileStore()
	}
	return s
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	db *sql.DB,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	publisher events.Publisher,
	logger *zap.Logger,
	cfg *config.Config,
) *http.Server {
	st := newStores(db, redisClient)

	var rideOpts []service.RideServiceOption
	var responseCache middleware.ResponseCache
	if redisClient != nil {
		rideOpts = append(rideOpts, service.WithLockStore(internalRedis.NewLockStore(redisClient), cfg.Redis.LockTTL))
		responseCache = middleware.NewRedisResponseCache(redisClient)
	}

	// Initialize services.
	riderService := service.NewRiderService(st.riders, publisher, logger)
	driverService := service.NewDriverService(st.drivers, publisher, logger)
	rideService := service.NewRideService(st.rides, st.drivers, publisher, logger, rideOpts...)
	profileService := service.NewProfileService(st.profiles, logger)

	router := app.NewRouter(app.RouterDeps{
		RiderHandler:   handler.NewRiderHandler(riderService),
		DriverHandler:  handler.NewDriverHandler(driverService),
		RideHandler:    handler.NewRideHandler(rideService),
		ProfileHandler: handler.NewProfileHandler(profileService),
		Caller: middleware.CallerConfig{
			JWTSecret: cfg.Auth.JWTSecret,
			Header:    cfg.Auth.CallerHeader,
		},
		ResponseCache: responseCache,
		NewRelicApp:   nrApp,
		Logger:        logger,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
