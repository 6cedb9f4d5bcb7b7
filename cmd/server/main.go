package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tentative-route-service/internal/adapters/cache"
	"tentative-route-service/internal/adapters/distance"
	"tentative-route-service/internal/adapters/registry"
	"tentative-route-service/internal/adapters/repositories"
	"tentative-route-service/internal/api"
	"tentative-route-service/internal/config"
	"tentative-route-service/internal/platform/db"
	"tentative-route-service/internal/platform/logger"
	"tentative-route-service/internal/ports"
	"tentative-route-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (registry, routing oracle, cache) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()
	log := logger.Setup()
	if envErr != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var conn *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("database unavailable")
		}
		defer conn.Close()
	}

	depots, err := buildRegistry(cfg, conn, log)
	if err != nil {
		log.WithError(err).Fatal("depot registry setup failed")
	}

	oracle, closeOracle, err := buildOracle(ctx, cfg, conn, log)
	if err != nil {
		log.WithError(err).Fatal("routing oracle setup failed")
	}
	defer closeOracle()

	planner := services.NewPlannerFromPorts(depots, oracle, cfg.OracleTimeout, services.PlannerConfig{
		MaxNeighbors:       cfg.PlanMaxNeighbors,
		MaxConcurrentCalls: cfg.PlanMaxConcurrency,
		Timeout:            cfg.PlanTimeout,
	})

	router := api.NewRouter(api.Dependencies{
		Planner:  planner,
		Oracle:   services.NewDistanceOracleClient(oracle, cfg.OracleTimeout),
		Registry: depots,
	})

	// Write timeout leaves room for a full variant search on a cold cache.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.PlanTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":   srv.Addr,
		"oracle": cfg.OracleProvider,
		"cache":  cfg.OracleCache,
	}).Info("Server listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("Server stopped")
}

// buildRegistry prefers a remote registry, then Postgres, then the JSON seed.
func buildRegistry(cfg config.Config, conn *sql.DB, log *logrus.Logger) (ports.DepotRegistry, error) {
	switch {
	case cfg.RegistryURL != "":
		log.WithField("url", cfg.RegistryURL).Info("using remote depot registry")
		return registry.NewHTTPDepotRegistry(cfg.RegistryURL, cfg.OracleTimeout)
	case conn != nil:
		log.Info("using postgres depot registry")
		return repositories.NewSQLDepotRegistry(conn), nil
	default:
		log.WithField("path", cfg.DepotSeedPath).Info("using in-memory depot registry")
		return repositories.NewMemoryDepotRegistryFromJSON(cfg.DepotSeedPath)
	}
}

func buildOracle(
	ctx context.Context,
	cfg config.Config,
	conn *sql.DB,
	log *logrus.Logger,
) (ports.RoutingOracle, func(), error) {
	noop := func() {}

	var oracle ports.RoutingOracle
	var err error
	switch cfg.OracleProvider {
	case config.ProviderORS:
		oracle, err = distance.NewORSOracle(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.ORSProfile, cfg.OracleTimeout)
	default:
		oracle, err = distance.NewOSRMOracle(cfg.OSRMBaseURL, cfg.OSRMProfile, cfg.OracleTimeout)
	}
	if err != nil {
		return nil, noop, err
	}

	switch cfg.OracleCache {
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			// The cache is optional; keep serving from the oracle.
			log.WithError(err).Warn("redis unreachable, route cache will miss until it recovers")
		}
		return distance.NewCachedOracle(oracle, cache.NewRedisRouteCache(client, cfg.RouteCacheTTL)),
			func() { _ = client.Close() }, nil
	case config.CachePostgres:
		if conn == nil {
			return nil, noop, fmt.Errorf("route cache %q requires DATABASE_URL", cfg.OracleCache)
		}
		return distance.NewCachedOracle(oracle, cache.NewSQLRouteCache(conn, cfg.RouteCacheTTL)), noop, nil
	default:
		return oracle, noop, nil
	}
}
