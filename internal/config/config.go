package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting of the service, read from the environment.
type Config struct {
	Port          string
	DatabaseURL   string
	RegistryURL   string
	DepotSeedPath string

	OracleProvider string
	OSRMBaseURL    string
	OSRMProfile    string
	ORSAPIKey      string
	ORSBaseURL     string
	ORSProfile     string
	OracleTimeout  time.Duration

	OracleCache   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RouteCacheTTL time.Duration

	PlanTimeout        time.Duration
	PlanMaxNeighbors   int
	PlanMaxConcurrency int
}

const (
	ProviderOSRM = "osrm"
	ProviderORS  = "ors"

	CacheNone     = "none"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	var err error

	cfg.Port = Get("PORT", "8080")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RegistryURL = os.Getenv("REGISTRY_URL")
	cfg.DepotSeedPath = Get("DEPOT_SEED_PATH", "data/seeds/depots.json")

	cfg.OracleProvider = strings.ToLower(Get("ORACLE_PROVIDER", ProviderOSRM))
	cfg.OSRMBaseURL = Get("OSRM_BASE_URL", "http://localhost:5000")
	cfg.OSRMProfile = Get("OSRM_PROFILE", "driving")
	cfg.ORSAPIKey = os.Getenv("ORS_API_KEY")
	cfg.ORSBaseURL = Get("ORS_BASE_URL", "https://api.openrouteservice.org")
	cfg.ORSProfile = Get("ORS_PROFILE", "driving-hgv")
	cfg.OracleCache = strings.ToLower(Get("ORACLE_CACHE", CacheNone))
	cfg.RedisAddr = Get("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if cfg.OracleTimeout, err = GetDuration("ORACLE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RouteCacheTTL, err = GetDuration("ROUTE_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.PlanTimeout, err = GetDuration("PLAN_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = GetInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.PlanMaxNeighbors, err = GetInt("PLAN_MAX_NEIGHBORS", 3); err != nil {
		return Config{}, err
	}
	if cfg.PlanMaxConcurrency, err = GetInt("PLAN_MAX_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.OracleProvider {
	case ProviderOSRM:
	case ProviderORS:
		if strings.TrimSpace(c.ORSAPIKey) == "" {
			return fmt.Errorf("config: ORS_API_KEY is required when ORACLE_PROVIDER=%s", ProviderORS)
		}
	default:
		return fmt.Errorf("config: unknown ORACLE_PROVIDER %q", c.OracleProvider)
	}

	switch c.OracleCache {
	case CacheNone, CacheRedis:
	case CachePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when ORACLE_CACHE=%s", CachePostgres)
		}
	default:
		return fmt.Errorf("config: unknown ORACLE_CACHE %q", c.OracleCache)
	}

	if c.PlanMaxNeighbors < 0 {
		return fmt.Errorf("config: PLAN_MAX_NEIGHBORS must not be negative, got %d", c.PlanMaxNeighbors)
	}
	if c.PlanMaxConcurrency < 1 {
		return fmt.Errorf("config: PLAN_MAX_CONCURRENCY must be at least 1, got %d", c.PlanMaxConcurrency)
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: parse int %q: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: parse duration %q: %w", key, v, err)
	}
	return d, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: parse bool %q: %w", key, v, err)
	}
	return b, nil
}
