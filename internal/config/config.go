package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ecoscope/home-assessment/internal/assessment"
)

type AppConfig struct {
	OpenCageAPIKey        string
	GoogleGeocodingAPIKey string
	NRELAPIKey            string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// CacheTTL is how long weather lookups stay fresh; expiry is lazy.
	CacheTTL time.Duration

	// CacheCoordPrecision is the number of decimal degrees cache keys
	// round coordinates to.
	CacheCoordPrecision int

	// CacheBackend is "memory" or "redis".
	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// WarmLocations get their cache entries refreshed every WarmInterval.
	WarmLocations []string
	WarmInterval  time.Duration

	// Defaults are the financial and sizing assumptions used when the
	// caller supplies nothing.
	Defaults assessment.Defaults

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenCageAPIKey = os.Getenv("OPENCAGE_API_KEY")
	cfg.GoogleGeocodingAPIKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")
	cfg.NRELAPIKey = os.Getenv("NREL_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Cache TTL: default 30 days.
	ttlStr := getenvDefault("CACHE_TTL", "720h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	cfg.CacheCoordPrecision = getenvInt("CACHE_COORD_PRECISION", 2)

	cfg.CacheBackend = getenvDefault("CACHE_BACKEND", "memory")
	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q: expected memory or redis", cfg.CacheBackend)
	}
	cfg.RedisAddr = getenvDefault("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getenvInt("REDIS_DB", 0)

	if locs := os.Getenv("WARM_LOCATIONS"); locs != "" {
		for _, loc := range strings.Split(locs, ",") {
			if trimmed := strings.TrimSpace(loc); trimmed != "" {
				cfg.WarmLocations = append(cfg.WarmLocations, trimmed)
			}
		}
	}

	warmStr := getenvDefault("WARM_INTERVAL", "6h")
	warm, err := time.ParseDuration(warmStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = warm

	cfg.Defaults = loadDefaults()
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func loadDefaults() assessment.Defaults {
	d := assessment.DefaultAssumptions()
	d.ElectricityCostPerKWh = getenvFloat("DEFAULT_ELECTRICITY_COST_PER_KWH", d.ElectricityCostPerKWh)
	d.WaterCostPerGallon = getenvFloat("DEFAULT_WATER_COST_PER_GALLON", d.WaterCostPerGallon)
	d.SolarInstallCostPerWatt = getenvFloat("DEFAULT_SOLAR_INSTALL_COST_PER_WATT", d.SolarInstallCostPerWatt)
	d.RainwaterStorageCostPerGallon = getenvFloat("DEFAULT_RAINWATER_STORAGE_COST_PER_GALLON", d.RainwaterStorageCostPerGallon)
	d.RainwaterStorageCapacityGallons = getenvFloat("DEFAULT_RAINWATER_STORAGE_CAPACITY_GALLONS", d.RainwaterStorageCapacityGallons)
	d.CO2EmissionsFactorKgPerKWh = getenvFloat("DEFAULT_CO2_EMISSIONS_FACTOR_KG_PER_KWH", d.CO2EmissionsFactorKgPerKWh)
	d.CollectionRoofAreaSqft = getenvFloat("DEFAULT_COLLECTION_ROOF_AREA_SQFT", d.CollectionRoofAreaSqft)
	d.SolarSystemCapacityKW = getenvFloat("DEFAULT_SOLAR_SYSTEM_CAPACITY_KW", d.SolarSystemCapacityKW)
	return d
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
