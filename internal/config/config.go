package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultAirports is the IATA allow-list served when ALLOWED_AIRPORTS is unset.
const defaultAirports = "DXB,LHR,CDG,SIN,HKG,AMS"

type AppConfig struct {
	// Schedule provider (flightapi.io compatible).
	FlightAPIKey     string
	FlightAPIBaseURL string

	// OpenRouter chat completions.
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	LLMModel          string

	// Airports the service is allowed to answer about.
	Airports []string

	// Schedule cache sizing.
	CacheTTL      time.Duration
	CacheCapacity int

	// Outbound HTTP timeout for upstream calls.
	HTTPTimeout time.Duration

	// WarmInterval controls the background cache warmer; 0 disables it.
	WarmInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	godotenv.Load()

	cfg := &AppConfig{}

	cfg.FlightAPIKey = os.Getenv("FLIGHT_API_KEY")
	cfg.FlightAPIBaseURL = getenvDefault("FLIGHT_API_BASE_URL", "https://api.flightapi.io/schedule")

	cfg.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")
	cfg.OpenRouterBaseURL = getenvDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	cfg.LLMModel = getenvDefault("LLM_MODEL", "mistralai/mistral-7b-instruct:free")

	airports, err := loadAirports()
	if err != nil {
		return nil, err
	}
	cfg.Airports = airports

	ttlStr := getenvDefault("CACHE_TTL", "600s")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	cfg.CacheCapacity = getenvInt("CACHE_CAPACITY", 12)

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "5s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	warmStr := getenvDefault("WARM_INTERVAL", "0s")
	warm, err := time.ParseDuration(warmStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = warm

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func loadAirports() ([]string, error) {
	raw := getenvDefault("ALLOWED_AIRPORTS", defaultAirports)

	var airports []string
	for _, code := range strings.Split(raw, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if len(code) != 3 {
			return nil, fmt.Errorf("invalid airport code %q in ALLOWED_AIRPORTS", code)
		}
		airports = append(airports, code)
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("ALLOWED_AIRPORTS must list at least one airport")
	}

	return airports, nil
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
