package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FLIGHT_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FlightAPIBaseURL != "https://api.flightapi.io/schedule" {
		t.Errorf("unexpected base url %q", cfg.FlightAPIBaseURL)
	}
	if cfg.CacheTTL != 600*time.Second {
		t.Errorf("expected 600s TTL, got %v", cfg.CacheTTL)
	}
	if cfg.CacheCapacity != 12 {
		t.Errorf("expected capacity 12, got %d", cfg.CacheCapacity)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.WarmInterval != 0 {
		t.Errorf("expected warming disabled by default, got %v", cfg.WarmInterval)
	}
	if len(cfg.Airports) != 6 || cfg.Airports[0] != "DXB" {
		t.Errorf("unexpected default airports %v", cfg.Airports)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALLOWED_AIRPORTS", " lhr , cdg ")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_CAPACITY", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Airports) != 2 || cfg.Airports[0] != "LHR" || cfg.Airports[1] != "CDG" {
		t.Errorf("airport list not normalized: %v", cfg.Airports)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("expected 2m TTL, got %v", cfg.CacheTTL)
	}
	if cfg.CacheCapacity != 3 {
		t.Errorf("expected capacity 3, got %d", cfg.CacheCapacity)
	}
}

func TestLoadRejectsBadAirportCode(t *testing.T) {
	t.Setenv("ALLOWED_AIRPORTS", "DXB,LOND")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-3-letter airport code")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "ten minutes")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unparseable CACHE_TTL")
	}
}
