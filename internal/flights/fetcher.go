package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/flight-assistant/pkg/logger"
)

// Fetcher retrieves the raw schedule feed for one airport and direction.
// Implemented by Client; stubbed in tests.
type Fetcher interface {
	Fetch(ctx context.Context, airportCode string, direction Direction) ([]RawFlightRecord, error)
}

// Client is the flightapi.io schedule client. It is stateless: one Fetch
// call is one upstream round trip.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg httpClientConfig
	circuit *gobreaker.CircuitBreaker
	log     logger.Logger
}

// NewClient creates a schedule client with retry/backoff and a circuit
// breaker around the upstream provider.
func NewClient(httpClient *http.Client, baseURL, apiKey string, log logger.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "flightapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: httpClientConfig{
			Client: httpClient,
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     2 * time.Second,
			},
		},
		circuit: cb,
		log:     log,
	}
}

// Fetch issues one GET for the given airport and direction and extracts the
// raw per-flight records from the provider envelope. A provider-reported
// error in the body is downgraded to an empty result; transport, status,
// and decode failures surface as errors for the aggregator to absorb.
func (c *Client) Fetch(ctx context.Context, airportCode string, direction Direction) ([]RawFlightRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("flight api key is not configured")
	}

	mode := direction.Mode()

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("mode", mode)
		values.Set("iata", airportCode)
		values.Set("day", "1")

		// Authentication is a path-embedded key.
		u := fmt.Sprintf("%s/%s?%s", c.baseURL, c.apiKey, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode schedule response: %w", err)
	}

	if provErr, ok := envelope["error"]; ok {
		c.log.Warn("provider reported error",
			"airport", airportCode,
			"direction", direction,
			"error", provErr,
		)
		return nil, nil
	}

	items := sliceAt(envelope, "airport", "pluginData", "schedule", mode, "data")

	raws := make([]RawFlightRecord, 0, len(items))
	for _, item := range items {
		obj, isMap := item.(map[string]any)
		if !isMap {
			continue
		}
		flight := objectAt(obj, "flight")
		if flight == nil {
			c.log.Debug("schedule item without flight object skipped",
				"airport", airportCode,
				"direction", direction,
			)
			continue
		}
		raws = append(raws, RawFlightRecord(flight))
	}

	return raws, nil
}
