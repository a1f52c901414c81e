package flights

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/i474232898/flight-assistant/pkg/logger"
)

const arrivalsEnvelope = `{
  "airport": {
    "pluginData": {
      "schedule": {
        "arrivals": {
          "data": [
            {"flight": {"identification": {"number": {"default": "EK203"}}}},
            {"noflight": true},
            {"flight": {"identification": {"number": {"default": "BA106"}}}}
          ]
        }
      }
    }
  }
}`

// newTestClient points a Client at the stub server with retries disabled so
// failure cases return promptly.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := NewClient(&http.Client{}, baseURL, "test-key", logger.NewNop())
	c.httpCfg.Backoff.MaxRetries = 0
	return c
}

func TestFetchExtractsFlights(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, arrivalsEnvelope)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	raws, err := client.Fetch(context.Background(), "DXB", DirectionArrival)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/test-key" {
		t.Errorf("expected api key in path, got %q", gotPath)
	}
	if gotQuery != "day=1&iata=DXB&mode=arrivals" {
		t.Errorf("unexpected query %q", gotQuery)
	}

	// The item without a flight object is skipped, not fatal.
	if len(raws) != 2 {
		t.Fatalf("expected 2 raw records, got %d", len(raws))
	}
	if got := stringAt(raws[0], "identification", "number", "default"); got == nil || *got != "EK203" {
		t.Errorf("unexpected first record: %v", got)
	}
}

func TestFetchDepartureMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("mode") != "departures" {
			t.Errorf("expected mode=departures, got %q", r.URL.Query().Get("mode"))
		}
		fmt.Fprint(w, `{"airport":{"pluginData":{"schedule":{"departures":{"data":[]}}}}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	raws, err := client.Fetch(context.Background(), "LHR", DirectionDeparture)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 0 {
		t.Errorf("expected no records, got %d", len(raws))
	}
}

func TestFetchProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": "no data"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	raws, err := client.Fetch(context.Background(), "DXB", DirectionArrival)
	if err != nil {
		t.Fatalf("provider-reported error must not surface as an error, got %v", err)
	}
	if len(raws) != 0 {
		t.Errorf("expected empty result, got %d records", len(raws))
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if _, err := client.Fetch(context.Background(), "DXB", DirectionArrival); err == nil {
		t.Fatal("expected an error for a non-2xx status")
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"airport": [`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if _, err := client.Fetch(context.Background(), "DXB", DirectionArrival); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestFetchMissingAPIKey(t *testing.T) {
	client := NewClient(&http.Client{}, "http://localhost", "", logger.NewNop())
	if _, err := client.Fetch(context.Background(), "DXB", DirectionArrival); err == nil {
		t.Fatal("expected an error when the api key is not configured")
	}
}

func TestFetchUnexpectedEnvelopeShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"airport": {"pluginData": {"schedule": "closed"}}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	raws, err := client.Fetch(context.Background(), "DXB", DirectionArrival)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 0 {
		t.Errorf("expected empty result for wrong-shaped envelope, got %d", len(raws))
	}
}
