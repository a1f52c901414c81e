package flights

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/i474232898/flight-assistant/pkg/logger"
	"github.com/i474232898/flight-assistant/pkg/metrics"
)

// Store is the contract the schedule cache must satisfy. Get reports false
// for missing or expired entries; Set replaces an entry whole.
type Store interface {
	Get(code string) ([]FlightRecord, bool)
	Set(code string, records []FlightRecord)
}

// Service orchestrates the two direction fetches, normalization, and the
// schedule cache. It is the only entry point the request layer sees.
type Service struct {
	store   Store
	fetcher Fetcher
	group   singleflight.Group
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewService creates a new Service.
func NewService(store Store, fetcher Fetcher, log logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		log:     log,
		metrics: m,
	}
}

// GetFlights returns the normalized schedule for an airport, serving from
// cache when fresh. It never fails on upstream trouble: a fully failed
// aggregation round yields an empty schedule, which is cached for the TTL
// window like any other result so an outage cannot trigger a fetch per
// request. Concurrent callers for the same missing airport collapse into a
// single upstream round.
func (s *Service) GetFlights(ctx context.Context, airportCode string) []FlightRecord {
	code := strings.ToUpper(strings.TrimSpace(airportCode))

	if records, ok := s.store.Get(code); ok {
		s.metrics.CacheHits.Inc()
		return records
	}
	s.metrics.CacheMisses.Inc()

	v, err, _ := s.group.Do(code, func() (interface{}, error) {
		// A caller that lost the race may arrive after the winner already
		// stored the fresh entry.
		if records, ok := s.store.Get(code); ok {
			return records, nil
		}

		records := s.aggregate(ctx, code)
		s.store.Set(code, records)
		return records, nil
	})
	if err != nil {
		// The aggregation closure never returns an error; keep the
		// boundary contract anyway.
		s.log.Error("schedule aggregation failed", "airport", code, "error", err)
		return []FlightRecord{}
	}

	return v.([]FlightRecord)
}

// aggregate fetches both directions concurrently, waits for both regardless
// of individual failure, and merges arrivals before departures.
func (s *Service) aggregate(ctx context.Context, code string) []FlightRecord {
	s.log.Info("fetching schedule from provider", "airport", code)

	directions := []Direction{DirectionArrival, DirectionDeparture}
	raws := make([][]RawFlightRecord, len(directions))

	var wg sync.WaitGroup
	for i, direction := range directions {
		i, direction := i, direction
		wg.Add(1)
		go func() {
			defer wg.Done()

			records, err := s.fetcher.Fetch(ctx, code, direction)
			if err != nil {
				// Log and continue; one direction failing must not void
				// the other.
				s.log.Warn("schedule fetch failed",
					"airport", code,
					"direction", direction,
					"error", err,
				)
				s.metrics.UpstreamFetches.WithLabelValues(string(direction), "error").Inc()
				return
			}

			s.metrics.UpstreamFetches.WithLabelValues(string(direction), "ok").Inc()
			raws[i] = records
		}()
	}
	wg.Wait()

	merged := make([]FlightRecord, 0, len(raws[0])+len(raws[1]))
	for i, direction := range directions {
		merged = append(merged, NormalizeAll(raws[i], direction)...)
	}

	s.metrics.RecordsNormalized.Add(float64(len(merged)))
	s.log.Info("schedule aggregated", "airport", code, "records", len(merged))

	return merged
}
