package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/flight-assistant/internal/flights"
	"github.com/i474232898/flight-assistant/pkg/logger"
)

// Scheduler periodically pre-warms the schedule cache for the allow-listed
// airports so interactive requests are served from cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *flights.Service
	airports  []string
	interval  time.Duration
	log       logger.Logger
}

// New creates a new Scheduler.
func New(airports []string, interval time.Duration, service *flights.Service, log logger.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		airports:  airports,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the warm job and starts the underlying scheduler. An
// interval of zero disables warming entirely.
func (s *Scheduler) Start() error {
	if s.interval <= 0 || len(s.airports) == 0 {
		s.log.Info("cache warmer disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.log.Info("running schedule warm job", "airports", len(s.airports))

		var wg sync.WaitGroup
		for _, code := range s.airports {
			code := code
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				s.service.GetFlights(ctx, code)
			}()
		}
		wg.Wait()
		s.log.Info("schedule warm job completed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
