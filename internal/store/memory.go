package store

import (
	"container/list"
	"sync"
	"time"

	"github.com/i474232898/flight-assistant/internal/flights"
)

// entry is one cached schedule keyed by airport code.
type entry struct {
	code      string
	records   []flights.FlightRecord
	createdAt time.Time
}

// ScheduleCache is a concurrency-safe in-memory cache of normalized
// schedules with TTL expiry and least-recently-used eviction. Entries are
// only ever replaced whole, never partially updated.
type ScheduleCache struct {
	mu sync.Mutex

	// key: airport code, value: element in order whose Value is *entry
	entries map[string]*list.Element
	// order holds entries most-recently-used first.
	order *list.List

	capacity int
	ttl      time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

// NewScheduleCache creates a cache holding at most capacity airports, each
// entry fresh for ttl. capacity <= 0 is treated as unlimited.
func NewScheduleCache(capacity int, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the cached schedule for an airport. ok is false on a miss or
// when the entry has outlived its TTL; expired entries are dropped so the
// next Set recomputes them.
func (c *ScheduleCache) Get(code string) ([]flights.FlightRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[code]
	if !ok {
		return nil, false
	}

	e := el.Value.(*entry)
	if c.ttl > 0 && c.now().Sub(e.createdAt) > c.ttl {
		c.order.Remove(el)
		delete(c.entries, code)
		return nil, false
	}

	c.order.MoveToFront(el)
	return e.records, true
}

// Set stores a freshly-computed schedule for an airport, replacing any
// previous entry and evicting the least-recently-used airport beyond
// capacity.
func (c *ScheduleCache) Set(code string, records []flights.FlightRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[code]; ok {
		e := el.Value.(*entry)
		e.records = records
		e.createdAt = c.now()
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry{
		code:      code,
		records:   records,
		createdAt: c.now(),
	})
	c.entries[code] = el

	for c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).code)
	}
}

// Len reports the number of airports currently cached.
func (c *ScheduleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
