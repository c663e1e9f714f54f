package entries

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/inovacc/memolist/internal/model"
)

// ID strategy names accepted by NewIDSource.
const (
	IDsCounter = "counter"
	IDsClock   = "clock"
)

// IDSource hands out entry ids. Seed is called once with the loaded
// collection so new ids never collide with persisted ones.
type IDSource interface {
	Seed(existing []model.Entry)
	Next() int64
}

// Counter issues 1, 2, 3, ... continuing after the highest seeded id.
type Counter struct {
	mu   sync.Mutex
	last int64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Seed(existing []model.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = max(c.last, maxID(existing))
}

func (c *Counter) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last++

	return c.last
}

// Clock issues wall-clock millisecond ids, bumped when two calls land in
// the same millisecond or the clock steps backwards.
type Clock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func (c *Clock) Seed(existing []model.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = max(c.last, maxID(existing))
}

func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}

	c.last = id

	return id
}

// UnknownIDStrategyError indicates an unsupported id strategy name
type UnknownIDStrategyError struct {
	Name string
}

func (e *UnknownIDStrategyError) Error() string {
	return fmt.Sprintf("unknown id strategy %q (want %s or %s)", e.Name, IDsCounter, IDsClock)
}

// NewIDSource returns the IDSource registered under name.
func NewIDSource(name string) (IDSource, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", IDsCounter:
		return NewCounter(), nil
	case IDsClock:
		return NewClock(), nil
	default:
		return nil, &UnknownIDStrategyError{Name: name}
	}
}

func maxID(entries []model.Entry) int64 {
	var m int64

	for _, e := range entries {
		m = max(m, e.ID)
	}

	return m
}
