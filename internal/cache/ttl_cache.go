package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}

type Decision int

const (
	Serve Decision = iota
	Refresh
)

func (d Decision) String() string {
	if d == Serve {
		return "serve"
	}
	return "refresh"
}

// Decide is the refresh-or-serve rule for a value fetched at fetchedAt.
// A zero fetchedAt means nothing was ever cached
func Decide(now, fetchedAt time.Time, ttl time.Duration) Decision {
	if fetchedAt.IsZero() {
		return Refresh
	}
	if now.Sub(fetchedAt) >= ttl {
		return Refresh
	}
	return Serve
}

type Entry[T any] struct {
	Value     T
	FetchedAt time.Time
}

type Result[T any] struct {
	Value     T
	FetchedAt time.Time
	// Fresh is false when the value is a leftover from before a failed
	// refresh, or the zero value when nothing was ever loaded
	Fresh bool
}

type LoadFunc[T any] func(ctx context.Context) (T, error)

const DefaultLoadTimeout = 2 * time.Minute

// TTLCache holds a single value for ttl. Refreshes replace the value
// whole; a failed refresh leaves the previous value in place. With a
// failure ttl, a failed load is remembered and not retried until it expires
type TTLCache[T any] struct {
	name        string
	ttl         time.Duration
	failureTTL  time.Duration
	loadTimeout time.Duration
	clock       Clock

	mu      sync.RWMutex
	entry   *Entry[T]
	failure *failure

	group singleflight.Group
}

type failure struct {
	err error
	at  time.Time
}

type Option func(*options)

type options struct {
	clock       Clock
	failureTTL  time.Duration
	loadTimeout time.Duration
}

func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithFailureTTL caches load errors for d. Zero disables it
func WithFailureTTL(d time.Duration) Option {
	return func(o *options) {
		o.failureTTL = d
	}
}

func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.loadTimeout = d
	}
}

func New[T any](name string, ttl time.Duration, opts ...Option) *TTLCache[T] {
	o := options{
		clock:       systemClock{},
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTLCache[T]{
		name:        name,
		ttl:         ttl,
		failureTTL:  o.failureTTL,
		loadTimeout: o.loadTimeout,
		clock:       o.clock,
	}
}

func (c *TTLCache[T]) Peek() (Entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return Entry[T]{}, false
	}
	return *c.entry, true
}

func (c *TTLCache[T]) fresh() (Entry[T], bool) {
	entry, ok := c.Peek()
	return entry, ok && Decide(c.clock.Now(), entry.FetchedAt, c.ttl) == Serve
}

// recentFailure returns the last load error while it is within the failure ttl
func (c *TTLCache[T]) recentFailure() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.failure == nil || c.failureTTL <= 0 {
		return nil
	}
	if Decide(c.clock.Now(), c.failure.at, c.failureTTL) == Serve {
		return c.failure.err
	}
	return nil
}

// Get serves the cached value while it is within ttl, otherwise calls
// load. Concurrent callers that miss together share a single load, which
// runs detached from the first caller's cancellation and is bounded by the
// load timeout. When load fails the previous value (if any) is returned
// with Fresh=false alongside the error
func (c *TTLCache[T]) Get(ctx context.Context, load LoadFunc[T]) (Result[T], error) {
	if entry, ok := c.fresh(); ok {
		return Result[T]{Value: entry.Value, FetchedAt: entry.FetchedAt, Fresh: true}, nil
	}

	v, err, _ := c.group.Do(c.name, func() (interface{}, error) {
		// someone may have refreshed while we were waiting on the group
		if entry, ok := c.fresh(); ok {
			return entry, nil
		}
		if err := c.recentFailure(); err != nil {
			return nil, err
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		value, err := load(loadCtx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.failure = &failure{err: err, at: c.clock.Now()}
			return nil, err
		}
		entry := Entry[T]{
			Value:     value,
			FetchedAt: c.clock.Now(),
		}
		c.entry = &entry
		c.failure = nil
		return entry, nil
	})
	if err != nil {
		stale, ok := c.Peek()
		if !ok {
			return Result[T]{}, fmt.Errorf("failed to load %s: %w", c.name, err)
		}
		return Result[T]{Value: stale.Value, FetchedAt: stale.FetchedAt, Fresh: false}, fmt.Errorf("failed to refresh %s: %w", c.name, err)
	}

	entry := v.(Entry[T])
	return Result[T]{Value: entry.Value, FetchedAt: entry.FetchedAt, Fresh: true}, nil
}
