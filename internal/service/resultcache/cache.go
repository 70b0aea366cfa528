// Package resultcache hands the most recent scan result between screens
// without a network round-trip, surviving a process restart via a small
// durable store.
package resultcache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/plateful/mealscan/internal/domain"
)

// LatestKey is the fixed key under which the most recent scan result is
// kept. Each new scan overwrites it; only "latest" is retained.
const LatestKey = "latest_scan_result"

const persistTimeout = 5 * time.Second

type resultStore interface {
	Save(ctx context.Context, key string, payload []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// Cache is an explicit service object: construct one per process and
// pass it by reference, so tests get isolated instances.
//
// Set is read-your-write within the process; durable persistence is
// write-behind and best effort. Get serves memory synchronously; a miss
// kicks an async durable read that populates memory for future calls,
// so callers must not treat one miss as permanent.
type Cache struct {
	store resultStore
	log   *slog.Logger

	mu      sync.Mutex
	mem     map[string]domain.ScanResult
	loading map[string]bool

	// tracks in-flight async work so tests can drain it.
	pending sync.WaitGroup
}

// New creates a Cache. store may be nil, in which case the cache is
// memory-only.
func New(store resultStore, logger *slog.Logger) *Cache {
	return &Cache{
		store:   store,
		log:     logger.With("service", "resultcache"),
		mem:     make(map[string]domain.ScanResult),
		loading: make(map[string]bool),
	}
}

// Set stores the result in memory immediately and persists it durably
// in the background. Persistence failure is logged only.
func (c *Cache) Set(ctx context.Context, key string, result domain.ScanResult) {
	c.mu.Lock()
	c.mem[key] = result
	c.mu.Unlock()

	if c.store == nil {
		return
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()

		payload, err := json.Marshal(storedResultFromDomain(result))
		if err == nil {
			err = c.store.Save(pctx, key, payload)
		}
		if err != nil {
			c.log.Warn("result cache persist failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}()
}

// Get returns the in-memory value synchronously if present. On a miss
// it starts an async durable read and reports not-found for this call.
func (c *Cache) Get(ctx context.Context, key string) (domain.ScanResult, bool) {
	c.mu.Lock()
	if result, ok := c.mem[key]; ok {
		c.mu.Unlock()
		return result, true
	}

	if c.store == nil || c.loading[key] {
		c.mu.Unlock()
		return domain.ScanResult{}, false
	}
	c.loading[key] = true
	c.mu.Unlock()

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()

		result, err := c.loadDurable(lctx, key)

		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.loading, key)
		if err != nil {
			return
		}
		// A Set that raced ahead of the durable read is fresher; keep it.
		if _, exists := c.mem[key]; !exists {
			c.mem[key] = result
		}
	}()

	return domain.ScanResult{}, false
}

func (c *Cache) loadDurable(ctx context.Context, key string) (domain.ScanResult, error) {
	payload, err := c.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.log.Warn("result cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return domain.ScanResult{}, err
	}

	var stored storedResult
	if err := json.Unmarshal(payload, &stored); err != nil {
		c.log.Warn("result cache payload corrupt", slog.String("key", key), slog.String("error", err.Error()))
		return domain.ScanResult{}, err
	}

	return stored.toDomain(), nil
}

// Flush blocks until all in-flight background reads and writes finish.
// Intended for shutdown and tests.
func (c *Cache) Flush() {
	c.pending.Wait()
}
