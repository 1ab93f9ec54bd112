package jwks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rakutentech/jwk-go/jwk"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
	"github.com/alexadamm/algo-registry/pkg/jwa"
)

const (
	defaultMaxAge       = 5 * time.Minute
	defaultFetchTimeout = 10 * time.Second
)

var (
	// ErrEmptyKeyID is returned when Resolve is called without a kid
	ErrEmptyKeyID = errors.New("jwks: empty key id")
	// ErrFetch wraps errors returned by the FetchFunc
	ErrFetch = errors.New("jwks: failed to fetch key")
	// ErrResolve is returned when a fetched key maps to no usable algorithm
	ErrResolve = errors.New("jwks: failed to resolve algorithm")
)

// FetchFunc returns the raw JSON Web Key for kid
type FetchFunc func(ctx context.Context, kid string) ([]byte, error)

// Config holds configuration for the cache
type Config struct {
	// MaxAge is how long a resolved key stays valid. Defaults to 5 minutes.
	MaxAge time.Duration
	// CleanupInterval enables background eviction when positive
	CleanupInterval time.Duration
	// FetchTimeout bounds a single fetch. Defaults to 10 seconds.
	FetchTimeout time.Duration
	FetchFunc    FetchFunc
}

// Entry is a resolved key
type Entry struct {
	Spec      *jwk.KeySpec
	Schema    algorithm.Schema
	FetchedAt time.Time
}

// Key returns the key as a standard library value.
func (e *Entry) Key() any {
	return jwa.CryptoKey(e.Spec)
}

type cachedEntry struct {
	entry    *Entry
	lastUsed atomic.Int64 // unix nanoseconds
}

func (ce *cachedEntry) touch(t time.Time) {
	ce.lastUsed.Store(t.UnixNano())
}

// Cache resolves key ids to keys and the algorithm schema they are used
// with. It is safe for concurrent use.
type Cache struct {
	sync.RWMutex
	entries map[string]*cachedEntry
	// gens counts invalidations per kid and epoch counts Clear calls. A
	// fetch started under an older generation does not store its result.
	gens  map[string]uint64
	epoch uint64

	maxAge       time.Duration
	fetchTimeout time.Duration
	fetch        FetchFunc
	group        *singleflight.Group

	stop     chan struct{}
	stopOnce sync.Once
}

// NewCache creates a new cache. Call Close to stop background cleanup.
func NewCache(config Config) *Cache {
	maxAge := config.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}

	fetchTimeout := config.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}

	cache := &Cache{
		entries:      make(map[string]*cachedEntry),
		gens:         make(map[string]uint64),
		maxAge:       maxAge,
		fetchTimeout: fetchTimeout,
		fetch:        config.FetchFunc,
		group:        new(singleflight.Group),
		stop:         make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		go cache.startCleanup(config.CleanupInterval)
	}

	return cache
}

// Resolve returns the entry for kid, fetching and resolving it on a miss
// or after MaxAge. Concurrent misses for one kid share a single fetch; a
// caller whose ctx ends stops waiting without cancelling the fetch for the
// others.
func (c *Cache) Resolve(ctx context.Context, kid string) (*Entry, error) {
	if kid == "" {
		return nil, ErrEmptyKeyID
	}
	if e := c.getFromCache(kid); e != nil {
		return e, nil
	}

	c.RLock()
	group := c.group
	c.RUnlock()

	fetchCtx := context.WithoutCancel(ctx)
	ch := group.DoChan(kid, func() (any, error) {
		ctx, cancel := context.WithTimeout(fetchCtx, c.fetchTimeout)
		defer cancel()
		return c.fetchAndCache(ctx, kid)
	})

	select {
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "kid %q", kid)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Entry), nil
	}
}

// Schema is a shortcut for Resolve returning only the schema.
func (c *Cache) Schema(ctx context.Context, kid string) (algorithm.Schema, error) {
	e, err := c.Resolve(ctx, kid)
	if err != nil {
		return algorithm.Schema{}, err
	}
	return e.Schema, nil
}

func (c *Cache) getFromCache(kid string) *Entry {
	c.RLock()
	defer c.RUnlock()

	if cached, exists := c.entries[kid]; exists {
		if time.Since(cached.entry.FetchedAt) < c.maxAge {
			cached.touch(time.Now())
			return cached.entry
		}
	}
	return nil
}

func (c *Cache) fetchAndCache(ctx context.Context, kid string) (*Entry, error) {
	// another caller may have filled the entry before this fetch started
	if e := c.getFromCache(kid); e != nil {
		return e, nil
	}

	if c.fetch == nil {
		return nil, errors.Wrap(ErrFetch, "no fetch function configured")
	}

	gen, epoch := c.generation(kid)

	data, err := c.fetch(ctx, kid)
	if err != nil {
		log.Debug().Err(err).Str("kid", kid).Msg("jwks fetch failed")
		return nil, errors.Wrapf(errors.Join(ErrFetch, err), "kid %q", kid)
	}

	spec, err := jwk.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrapf(ErrResolve, "kid %q: %v", kid, err)
	}
	if spec.KeyID != "" && spec.KeyID != kid {
		return nil, errors.Wrapf(ErrResolve, "kid %q: key carries kid %q", kid, spec.KeyID)
	}

	schema, err := jwa.FromKeySpec(spec)
	if err != nil {
		return nil, errors.Wrapf(errors.Join(ErrResolve, err), "kid %q", kid)
	}

	now := time.Now()
	entry := &Entry{Spec: spec, Schema: schema, FetchedAt: now}

	cached := &cachedEntry{entry: entry}
	cached.touch(now)

	c.Lock()
	if c.gens[kid] == gen && c.epoch == epoch {
		c.entries[kid] = cached
	} else {
		log.Debug().Str("kid", kid).Msg("jwks key invalidated during fetch, not cached")
	}
	c.Unlock()

	return entry, nil
}

func (c *Cache) generation(kid string) (uint64, uint64) {
	c.RLock()
	defer c.RUnlock()
	return c.gens[kid], c.epoch
}

// Invalidate removes a key from the cache. A fetch for kid that is in
// flight does not store its result, and later callers start a new fetch.
func (c *Cache) Invalidate(kid string) {
	c.Lock()
	defer c.Unlock()
	delete(c.entries, kid)
	c.gens[kid]++
	c.group.Forget(kid)
}

// Clear removes all keys from the cache, including fetches in flight.
func (c *Cache) Clear() {
	c.Lock()
	defer c.Unlock()
	c.entries = make(map[string]*cachedEntry)
	c.epoch++
	c.group = new(singleflight.Group)
}

// Len returns the number of cached keys, including expired ones not yet
// cleaned up.
func (c *Cache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.entries)
}

// Close stops background cleanup. It is safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache) cleanup() {
	c.Lock()
	defer c.Unlock()

	now := time.Now()
	for kid, cached := range c.entries {
		if now.Sub(cached.entry.FetchedAt) > c.maxAge ||
			now.Sub(time.Unix(0, cached.lastUsed.Load())) > 2*c.maxAge {
			delete(c.entries, kid)
			log.Debug().Str("kid", kid).Msg("jwks key evicted")
		}
	}
}
