package jwks

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rakutentech/jwk-go/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
)

func encodeKey(t *testing.T, kid, alg string, key any) []byte {
	t.Helper()
	spec := jwk.NewSpecWithID(kid, key)
	spec.Algorithm = alg
	data, err := json.Marshal(spec)
	require.NoError(t, err)
	return data
}

func TestCache(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keys := map[string][]byte{
		"ec":       encodeKey(t, "ec", "", &ecKey.PublicKey),
		"rsa":      encodeKey(t, "rsa", "RS256", &rsaKey.PublicKey),
		"mismatch": encodeKey(t, "mismatch", "ES256", &rsaKey.PublicKey),
		"other":    encodeKey(t, "someone-else", "", &rsaKey.PublicKey),
		"garbage":  []byte("{"),
	}

	var fetchCount atomic.Int32
	mockFetch := func(_ context.Context, kid string) ([]byte, error) {
		fetchCount.Add(1)
		data, ok := keys[kid]
		if !ok {
			return nil, errors.New("key not found")
		}
		return data, nil
	}

	cache := NewCache(Config{
		MaxAge:    100 * time.Millisecond,
		FetchFunc: mockFetch,
	})
	defer cache.Close()
	ctx := context.Background()

	t.Run("Resolve ECDSA Key", func(t *testing.T) {
		entry, err := cache.Resolve(ctx, "ec")
		require.NoError(t, err)
		assert.Equal(t, "ES384", entry.Schema.JWKAlg)
		assert.Equal(t, algorithm.IANA(-35), entry.Schema.Alg)
		_, ok := entry.Key().(*ecdsa.PublicKey)
		assert.True(t, ok)
		assert.Equal(t, int32(1), fetchCount.Load())

		// second resolve is served from the cache
		_, err = cache.Resolve(ctx, "ec")
		require.NoError(t, err)
		assert.Equal(t, int32(1), fetchCount.Load())
	})

	t.Run("Resolve RSA Key With Alg", func(t *testing.T) {
		s, err := cache.Schema(ctx, "rsa")
		require.NoError(t, err)
		assert.Equal(t, "RSASSA-PKCS1-v1_5_w_SHA256", s.WebcryptoName)
	})

	t.Run("Alg Contradicts Key", func(t *testing.T) {
		_, err := cache.Resolve(ctx, "mismatch")
		require.ErrorIs(t, err, ErrResolve)
		require.ErrorIs(t, err, algorithm.ErrInvalidKeyType)
	})

	t.Run("Key ID Mismatch", func(t *testing.T) {
		_, err := cache.Resolve(ctx, "other")
		require.ErrorIs(t, err, ErrResolve)
	})

	t.Run("Malformed Key", func(t *testing.T) {
		_, err := cache.Resolve(ctx, "garbage")
		require.ErrorIs(t, err, ErrResolve)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		_, err := cache.Resolve(ctx, "missing")
		require.ErrorIs(t, err, ErrFetch)
		assert.Contains(t, err.Error(), "key not found")
	})

	t.Run("Empty Key ID", func(t *testing.T) {
		_, err := cache.Resolve(ctx, "")
		require.ErrorIs(t, err, ErrEmptyKeyID)
	})

	t.Run("Key Expiration", func(t *testing.T) {
		_, err := cache.Resolve(ctx, "ec")
		require.NoError(t, err)
		initial := fetchCount.Load()
		time.Sleep(150 * time.Millisecond)

		_, err = cache.Resolve(ctx, "ec")
		require.NoError(t, err)
		assert.Equal(t, initial+1, fetchCount.Load())
	})

	t.Run("Invalidate And Clear", func(t *testing.T) {
		_, err := cache.Resolve(ctx, "rsa")
		require.NoError(t, err)
		initial := fetchCount.Load()

		cache.Invalidate("rsa")
		_, err = cache.Resolve(ctx, "rsa")
		require.NoError(t, err)
		assert.Equal(t, initial+1, fetchCount.Load())

		cache.Clear()
		assert.Equal(t, 0, cache.Len())
	})
}

func TestCacheSharesConcurrentFetches(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	data := encodeKey(t, "k1", "", &ecKey.PublicKey)

	var fetchCount atomic.Int32
	release := make(chan struct{})
	cache := NewCache(Config{
		MaxAge: time.Minute,
		FetchFunc: func(_ context.Context, _ string) ([]byte, error) {
			fetchCount.Add(1)
			<-release
			return data, nil
		},
	})
	defer cache.Close()

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*Entry, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := cache.Resolve(context.Background(), "k1")
			assert.NoError(t, err)
			results[i] = e
		}(i)
	}

	// let the callers queue up behind the first fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), fetchCount.Load())
	for _, e := range results {
		require.NotNil(t, e)
		assert.Equal(t, "ES256", e.Schema.JWKAlg)
	}
}

func TestCacheCleanup(t *testing.T) {
	secret := encodeKey(t, "hmac", "HS384", []byte("secret"))

	cache := NewCache(Config{
		MaxAge:          50 * time.Millisecond,
		CleanupInterval: 20 * time.Millisecond,
		FetchFunc: func(_ context.Context, _ string) ([]byte, error) {
			return secret, nil
		},
	})
	defer cache.Close()

	s, err := cache.Schema(context.Background(), "hmac")
	require.NoError(t, err)
	assert.Equal(t, "HMAC_w_SHA384", s.WebcryptoName)
	require.Equal(t, 1, cache.Len())

	require.Eventually(t, func() bool {
		return cache.Len() == 0
	}, time.Second, 10*time.Millisecond)

	cache.Close()
	cache.Close()
}

func TestCacheWithoutFetchFunc(t *testing.T) {
	cache := NewCache(Config{})
	defer cache.Close()

	_, err := cache.Resolve(context.Background(), "k1")
	require.ErrorIs(t, err, ErrFetch)
}

func TestCacheFetchErrorKeepsCause(t *testing.T) {
	cause := errors.New("issuer unavailable")
	cache := NewCache(Config{
		FetchFunc: func(_ context.Context, _ string) ([]byte, error) {
			return nil, cause
		},
	})
	defer cache.Close()

	_, err := cache.Resolve(context.Background(), "k1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.True(t, errors.Is(err, cause))
}

func TestCacheCallerCancelDoesNotFailOthers(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	data := encodeKey(t, "k1", "", &ecKey.PublicKey)

	var fetchCount atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	cache := NewCache(Config{
		MaxAge: time.Minute,
		FetchFunc: func(ctx context.Context, _ string) ([]byte, error) {
			if fetchCount.Add(1) == 1 {
				close(started)
			}
			select {
			case <-release:
				return data, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	})
	defer cache.Close()

	ctx1, cancel1 := context.WithCancel(context.Background())
	err1 := make(chan error, 1)
	go func() {
		_, err := cache.Resolve(ctx1, "k1")
		err1 <- err
	}()
	<-started

	type result struct {
		entry *Entry
		err   error
	}
	res2 := make(chan result, 1)
	go func() {
		e, err := cache.Resolve(context.Background(), "k1")
		res2 <- result{e, err}
	}()

	// let the second caller join the fetch in flight
	time.Sleep(50 * time.Millisecond)
	cancel1()
	require.ErrorIs(t, <-err1, context.Canceled)

	close(release)
	r := <-res2
	require.NoError(t, r.err)
	assert.Equal(t, "ES256", r.entry.Schema.JWKAlg)
	assert.Equal(t, int32(1), fetchCount.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestCacheFetchTimeout(t *testing.T) {
	cache := NewCache(Config{
		FetchTimeout: 20 * time.Millisecond,
		FetchFunc: func(ctx context.Context, _ string) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})
	defer cache.Close()

	_, err := cache.Resolve(context.Background(), "k1")
	require.ErrorIs(t, err, ErrFetch)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCacheInvalidateDuringFetch(t *testing.T) {
	oldKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	newKey, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	oldData := encodeKey(t, "k1", "", &oldKey.PublicKey)
	newData := encodeKey(t, "k1", "", &newKey.PublicKey)

	var fetchCount atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	cache := NewCache(Config{
		MaxAge: time.Minute,
		FetchFunc: func(_ context.Context, _ string) ([]byte, error) {
			if fetchCount.Add(1) == 1 {
				close(started)
				<-release
				return oldData, nil
			}
			return newData, nil
		},
	})
	defer cache.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s, err := cache.Schema(context.Background(), "k1")
		assert.NoError(t, err)
		assert.Equal(t, "ES256", s.JWKAlg)
	}()
	<-started

	cache.Invalidate("k1")
	close(release)
	<-done

	assert.Equal(t, 0, cache.Len())

	s, err := cache.Schema(context.Background(), "k1")
	require.NoError(t, err)
	assert.Equal(t, "ES384", s.JWKAlg)
	assert.Equal(t, int32(2), fetchCount.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestCacheClearDuringFetch(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	data := encodeKey(t, "k1", "", &ecKey.PublicKey)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	cache := NewCache(Config{
		MaxAge: time.Minute,
		FetchFunc: func(_ context.Context, _ string) ([]byte, error) {
			once.Do(func() {
				close(started)
				<-release
			})
			return data, nil
		},
	})
	defer cache.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := cache.Resolve(context.Background(), "k1")
		assert.NoError(t, err)
	}()
	<-started

	cache.Clear()
	close(release)
	<-done

	assert.Equal(t, 0, cache.Len())
}
