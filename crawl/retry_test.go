package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/mkowal/docmap"
	"github.com/mkowal/docmap/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		got, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures up to the delay budget", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", func(_ context.Context, url string) (string, error) {
			calls++
			return "", docmap.Errorf(docmap.EUNAVAILABLE, "HTTP 503 for %s", url)
		}, noDelays)

		require.Error(t, err)
		assert.Equal(t, docmap.EUNAVAILABLE, docmap.ErrorCode(err))
		assert.Equal(t, 4, calls) // 1 initial + 3 retries
	})

	t.Run("does not retry permanent failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", func(_ context.Context, url string) (string, error) {
			calls++
			return "", docmap.Errorf(docmap.ENOTFOUND, "not found: %s", url)
		}, noDelays)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers when a retry succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		got, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", func(_ context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", docmap.Errorf(docmap.EUNAVAILABLE, "HTTP 429 for %s", url)
			}
			return "ok", nil
		}, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when the context is canceled between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", func(_ context.Context, url string) (string, error) {
			cancel()
			return "", docmap.Errorf(docmap.EUNAVAILABLE, "HTTP 503 for %s", url)
		}, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("spaces requests to the same domain", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(50) // 20ms between requests
		ctx := context.Background()

		start := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, l.Wait(ctx, "example.com"))
		}
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("does not block requests to different domains", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(1)
		ctx := context.Background()

		start := time.Now()
		require.NoError(t, l.Wait(ctx, "a.com"))
		require.NoError(t, l.Wait(ctx, "b.com"))
		require.NoError(t, l.Wait(ctx, "c.com"))
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("returns when the context is canceled", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(0.1)
		ctx := context.Background()
		require.NoError(t, l.Wait(ctx, "slow.com"))

		canceled, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		assert.Error(t, l.Wait(canceled, "slow.com"))
	})
}
