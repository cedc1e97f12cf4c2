package redis

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL returns ErrEmptyConnectionURL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, Config{})
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
		require.Nil(t, client)
	})

	t.Run("invalid scheme returns ErrFailedToParseURL", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{
			"http://localhost:6379",
			"localhost:6379",
			"postgresql://localhost:6379",
		} {
			client, err := Open(ctx, Config{URL: url})
			require.ErrorIs(t, err, ErrFailedToParseURL, url)
			require.Nil(t, client)
		}
	})

	t.Run("malformed URL returns ErrFailedToParseURL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, Config{URL: "redis://localhost:6379/notanumber"})
		require.ErrorIs(t, err, ErrFailedToParseURL)
		require.Nil(t, client)
	})

	t.Run("unreachable server returns ErrConnectionFailed", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, Config{
			URL:             "redis://127.0.0.1:1/0",
			ConnectAttempts: 1,
			DialTimeout:     100 * time.Millisecond,
		})
		require.ErrorIs(t, err, ErrConnectionFailed)
		require.Nil(t, client)
	})
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills zero values", func(t *testing.T) {
		t.Parallel()

		cfg := Config{URL: "redis://localhost:6379"}.withDefaults()
		d := DefaultConfig()
		require.Equal(t, "redis://localhost:6379", cfg.URL)
		require.Equal(t, d.PoolSize, cfg.PoolSize)
		require.Equal(t, d.ConnectAttempts, cfg.ConnectAttempts)
		require.Equal(t, d.RetryInterval, cfg.RetryInterval)
		require.Equal(t, d.DialTimeout, cfg.DialTimeout)
		require.Equal(t, d.ReadTimeout, cfg.ReadTimeout)
		require.Equal(t, d.WriteTimeout, cfg.WriteTimeout)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		t.Parallel()

		cfg := Config{PoolSize: 25, ConnectAttempts: 7, ReadTimeout: time.Second}.withDefaults()
		require.Equal(t, 25, cfg.PoolSize)
		require.Equal(t, 7, cfg.ConnectAttempts)
		require.Equal(t, time.Second, cfg.ReadTimeout)
	})
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	t.Run("calls Close on the client", func(t *testing.T) {
		t.Parallel()

		closer := &mockCloser{}
		require.NoError(t, Shutdown(closer)(context.Background()))
		require.True(t, closer.closed)
	})

	t.Run("propagates Close error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("close error")
		closer := &mockCloser{err: expectedErr}

		err := Shutdown(closer)(context.Background())
		require.Equal(t, expectedErr, err)
		require.True(t, closer.closed)
	})
}

func TestWait(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context returns immediately", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := wait(ctx, 10*time.Second)
		require.Equal(t, context.Canceled, err)
		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("timeout completes normally", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		require.NoError(t, wait(context.Background(), 50*time.Millisecond))
		require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}

// mockCloser is a test double for io.Closer
type mockCloser struct {
	err    error
	closed bool
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

var _ io.Closer = (*mockCloser)(nil)
