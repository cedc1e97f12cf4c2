package ghprofile_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ghprofile"
	"github.com/dmitrymomot/ghprofile/pkg/cache"
	"github.com/dmitrymomot/ghprofile/pkg/profile"
)

// fakeGitHub serves /users/{name} and /users/{name}/repos for known users
// and counts repository list requests.
type fakeGitHub struct {
	*httptest.Server
	repoCalls atomic.Int32
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()

	f := &fakeGitHub{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.ToLower(r.URL.Path) {
		case "/users/octocat/repos":
			f.repoCalls.Add(1)
			_, _ = io.WriteString(w, `[
				{"id": 2, "name": "beta", "html_url": "https://github.com/octocat/beta", "owner": {"login": "octocat"}},
				{"id": 1, "name": "Alpha", "html_url": "https://github.com/octocat/Alpha", "owner": {"login": "octocat"}}
			]`)
		case "/users/octocat":
			_, _ = io.WriteString(w, `{"login": "octocat", "name": "The Octocat"}`)
		case "/users/broken/repos":
			f.repoCalls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		default:
			if strings.HasSuffix(r.URL.Path, "/repos") {
				f.repoCalls.Add(1)
			}
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.Close)
	return f
}

type manualClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestClient(t *testing.T, gh *fakeGitHub, opts ...ghprofile.Option) *ghprofile.Client {
	t.Helper()

	c := ghprofile.New(append([]ghprofile.Option{ghprofile.WithBaseURL(gh.URL)}, opts...)...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_FetchProfile(t *testing.T) {
	t.Parallel()

	t.Run("fetches merged profile", func(t *testing.T) {
		t.Parallel()

		gh := newFakeGitHub(t)
		c := newTestClient(t, gh)

		p, err := c.FetchProfile(context.Background(), "octocat", false)
		require.NoError(t, err)
		require.Equal(t, "The Octocat", p.User.DisplayName)
		require.Equal(t, "Alpha", p.Repositories[0].Name)
		require.Equal(t, "beta", p.Repositories[1].Name)
	})

	t.Run("serves repeated lookups from cache until ttl passes", func(t *testing.T) {
		t.Parallel()

		gh := newFakeGitHub(t)
		clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := newTestClient(t, gh, ghprofile.WithTTL(time.Minute), ghprofile.WithClock(clock.Now))
		ctx := context.Background()

		_, err := c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)
		_, err = c.FetchProfile(ctx, " OCTOCAT ", false)
		require.NoError(t, err)
		require.Equal(t, int32(1), gh.repoCalls.Load())

		clock.Advance(time.Minute)

		_, err = c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)
		require.Equal(t, int32(2), gh.repoCalls.Load())
	})

	t.Run("force refresh bypasses cache", func(t *testing.T) {
		t.Parallel()

		gh := newFakeGitHub(t)
		c := newTestClient(t, gh)
		ctx := context.Background()

		_, err := c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)
		_, err = c.FetchProfile(ctx, "octocat", true)
		require.NoError(t, err)
		require.Equal(t, int32(2), gh.repoCalls.Load())
	})

	t.Run("maps upstream errors", func(t *testing.T) {
		t.Parallel()

		gh := newFakeGitHub(t)
		c := newTestClient(t, gh)
		ctx := context.Background()

		_, err := c.FetchProfile(ctx, "ghost", false)
		require.ErrorIs(t, err, profile.ErrUserNotFound)

		_, err = c.FetchProfile(ctx, "broken", false)
		require.ErrorIs(t, err, profile.ErrNetworkFailure)

		_, err = c.FetchProfile(ctx, "  ", false)
		require.ErrorIs(t, err, profile.ErrUserNotFound)
	})

	t.Run("concurrent lookups with coalescing reuse the cached profile", func(t *testing.T) {
		t.Parallel()

		gh := newFakeGitHub(t)
		c := newTestClient(t, gh, ghprofile.WithCoalescing())
		ctx := context.Background()

		_, err := c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				_, _ = c.FetchProfile(ctx, "octocat", false)
			})
		}
		wg.Wait()

		require.Equal(t, int32(1), gh.repoCalls.Load())
	})
}

func TestClient_CacheControl(t *testing.T) {
	t.Parallel()

	t.Run("clear cache forces a new fetch", func(t *testing.T) {
		t.Parallel()

		gh := newFakeGitHub(t)
		c := newTestClient(t, gh)
		ctx := context.Background()

		_, err := c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)
		require.NoError(t, c.ClearCache(ctx))
		_, err = c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)

		require.Equal(t, int32(2), gh.repoCalls.Load())
	})

	t.Run("invalidate forces a new fetch", func(t *testing.T) {
		t.Parallel()

		gh := newFakeGitHub(t)
		c := newTestClient(t, gh)
		ctx := context.Background()

		_, err := c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(ctx, "OctoCat"))
		_, err = c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)

		require.Equal(t, int32(2), gh.repoCalls.Load())
	})

	t.Run("custom cache is used and closed", func(t *testing.T) {
		t.Parallel()

		gh := newFakeGitHub(t)
		mem := cache.NewMemory[string, profile.Profile]()
		c := ghprofile.New(ghprofile.WithBaseURL(gh.URL), ghprofile.WithCache(mem))
		ctx := context.Background()

		_, err := c.FetchProfile(ctx, "octocat", false)
		require.NoError(t, err)
		require.Equal(t, 1, mem.Len())

		require.NoError(t, c.Healthcheck()(ctx))
		require.NoError(t, c.Close())

		_, err = mem.Get(ctx, "octocat")
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}
