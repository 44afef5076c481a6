package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, rdb *redis.Client) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(rdb, "", "")
	c.baseURL = srv.URL
	return c
}

func TestReposPassesThroughBody(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"name":"devconnector"}]`))
	}, nil)

	body, err := c.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"devconnector"}]`, string(body))
	assert.Equal(t, "/users/octocat/repos", gotPath)
	assert.Contains(t, gotQuery, "per_page=5")
}

func TestReposUnknownUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, nil)

	_, err := c.Repos(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestReposCachesPerUsername(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"name":"cached"}]`))
	}, rdb)

	ctx := context.Background()
	first, err := c.Repos(ctx, "octocat")
	require.NoError(t, err)
	second, err := c.Repos(ctx, "octocat")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, string(first), string(second))

	// a different username misses the cache
	_, err = c.Repos(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestReposWorksWithoutRedis(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	}, nil)

	ctx := context.Background()
	_, err := c.Repos(ctx, "octocat")
	require.NoError(t, err)
	_, err = c.Repos(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
