// Package github proxies the external repository listing for a user's
// github profile, with best-effort Redis caching.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoProfile is returned when the upstream answers anything but 200 for the
// requested username.
var ErrNoProfile = errors.New("no github profile found")

const (
	defaultBaseURL = "https://api.github.com"
	cacheTTL       = 10 * time.Minute
	requestTimeout = 10 * time.Second
)

// Client fetches a user's newest repositories from the GitHub API.
type Client struct {
	http     *http.Client
	redis    *redis.Client
	baseURL  string
	clientID string
	secret   string
}

// NewClient builds a client. rdb may be nil, in which case responses are not cached.
func NewClient(rdb *redis.Client, clientID, secret string) *Client {
	return &Client{
		http:     &http.Client{Timeout: requestTimeout},
		redis:    rdb,
		baseURL:  defaultBaseURL,
		clientID: clientID,
		secret:   secret,
	}
}

// Repos returns the raw JSON repository listing for the username: the five
// most recently created repos, cached per username. The upstream body is
// passed through untouched.
func (c *Client) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	key := "github:repos:" + username

	if cached, ok := c.cacheGet(ctx, key); ok {
		return cached, nil
	}

	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if c.clientID != "" {
		query.Set("client_id", c.clientID)
		query.Set("client_secret", c.secret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devconnector")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNoProfile
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.cacheSet(ctx, key, body)
	return body, nil
}

func (c *Client) cacheGet(ctx context.Context, key string) (json.RawMessage, bool) {
	if c.redis == nil {
		return nil, false
	}
	s, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}

func (c *Client) cacheSet(ctx context.Context, key string, body []byte) {
	if c.redis == nil {
		return
	}
	// best-effort; a cache write failure never fails the request
	_ = c.redis.Set(ctx, key, body, cacheTTL).Err()
}
