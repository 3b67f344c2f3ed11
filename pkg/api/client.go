package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/clacklabs/clack/pkg/cache"
	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/domain/types"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

const (
	// DefaultBaseURL is the production Slack Web API endpoint.
	DefaultBaseURL = "https://slack.com/api"

	// DefaultRetryBudget bounds retries after HTTP 429 responses.
	DefaultRetryBudget = 3

	// DefaultTimeout bounds a single request. A hung remote call must not
	// stall the whole process.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is Slack's recommended page size for cursor listings.
	DefaultPageSize = 200
)

// Client issues Slack Web API calls with bearer auth, rate-limit backoff and
// write-through caching. All calls are sequential; there is no concurrent
// fan-out, deliberately, to respect remote rate limits and avoid cache write
// races.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	store       *cache.Store
	retryBudget int
	refresh     bool
	sleep       func(ctx context.Context, d time.Duration) error

	workspaceID types.WorkspaceID
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API origin. Test servers use
// this.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the transport.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithStore attaches the local cache. Without it every operation goes
// straight to the remote API.
func WithStore(store *cache.Store) ClientOption {
	return func(c *Client) {
		c.store = store
	}
}

// WithRetryBudget overrides the number of retries after HTTP 429.
func WithRetryBudget(n int) ClientOption {
	return func(c *Client) {
		c.retryBudget = n
	}
}

// WithRefresh makes every operation bypass cache reads while still writing
// fetched records through.
func WithRefresh(refresh bool) ClientOption {
	return func(c *Client) {
		c.refresh = refresh
	}
}

// WithTimeout bounds each request. Zero disables the deadline.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithSleep replaces the backoff sleep. Test use only.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// New creates a client authenticating with the given bearer token.
func New(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, goerr.New("slack API token is required: set the SLACK_TOKEN environment variable (see https://api.slack.com/authentication/token-types)")
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		baseURL:     DefaultBaseURL,
		token:       token,
		retryBudget: DefaultRetryBudget,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Store returns the attached cache store, or nil.
func (c *Client) Store() *cache.Store { return c.store }

// Refresh reports whether cache reads are bypassed.
func (c *Client) Refresh() bool { return c.refresh }

// WorkspaceID returns the partition key established by InitWorkspace. It
// fails fast when the session has not been initialized.
func (c *Client) WorkspaceID() (types.WorkspaceID, error) {
	if c.workspaceID == "" {
		return "", goerr.Wrap(ErrWorkspaceNotInitialized, "call InitWorkspace first")
	}
	return c.workspaceID, nil
}

// InitWorkspace verifies the token against auth.test and caches the returned
// workspace ID for the lifetime of the client. Idempotent: subsequent calls
// return the cached ID without a request.
func (c *Client) InitWorkspace(ctx context.Context) (types.WorkspaceID, error) {
	if c.workspaceID != "" {
		return c.workspaceID, nil
	}

	identity, err := c.AuthTest(ctx)
	if err != nil {
		return "", err
	}
	c.workspaceID = types.WorkspaceID(identity.TeamID)

	logging.From(ctx).Debug("workspace initialized",
		"team", identity.Team,
		"team_id", identity.TeamID,
	)
	return c.workspaceID, nil
}

// AuthTest issues the identity-check request and returns the full identity.
func (c *Client) AuthTest(ctx context.Context) (*model.AuthIdentity, error) {
	var identity model.AuthIdentity
	if err := c.get(ctx, "auth.test", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// get issues one GET call: bearer auth, 429 backoff within the retry budget,
// envelope check, then decode into out. out may be nil for calls whose only
// payload is the ok flag.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	logger := logging.From(ctx)

	for attempt := 0; ; attempt++ {
		reqURL := c.baseURL + "/" + endpoint
		if len(query) > 0 {
			reqURL += "?" + query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return goerr.Wrap(err, "failed to build request", goerr.V("endpoint", endpoint))
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		logger.Debug("api request", "method", http.MethodGet, "url", reqURL)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return goerr.Wrap(err, "request failed", goerr.V("endpoint", endpoint))
		}
		elapsed := time.Since(start)

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			if attempt >= c.retryBudget {
				return goerr.Wrap(ErrRateLimitExceeded,
					"rate limit exceeded: maximum retries reached, wait a moment before trying again",
					goerr.V("endpoint", endpoint),
					goerr.V("max_retries", c.retryBudget),
				)
			}

			retryAfter := time.Second
			if v := resp.Header.Get("Retry-After"); v != "" {
				if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
					retryAfter = time.Duration(secs) * time.Second
				}
			}

			logger.Debug("rate limited, backing off",
				"endpoint", endpoint,
				"retry_after", retryAfter,
				"attempt", attempt+1,
				"max_retries", c.retryBudget,
			)
			if err := c.sleep(ctx, retryAfter); err != nil {
				return goerr.Wrap(err, "interrupted during rate-limit backoff", goerr.V("endpoint", endpoint))
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return goerr.Wrap(err, "failed to read response body", goerr.V("endpoint", endpoint))
		}

		logger.Debug("api response",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"duration", elapsed,
			"bytes", len(body),
		)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return goerr.New("API request failed",
				goerr.V("endpoint", endpoint),
				goerr.V("status", resp.StatusCode),
			)
		}

		var env apiEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return goerr.Wrap(err, "failed to parse response from "+endpoint, goerr.V("endpoint", endpoint))
		}
		if !env.OK {
			return mapAPIError(endpoint, env)
		}

		if out != nil {
			if err := json.Unmarshal(body, out); err != nil {
				return goerr.Wrap(err, "failed to parse response from "+endpoint, goerr.V("endpoint", endpoint))
			}
		}
		return nil
	}
}
