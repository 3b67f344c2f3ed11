package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/api"
	"github.com/clacklabs/clack/pkg/cache"
)

// Slack holds CLI flags for the remote API connection.
type Slack struct {
	token        string
	apiURL       string
	timeout      time.Duration
	refreshCache bool
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Slack API token (xoxb-... or xoxp-...)",
			Category:    "Slack",
			Sources:     cli.EnvVars("SLACK_TOKEN"),
			Destination: &x.token,
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "Slack API base URL",
			Category:    "Slack",
			Value:       api.DefaultBaseURL,
			Sources:     cli.EnvVars("CLACK_API_URL"),
			Destination: &x.apiURL,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per-request timeout (0 disables)",
			Category:    "Slack",
			Value:       api.DefaultTimeout,
			Sources:     cli.EnvVars("CLACK_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.BoolFlag{
			Name:        "refresh-cache",
			Usage:       "Bypass cache reads; fetched records are still written through",
			Destination: &x.refreshCache,
		},
	}
}

// Configure builds the API client. store may be nil when caching is
// disabled.
func (x *Slack) Configure(store *cache.Store) (*api.Client, error) {
	return api.New(x.token,
		api.WithBaseURL(x.apiURL),
		api.WithTimeout(x.timeout),
		api.WithStore(store),
		api.WithRefresh(x.refreshCache),
	)
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.String("api_url", x.apiURL),
		slog.Bool("refresh_cache", x.refreshCache),
	)
}
