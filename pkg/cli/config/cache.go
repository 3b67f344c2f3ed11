package config

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/cache"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

// Cache holds CLI flags for the local store.
type Cache struct {
	dir      string
	disabled bool
}

func (x *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "Cache directory (defaults to the platform cache dir)",
			Category:    "Cache",
			Sources:     cli.EnvVars("CLACK_CACHE_DIR"),
			Destination: &x.dir,
		},
		&cli.BoolFlag{
			Name:        "no-cache",
			Usage:       "Disable the local cache entirely",
			Category:    "Cache",
			Sources:     cli.EnvVars("CLACK_NO_CACHE"),
			Destination: &x.disabled,
		},
	}
}

// Configure opens the local store, or returns nil when caching is disabled.
// Open failures are downgraded to a warning: a broken cache must never block
// the remote path.
func (x *Cache) Configure(ctx context.Context) *cache.Store {
	if x.disabled {
		logging.From(ctx).Debug("local cache disabled")
		return nil
	}

	dir := x.dir
	if dir == "" {
		var err error
		dir, err = cache.DefaultDir()
		if err != nil {
			logging.From(ctx).Warn("cache directory unavailable, continuing without cache", "error", err)
			return nil
		}
	}

	store, err := cache.New(dir)
	if err != nil {
		logging.From(ctx).Warn("failed to open cache, continuing without it",
			"dir", dir, "error", err)
		return nil
	}

	logging.From(ctx).Debug("cache opened", "dir", dir)
	return store
}

func (x Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", x.dir),
		slog.Bool("disabled", x.disabled),
	)
}
