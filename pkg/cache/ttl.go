package cache

import (
	"math"
	"time"
)

// Per-kind default TTLs. Staleness is a read-time judgment only; rows are
// never evicted by age.
const (
	UserTTL         = 7 * 24 * time.Hour
	ConversationTTL = 7 * 24 * time.Hour
	MessageTTL      = 7 * 24 * time.Hour

	// TTLForever makes any cached record count as fresh regardless of age.
	// The resolver uses it: a name-to-ID mapping is far more stable than
	// the profile around it.
	TTLForever = time.Duration(math.MaxInt64)
)

// isFresh reports whether a record cached at cachedAt is still fresh at now.
// A record aged exactly ttl is stale.
func isFresh(cachedAt, now time.Time, ttl time.Duration) bool {
	if ttl == TTLForever {
		return true
	}
	return now.Sub(cachedAt) < ttl
}

// ReadOption adjusts a single cache read.
type ReadOption func(*readConfig)

type readConfig struct {
	ttlOverride *time.Duration
}

// WithTTL overrides the entity kind's default TTL for one read. Pass
// TTLForever to accept any cached record regardless of age.
func WithTTL(ttl time.Duration) ReadOption {
	return func(cfg *readConfig) {
		cfg.ttlOverride = &ttl
	}
}

func applyReadOptions(defaultTTL time.Duration, opts []ReadOption) time.Duration {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ttlOverride != nil {
		return *cfg.ttlOverride
	}
	return defaultTTL
}
