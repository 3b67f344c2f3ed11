package stream

import (
	"context"
	"time"

	"github.com/clacklabs/clack/pkg/api"
	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

// DefaultInterval is the default poll interval.
const DefaultInterval = 10 * time.Second

// seenKey identifies a message across polls: the same ts can appear in
// different channels.
type seenKey struct {
	channelID string
	ts        string
}

// State tracks which messages have already been emitted across polls.
type State struct {
	seen map[seenKey]struct{}
}

func NewState() *State {
	return &State{seen: make(map[seenKey]struct{})}
}

// IsNew records the message and reports whether it had not been seen before.
func (s *State) IsNew(channelID, ts string) bool {
	key := seenKey{channelID: channelID, ts: ts}
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Emit receives each batch of newly observed messages.
type Emit func(msgs []*model.SearchMessage) error

// Run polls the message search on a fixed interval until ctx is cancelled,
// emitting only messages not seen in a previous poll. Every fetched match is
// cached before the dedup filter so interrupted runs still warm the cache.
// Fetch errors are logged and the loop continues; only ctx cancellation and
// emit errors end it.
func Run(ctx context.Context, client *api.Client, query string, interval time.Duration, emit Emit) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := logging.From(ctx)
	state := NewState()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		resp, err := client.SearchMessages(ctx, query, 20, 1)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Debug("stream poll failed", "query", query, "error", err)
		} else {
			var fresh []*model.SearchMessage
			for _, match := range resp.Messages.Matches {
				channelID := match.ChannelID()
				if channelID == "" {
					channelID = "unknown"
				}
				if state.IsNew(channelID, match.TS) {
					fresh = append(fresh, match)
				}
			}
			if len(fresh) > 0 {
				if err := emit(fresh); err != nil {
					return err
				}
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
