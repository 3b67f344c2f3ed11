package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/domain/types"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

// ListMessages returns up to limit messages from a conversation's history,
// cache-first. Time-bounded reads (latest/oldest) always go remote: the
// cache holds no interval metadata to answer them correctly.
func (c *Client) ListMessages(ctx context.Context, conversationID string, limit int, latest, oldest string) ([]*model.Message, error) {
	ws, err := c.WorkspaceID()
	if err != nil {
		return nil, err
	}
	logger := logging.From(ctx)

	bounded := latest != "" || oldest != ""
	if c.store != nil && !c.refresh && !bounded {
		msgs, err := c.store.GetMessages(ws, conversationID)
		if err != nil {
			logger.Debug("cache read failed, falling through", "kind", "message", "conversation", conversationID, "error", err)
		} else if msgs != nil {
			logger.Debug("cache hit", "kind", "message", "conversation", conversationID, "count", len(msgs))
			// Store iteration yields oldest-first; history order is
			// newest-first. Reverse before truncating so a warm cache
			// returns the same window as the remote call.
			for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
				msgs[i], msgs[j] = msgs[j], msgs[i]
			}
			if limit > 0 && len(msgs) > limit {
				msgs = msgs[:limit]
			}
			return msgs, nil
		} else {
			logger.Debug("cache miss", "kind", "message", "conversation", conversationID)
		}
	}

	query := url.Values{}
	query.Set("channel", conversationID)
	query.Set("limit", strconv.Itoa(limit))
	if latest != "" {
		query.Set("latest", latest)
	}
	if oldest != "" {
		query.Set("oldest", oldest)
	}

	var resp model.MessagesResponse
	if err := c.get(ctx, "conversations.history", query, &resp); err != nil {
		return nil, err
	}

	c.cacheMessages(ctx, ws, conversationID, resp.Messages)
	return resp.Messages, nil
}

// GetThread returns the messages of a thread rooted at threadTS. The cache
// read filters the conversation's cached messages by thread membership and
// falls through to conversations.replies when nothing matches.
func (c *Client) GetThread(ctx context.Context, conversationID, threadTS string) ([]*model.Message, error) {
	ws, err := c.WorkspaceID()
	if err != nil {
		return nil, err
	}
	logger := logging.From(ctx)

	if c.store != nil && !c.refresh {
		msgs, err := c.store.GetMessages(ws, conversationID)
		if err != nil {
			logger.Debug("cache read failed, falling through", "kind", "thread", "conversation", conversationID, "error", err)
		} else {
			var thread []*model.Message
			for _, msg := range msgs {
				if msg.InThread(threadTS) {
					thread = append(thread, msg)
				}
			}
			if len(thread) > 0 {
				logger.Debug("cache hit", "kind", "thread", "conversation", conversationID, "ts", threadTS, "count", len(thread))
				return thread, nil
			}
			logger.Debug("cache miss", "kind", "thread", "conversation", conversationID, "ts", threadTS)
		}
	}

	query := url.Values{}
	query.Set("channel", conversationID)
	query.Set("ts", threadTS)

	var resp model.MessagesResponse
	if err := c.get(ctx, "conversations.replies", query, &resp); err != nil {
		return nil, err
	}

	c.cacheMessages(ctx, ws, conversationID, resp.Messages)
	return resp.Messages, nil
}

// cacheMessages writes messages through to the store, best effort.
func (c *Client) cacheMessages(ctx context.Context, ws types.WorkspaceID, conversationID string, msgs []*model.Message) {
	if c.store == nil || len(msgs) == 0 {
		return
	}
	if err := c.store.PutMessages(ws, conversationID, msgs); err != nil {
		logging.From(ctx).Debug("cache write failed", "kind", "message", "conversation", conversationID, "count", len(msgs), "error", err)
	}
}
