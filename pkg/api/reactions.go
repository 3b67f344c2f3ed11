package api

import (
	"context"
	"net/url"
)

// AddReaction adds an emoji reaction to the message at timestamp.
// Reactions bypass the cache.
func (c *Client) AddReaction(ctx context.Context, conversationID, timestamp, name string) error {
	query := url.Values{}
	query.Set("channel", conversationID)
	query.Set("timestamp", timestamp)
	query.Set("name", name)
	return c.get(ctx, "reactions.add", query, nil)
}

// RemoveReaction removes an emoji reaction from the message at timestamp.
func (c *Client) RemoveReaction(ctx context.Context, conversationID, timestamp, name string) error {
	query := url.Values{}
	query.Set("channel", conversationID)
	query.Set("timestamp", timestamp)
	query.Set("name", name)
	return c.get(ctx, "reactions.remove", query, nil)
}
