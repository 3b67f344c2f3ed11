package api

import (
	"context"
	"net/url"

	"github.com/clacklabs/clack/pkg/domain/model"
)

// ListPins returns a conversation's pinned items. Pins bypass the cache.
func (c *Client) ListPins(ctx context.Context, conversationID string) ([]*model.PinItem, error) {
	query := url.Values{}
	query.Set("channel", conversationID)

	var resp model.PinsListResponse
	if err := c.get(ctx, "pins.list", query, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// AddPin pins the message at timestamp in the conversation.
func (c *Client) AddPin(ctx context.Context, conversationID, timestamp string) error {
	query := url.Values{}
	query.Set("channel", conversationID)
	query.Set("timestamp", timestamp)
	return c.get(ctx, "pins.add", query, nil)
}

// RemovePin unpins the message at timestamp in the conversation.
func (c *Client) RemovePin(ctx context.Context, conversationID, timestamp string) error {
	query := url.Values{}
	query.Set("channel", conversationID)
	query.Set("timestamp", timestamp)
	return c.get(ctx, "pins.remove", query, nil)
}
