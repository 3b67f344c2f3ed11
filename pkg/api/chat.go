package api

import (
	"context"
	"net/url"

	"github.com/clacklabs/clack/pkg/domain/model"
)

// PostMessage posts text to a conversation, optionally as a thread reply,
// and returns the timestamp of the posted message. Write operations bypass
// the cache.
func (c *Client) PostMessage(ctx context.Context, conversationID, text, threadTS string) (string, error) {
	query := url.Values{}
	query.Set("channel", conversationID)
	query.Set("text", text)
	if threadTS != "" {
		query.Set("thread_ts", threadTS)
	}

	var resp model.PostMessageResponse
	if err := c.get(ctx, "chat.postMessage", query, &resp); err != nil {
		return "", err
	}
	return resp.TS, nil
}
