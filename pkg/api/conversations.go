package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/domain/types"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

func (c *Client) fetchConversationPage(pageSize int, includeArchived bool) fetchPage[*model.Conversation] {
	return func(ctx context.Context, cursor string) ([]*model.Conversation, string, error) {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		query.Set("types", "public_channel,private_channel")
		query.Set("exclude_archived", strconv.FormatBool(!includeArchived))
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var resp model.ConversationsListResponse
		if err := c.get(ctx, "conversations.list", query, &resp); err != nil {
			return nil, "", err
		}

		next := ""
		if resp.ResponseMetadata != nil {
			next = resp.ResponseMetadata.NextCursor
		}
		return resp.Channels, next, nil
	}
}

// ListConversations fetches every conversation from the remote API, writing
// each page through to the cache as it arrives.
func (c *Client) ListConversations(ctx context.Context, includeArchived bool) ([]*model.Conversation, error) {
	ws, err := c.WorkspaceID()
	if err != nil {
		return nil, err
	}

	var all []*model.Conversation
	err = paginate(ctx, c.fetchConversationPage(DefaultPageSize, includeArchived), func(convs []*model.Conversation) (bool, error) {
		c.cacheConversations(ctx, ws, convs)
		all = append(all, convs...)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// GetConversation returns one conversation, cache-first unless refresh is
// requested.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	ws, err := c.WorkspaceID()
	if err != nil {
		return nil, err
	}
	logger := logging.From(ctx)

	if c.store != nil && !c.refresh {
		conv, err := c.store.GetConversation(ws, conversationID)
		if err != nil {
			logger.Debug("cache read failed, falling through", "kind", "conversation", "id", conversationID, "error", err)
		} else if conv != nil {
			logger.Debug("cache hit", "kind", "conversation", "id", conversationID)
			return conv, nil
		} else {
			logger.Debug("cache miss", "kind", "conversation", "id", conversationID)
		}
	}

	query := url.Values{}
	query.Set("channel", conversationID)
	var resp model.ConversationInfoResponse
	if err := c.get(ctx, "conversations.info", query, &resp); err != nil {
		return nil, err
	}

	c.cacheConversations(ctx, ws, []*model.Conversation{resp.Channel})
	return resp.Channel, nil
}

// SearchConversations filters the full conversation listing by a
// case-insensitive name substring.
func (c *Client) SearchConversations(ctx context.Context, query string, includeArchived bool) ([]*model.Conversation, error) {
	all, err := c.ListConversations(ctx, includeArchived)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []*model.Conversation
	for _, conv := range all {
		if strings.Contains(strings.ToLower(conv.Name), needle) {
			matches = append(matches, conv)
		}
	}
	return matches, nil
}

// cacheConversations writes conversations through to the store, best effort.
func (c *Client) cacheConversations(ctx context.Context, ws types.WorkspaceID, convs []*model.Conversation) {
	if c.store == nil || len(convs) == 0 {
		return
	}
	if err := c.store.PutConversations(ws, convs); err != nil {
		logging.From(ctx).Debug("cache write failed", "kind", "conversation", "count", len(convs), "error", err)
	}
}
