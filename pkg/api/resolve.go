package api

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/clacklabs/clack/pkg/cache"
	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/domain/types"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

// ResolveConversationID maps a human identifier (name, #name, or raw ID) to
// a canonical conversation ID. Raw IDs short-circuit without any network
// call; names are looked up cache-first with graceful fallback to paginated
// remote search.
func (c *Client) ResolveConversationID(ctx context.Context, identifier string) (types.ConversationID, error) {
	name := strings.TrimPrefix(identifier, "#")

	if types.LooksLikeConversationID(name) {
		return types.ConversationID(name), nil
	}

	ws, err := c.WorkspaceID()
	if err != nil {
		return "", err
	}
	logger := logging.From(ctx)

	// The name-to-ID mapping is far more stable than the record around it,
	// so any cached match is acceptable regardless of age.
	if c.store != nil && !c.refresh {
		convs, err := c.store.GetConversations(ws, cache.WithTTL(cache.TTLForever))
		if err != nil {
			logger.Debug("cache read failed, falling through", "kind", "conversation", "name", name, "error", err)
		}
		for _, conv := range convs {
			if conv.Name == name {
				logger.Debug("resolved from cache", "kind", "conversation", "name", name, "id", conv.ID)
				return types.ConversationID(conv.ID), nil
			}
		}
	}

	// Remote pagination with early exit. Every fetched page is written
	// through so repeated resolutions amortize.
	var found types.ConversationID
	scanned := 0
	err = paginate(ctx, c.fetchConversationPage(DefaultPageSize, false), func(convs []*model.Conversation) (bool, error) {
		c.cacheConversations(ctx, ws, convs)
		scanned += len(convs)
		for _, conv := range convs {
			if conv.Name == name {
				found = types.ConversationID(conv.ID)
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return "", err
	}
	if found != "" {
		return found, nil
	}

	return "", goerr.Wrap(ErrNotFound,
		"channel '"+name+"' not found: it may be private and the bot not a member, the token may lack channels:read/groups:read, or the name may be misspelled",
		goerr.V("name", name),
		goerr.V("scanned", scanned),
	)
}

// ResolveUserID maps a human identifier (handle, @handle, display name, or
// raw ID) to a canonical user ID. Multiple cached users sharing the name is
// an error: resolution never silently picks one.
func (c *Client) ResolveUserID(ctx context.Context, identifier string) (types.UserID, error) {
	name := strings.TrimPrefix(identifier, "@")

	if types.LooksLikeUserID(name) {
		return types.UserID(name), nil
	}

	ws, err := c.WorkspaceID()
	if err != nil {
		return "", err
	}
	logger := logging.From(ctx)

	if c.store != nil && !c.refresh {
		users, err := c.store.GetUsers(ws, cache.WithTTL(cache.TTLForever))
		if err != nil {
			logger.Debug("cache read failed, falling through", "kind", "user", "name", name, "error", err)
		}
		if matches := matchUsersByName(users, name); len(matches) > 0 {
			if len(matches) > 1 {
				return "", ambiguousUserError(name, matches)
			}
			logger.Debug("resolved from cache", "kind", "user", "name", name, "id", matches[0].ID)
			return types.UserID(matches[0].ID), nil
		}
	}

	var found types.UserID
	scanned := 0
	err = paginate(ctx, c.fetchUserPage(DefaultPageSize), func(users []*model.User) (bool, error) {
		c.cacheUsers(ctx, ws, users)
		scanned += len(users)
		matches := matchUsersByName(users, name)
		if len(matches) > 1 {
			return false, ambiguousUserError(name, matches)
		}
		if len(matches) == 1 {
			found = types.UserID(matches[0].ID)
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return "", err
	}
	if found != "" {
		return found, nil
	}

	return "", goerr.Wrap(ErrNotFound,
		"user '"+name+"' not found: the token may lack users:read, or the name may be misspelled",
		goerr.V("name", name),
		goerr.V("scanned", scanned),
	)
}

// matchUsersByName collects exact matches against handle, display name and
// real name.
func matchUsersByName(users []*model.User, name string) []*model.User {
	var matches []*model.User
	for _, user := range users {
		if user.Name == name || user.Profile.DisplayName == name || user.RealName == name {
			matches = append(matches, user)
		}
	}
	return matches
}

// ambiguousUserError enumerates every match so the caller can disambiguate
// by exact ID.
func ambiguousUserError(name string, matches []*model.User) error {
	lines := make([]string, 0, len(matches))
	for _, user := range matches {
		lines = append(lines, user.ID+" (@"+user.Name+", "+user.DisplayLabel()+")")
	}
	return goerr.Wrap(ErrAmbiguous,
		"multiple users named '"+name+"': "+strings.Join(lines, "; ")+" - specify the exact user ID instead",
		goerr.V("name", name),
		goerr.V("matches", len(matches)),
	)
}
