package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/domain/types"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

func (c *Client) fetchUserPage(pageSize int) fetchPage[*model.User] {
	return func(ctx context.Context, cursor string) ([]*model.User, string, error) {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var resp model.UsersListResponse
		if err := c.get(ctx, "users.list", query, &resp); err != nil {
			return nil, "", err
		}

		next := ""
		if resp.ResponseMetadata != nil {
			next = resp.ResponseMetadata.NextCursor
		}
		return resp.Members, next, nil
	}
}

// ListUsers fetches every workspace member from the remote API, writing each
// page through to the cache as it arrives. Deleted members are filtered out
// unless includeDeleted is set; the cache keeps them either way.
func (c *Client) ListUsers(ctx context.Context, includeDeleted bool) ([]*model.User, error) {
	ws, err := c.WorkspaceID()
	if err != nil {
		return nil, err
	}

	var all []*model.User
	err = paginate(ctx, c.fetchUserPage(DefaultPageSize), func(users []*model.User) (bool, error) {
		c.cacheUsers(ctx, ws, users)
		all = append(all, users...)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	if includeDeleted {
		return all, nil
	}
	active := make([]*model.User, 0, len(all))
	for _, user := range all {
		if !user.Deleted {
			active = append(active, user)
		}
	}
	return active, nil
}

// GetUser returns one user, cache-first unless refresh is requested.
func (c *Client) GetUser(ctx context.Context, userID string) (*model.User, error) {
	ws, err := c.WorkspaceID()
	if err != nil {
		return nil, err
	}
	logger := logging.From(ctx)

	if c.store != nil && !c.refresh {
		user, err := c.store.GetUser(ws, userID)
		if err != nil {
			logger.Debug("cache read failed, falling through", "kind", "user", "id", userID, "error", err)
		} else if user != nil {
			logger.Debug("cache hit", "kind", "user", "id", userID)
			return user, nil
		} else {
			logger.Debug("cache miss", "kind", "user", "id", userID)
		}
	}

	query := url.Values{}
	query.Set("user", userID)
	var resp model.UserInfoResponse
	if err := c.get(ctx, "users.info", query, &resp); err != nil {
		return nil, err
	}

	c.cacheUsers(ctx, ws, []*model.User{resp.User})
	return resp.User, nil
}

// GetProfile fetches a user's profile, or the authenticated user's own when
// userID is empty. Profiles are not cached.
func (c *Client) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	query := url.Values{}
	if userID != "" {
		query.Set("user", userID)
	}

	var resp model.UserProfileResponse
	if err := c.get(ctx, "users.profile.get", query, &resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// cacheUsers writes users through to the store. Best effort: cache failures
// never escalate past this boundary.
func (c *Client) cacheUsers(ctx context.Context, ws types.WorkspaceID, users []*model.User) {
	if c.store == nil || len(users) == 0 {
		return
	}
	if err := c.store.PutUsers(ws, users); err != nil {
		logging.From(ctx).Debug("cache write failed", "kind", "user", "count", len(users), "error", err)
	}
}
