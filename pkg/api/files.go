package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/clacklabs/clack/pkg/domain/model"
)

// ListFiles returns files visible to the token, optionally filtered by the
// conversation they were shared in and by uploader. files.list uses
// page-number pagination rather than cursors. Files bypass the cache.
func (c *Client) ListFiles(ctx context.Context, conversationID, userID string, count, page int) ([]*model.File, error) {
	query := url.Values{}
	if conversationID != "" {
		query.Set("channel", conversationID)
	}
	if userID != "" {
		query.Set("user", userID)
	}
	if count > 0 {
		query.Set("count", strconv.Itoa(count))
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var resp model.FilesListResponse
	if err := c.get(ctx, "files.list", query, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// GetFile returns one file's metadata.
func (c *Client) GetFile(ctx context.Context, fileID string) (*model.File, error) {
	query := url.Values{}
	query.Set("file", fileID)

	var resp model.FileInfoResponse
	if err := c.get(ctx, "files.info", query, &resp); err != nil {
		return nil, err
	}
	return resp.File, nil
}
