package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/utils/logging"
)

// validDuringValues are the accepted periods for the during: search modifier.
var validDuringValues = []string{"today", "yesterday", "week", "month", "year"}

// ValidateDuring checks a during: period value.
func ValidateDuring(value string) error {
	lower := strings.ToLower(value)
	for _, v := range validDuringValues {
		if lower == v {
			return nil
		}
	}
	return goerr.New("invalid during value '"+value+"': valid values are "+strings.Join(validDuringValues, ", "),
		goerr.V("value", value))
}

// SearchFilters are the optional modifiers appended to a search query.
type SearchFilters struct {
	FromUser  string
	ToUser    string
	InChannel string
	Has       string
	After     string
	Before    string
	During    string
}

// BuildSearchQuery assembles a Slack search query string from free text and
// modifiers.
func BuildSearchQuery(text string, f SearchFilters) string {
	var b strings.Builder
	b.WriteString(text)

	appendMod := func(mod, value string) {
		if value != "" {
			b.WriteString(" " + mod + ":" + value)
		}
	}
	appendMod("from", f.FromUser)
	appendMod("to", f.ToUser)
	appendMod("in", f.InChannel)
	appendMod("has", f.Has)
	appendMod("after", f.After)
	appendMod("before", f.Before)
	appendMod("during", f.During)

	return b.String()
}

func searchQuery(query string, count, page int) url.Values {
	params := url.Values{}
	params.Set("query", query)
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}

// SearchMessages runs a message search. Matches carrying channel attribution
// are written through to the message cache.
func (c *Client) SearchMessages(ctx context.Context, query string, count, page int) (*model.SearchMessagesResponse, error) {
	var resp model.SearchMessagesResponse
	if err := c.get(ctx, "search.messages", searchQuery(query, count, page), &resp); err != nil {
		return nil, err
	}
	c.CacheSearchMatches(ctx, resp.Messages.Matches)
	return &resp, nil
}

// SearchFiles runs a file search. Files are not cached.
func (c *Client) SearchFiles(ctx context.Context, query string, count, page int) (*model.SearchFilesResponse, error) {
	var resp model.SearchFilesResponse
	if err := c.get(ctx, "search.files", searchQuery(query, count, page), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchAll runs a combined message and file search.
func (c *Client) SearchAll(ctx context.Context, query string, count, page int) (*model.SearchAllResponse, error) {
	var resp model.SearchAllResponse
	if err := c.get(ctx, "search.all", searchQuery(query, count, page), &resp); err != nil {
		return nil, err
	}
	c.CacheSearchMatches(ctx, resp.Messages.Matches)
	return &resp, nil
}

// CacheSearchMatches writes search matches through to the message cache,
// grouped by channel attribution. Matches without one are skipped. Best
// effort, like every other write-through.
func (c *Client) CacheSearchMatches(ctx context.Context, matches []*model.SearchMessage) {
	if c.store == nil || len(matches) == 0 {
		return
	}
	ws, err := c.WorkspaceID()
	if err != nil {
		logging.From(ctx).Debug("skipping search cache write", "error", err)
		return
	}

	byChannel := make(map[string][]*model.Message)
	for _, match := range matches {
		channelID := match.ChannelID()
		if channelID == "" {
			continue
		}
		byChannel[channelID] = append(byChannel[channelID], match.AsMessage())
	}
	for channelID, msgs := range byChannel {
		c.cacheMessages(ctx, ws, channelID, msgs)
	}
}
