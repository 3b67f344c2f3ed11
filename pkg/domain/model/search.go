package model

// SearchMessage is a message match from search.messages. Unlike
// conversations.history results it carries channel attribution and the
// author's handle.
type SearchMessage struct {
	Type      string         `json:"type,omitempty"`
	Channel   *SearchChannel `json:"channel,omitempty"`
	User      string         `json:"user,omitempty"`
	Username  string         `json:"username,omitempty"`
	TS        string         `json:"ts"`
	Text      string         `json:"text"`
	Permalink string         `json:"permalink,omitempty"`
}

type SearchChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChannelID returns the channel attribution, or "" when the match carries
// none (e.g. a DM the searching user cannot attribute).
func (x *SearchMessage) ChannelID() string {
	if x.Channel == nil {
		return ""
	}
	return x.Channel.ID
}

// AsMessage projects the search match onto the canonical message shape so it
// can share the message cache table.
func (x *SearchMessage) AsMessage() *Message {
	return &Message{
		TS:        x.TS,
		User:      x.User,
		Text:      x.Text,
		Permalink: x.Permalink,
	}
}

type SearchPagination struct {
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	PageCount  int `json:"page_count"`
	First      int `json:"first"`
	Last       int `json:"last"`
}

type SearchMessageMatches struct {
	Total      int               `json:"total"`
	Matches    []*SearchMessage  `json:"matches"`
	Pagination *SearchPagination `json:"pagination,omitempty"`
}

type SearchMessagesResponse struct {
	Query    string               `json:"query"`
	Messages SearchMessageMatches `json:"messages"`
}

// File is a file match from search.files.
type File struct {
	ID         string `json:"id"`
	Created    int64  `json:"created"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Mimetype   string `json:"mimetype"`
	Filetype   string `json:"filetype"`
	PrettyType string `json:"pretty_type"`
	User       string `json:"user"`
	Size       int64  `json:"size"`
	Permalink  string `json:"permalink,omitempty"`
}

type SearchFileMatches struct {
	Total      int               `json:"total"`
	Matches    []*File           `json:"matches"`
	Pagination *SearchPagination `json:"pagination,omitempty"`
}

type SearchFilesResponse struct {
	Query string            `json:"query"`
	Files SearchFileMatches `json:"files"`
}

type SearchAllResponse struct {
	Query    string               `json:"query"`
	Messages SearchMessageMatches `json:"messages"`
	Files    SearchFileMatches    `json:"files"`
}
