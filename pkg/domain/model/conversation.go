package model

// Conversation is a channel, group, IM or MPIM as returned by
// conversations.list / conversations.info.
type Conversation struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	IsChannel  bool                `json:"is_channel,omitempty"`
	IsGroup    bool                `json:"is_group,omitempty"`
	IsIM       bool                `json:"is_im,omitempty"`
	IsMPIM     bool                `json:"is_mpim,omitempty"`
	IsPrivate  bool                `json:"is_private,omitempty"`
	IsArchived bool                `json:"is_archived,omitempty"`
	Topic      *ConversationDetail `json:"topic,omitempty"`
	Purpose    *ConversationDetail `json:"purpose,omitempty"`
	NumMembers int                 `json:"num_members,omitempty"`
}

// ConversationDetail is the shared shape of topic and purpose.
type ConversationDetail struct {
	Value   string `json:"value"`
	Creator string `json:"creator,omitempty"`
	LastSet int64  `json:"last_set,omitempty"`
}

// TopicValue returns the topic text, or "" when unset.
func (x *Conversation) TopicValue() string {
	if x.Topic == nil {
		return ""
	}
	return x.Topic.Value
}

// PurposeValue returns the purpose text, or "" when unset.
func (x *Conversation) PurposeValue() string {
	if x.Purpose == nil {
		return ""
	}
	return x.Purpose.Value
}

type ConversationsListResponse struct {
	Channels         []*Conversation   `json:"channels"`
	ResponseMetadata *ResponseMetadata `json:"response_metadata,omitempty"`
}

type ConversationInfoResponse struct {
	Channel *Conversation `json:"channel"`
}

// ResponseMetadata carries the opaque cursor for paginated listings. An
// absent or empty next_cursor signals the last page.
type ResponseMetadata struct {
	NextCursor string `json:"next_cursor"`
}
