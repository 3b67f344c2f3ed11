package cache

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/clacklabs/clack/pkg/domain/model"
)

// Cached rows hold denormalized index columns for filtering plus the full
// serialized snapshot. The snapshot is the source of truth; index columns
// are only a projection.

type cachedUser struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	RealName    string `json:"real_name,omitempty"`
	Deleted     bool   `json:"deleted"`
	IsBot       bool   `json:"is_bot"`
	IsAdmin     bool   `json:"is_admin,omitempty"`
	IsOwner     bool   `json:"is_owner,omitempty"`
	TZ          string `json:"tz,omitempty"`

	ProfileEmail       string `json:"profile_email,omitempty"`
	ProfileDisplayName string `json:"profile_display_name,omitempty"`
	ProfileStatusEmoji string `json:"profile_status_emoji,omitempty"`
	ProfileStatusText  string `json:"profile_status_text,omitempty"`
	ProfileImage72     string `json:"profile_image_72,omitempty"`

	Raw       json.RawMessage `json:"raw"`
	CachedAt  time.Time       `json:"cached_at"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`
}

func newCachedUser(workspaceID string, user *model.User, now time.Time) (*cachedUser, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize user snapshot", goerr.V("id", user.ID))
	}
	return &cachedUser{
		ID:                 user.ID,
		WorkspaceID:        workspaceID,
		Name:               user.Name,
		RealName:           user.RealName,
		Deleted:            user.Deleted,
		IsBot:              user.IsBot,
		IsAdmin:            user.IsAdmin,
		IsOwner:            user.IsOwner,
		TZ:                 user.TZ,
		ProfileEmail:       user.Profile.Email,
		ProfileDisplayName: user.Profile.DisplayName,
		ProfileStatusEmoji: user.Profile.StatusEmoji,
		ProfileStatusText:  user.Profile.StatusText,
		ProfileImage72:     user.Profile.Image72,
		Raw:                raw,
		CachedAt:           now,
	}, nil
}

func (x *cachedUser) toUser() (*model.User, error) {
	var user model.User
	if err := json.Unmarshal(x.Raw, &user); err != nil {
		return nil, goerr.Wrap(err, "failed to deserialize cached user", goerr.V("id", x.ID))
	}
	return &user, nil
}

type cachedConversation struct {
	ID           string `json:"id"`
	WorkspaceID  string `json:"workspace_id"`
	Name         string `json:"name"`
	IsChannel    bool   `json:"is_channel,omitempty"`
	IsGroup      bool   `json:"is_group,omitempty"`
	IsIM         bool   `json:"is_im,omitempty"`
	IsMPIM       bool   `json:"is_mpim,omitempty"`
	IsPrivate    bool   `json:"is_private,omitempty"`
	IsArchived   bool   `json:"is_archived"`
	TopicValue   string `json:"topic_value,omitempty"`
	PurposeValue string `json:"purpose_value,omitempty"`
	NumMembers   int    `json:"num_members,omitempty"`

	Raw       json.RawMessage `json:"raw"`
	CachedAt  time.Time       `json:"cached_at"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`
}

func newCachedConversation(workspaceID string, conv *model.Conversation, now time.Time) (*cachedConversation, error) {
	raw, err := json.Marshal(conv)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize conversation snapshot", goerr.V("id", conv.ID))
	}
	return &cachedConversation{
		ID:           conv.ID,
		WorkspaceID:  workspaceID,
		Name:         conv.Name,
		IsChannel:    conv.IsChannel,
		IsGroup:      conv.IsGroup,
		IsIM:         conv.IsIM,
		IsMPIM:       conv.IsMPIM,
		IsPrivate:    conv.IsPrivate,
		IsArchived:   conv.IsArchived,
		TopicValue:   conv.TopicValue(),
		PurposeValue: conv.PurposeValue(),
		NumMembers:   conv.NumMembers,
		Raw:          raw,
		CachedAt:     now,
	}, nil
}

func (x *cachedConversation) toConversation() (*model.Conversation, error) {
	var conv model.Conversation
	if err := json.Unmarshal(x.Raw, &conv); err != nil {
		return nil, goerr.Wrap(err, "failed to deserialize cached conversation", goerr.V("id", x.ID))
	}
	return &conv, nil
}

type cachedMessage struct {
	ConversationID string `json:"conversation_id"`
	WorkspaceID    string `json:"workspace_id"`
	TS             string `json:"ts"`
	UserID         string `json:"user_id,omitempty"`
	Text           string `json:"text"`
	ThreadTS       string `json:"thread_ts,omitempty"`
	Permalink      string `json:"permalink,omitempty"`

	Raw       json.RawMessage `json:"raw"`
	CachedAt  time.Time       `json:"cached_at"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`
}

func newCachedMessage(workspaceID, conversationID string, msg *model.Message, now time.Time) (*cachedMessage, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize message snapshot", goerr.V("ts", msg.TS))
	}
	return &cachedMessage{
		ConversationID: conversationID,
		WorkspaceID:    workspaceID,
		TS:             msg.TS,
		UserID:         msg.User,
		Text:           msg.Text,
		ThreadTS:       msg.ThreadTS,
		Permalink:      msg.Permalink,
		Raw:            raw,
		CachedAt:       now,
	}, nil
}

func (x *cachedMessage) toMessage() (*model.Message, error) {
	var msg model.Message
	if err := json.Unmarshal(x.Raw, &msg); err != nil {
		return nil, goerr.Wrap(err, "failed to deserialize cached message", goerr.V("ts", x.TS))
	}
	return &msg, nil
}
