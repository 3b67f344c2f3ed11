package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// WorkspaceID identifies a Slack workspace (team). It partitions all cached
// data; records are never compared or merged across workspaces.
type WorkspaceID string

func (x WorkspaceID) String() string { return string(x) }

// Validate checks if the WorkspaceID is usable as a cache partition key.
func (x WorkspaceID) Validate() error {
	if x == "" {
		return goerr.New("workspace ID cannot be empty")
	}
	return nil
}

// UserID is an opaque Slack user identifier (U... or W... for enterprise).
type UserID string

func (x UserID) String() string { return string(x) }

// ConversationID is an opaque conversation identifier. Public channels start
// with C, IMs with D, and legacy private groups with G.
type ConversationID string

func (x ConversationID) String() string { return string(x) }

// MessageTS is the message timestamp string used by Slack as a message key
// within a conversation (e.g. "1234567890.123456").
type MessageTS string

func (x MessageTS) String() string { return string(x) }

// LooksLikeUserID reports whether s has the shape of a canonical user ID.
func LooksLikeUserID(s string) bool {
	return len(s) > 1 && (strings.HasPrefix(s, "U") || strings.HasPrefix(s, "W"))
}

// LooksLikeConversationID reports whether s has the shape of a canonical
// conversation ID.
func LooksLikeConversationID(s string) bool {
	if len(s) <= 1 {
		return false
	}
	switch s[0] {
	case 'C', 'D', 'G':
		return true
	}
	return false
}
