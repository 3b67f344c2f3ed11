package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/clacklabs/clack/pkg/domain/types"
)

func TestLooksLikeUserID(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"U123456", true},
		{"W123456", true},
		{"U1", true},
		{"U", false},
		{"", false},
		{"alice", false},
		{"u123456", false},
		{"C123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gt.Value(t, types.LooksLikeUserID(tt.input)).Equal(tt.expected)
		})
	}
}

func TestLooksLikeConversationID(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"C123456", true},
		{"D123456", true},
		{"G123456", true},
		{"C1", true},
		{"C", false},
		{"", false},
		{"general", false},
		{"c123456", false},
		{"U123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gt.Value(t, types.LooksLikeConversationID(tt.input)).Equal(tt.expected)
		})
	}
}

func TestWorkspaceIDValidate(t *testing.T) {
	gt.NoError(t, types.WorkspaceID("T0001").Validate())
	gt.Error(t, types.WorkspaceID("").Validate())
}
