package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/clacklabs/clack/pkg/domain/model"
)

func TestUserDisplayLabel(t *testing.T) {
	tests := []struct {
		name     string
		user     *model.User
		expected string
	}{
		{
			name: "display name wins",
			user: &model.User{
				Name:     "alice.example",
				RealName: "Alice Example",
				Profile:  model.UserProfile{DisplayName: "alice"},
			},
			expected: "alice",
		},
		{
			name: "falls back to real name",
			user: &model.User{
				Name:     "alice.example",
				RealName: "Alice Example",
			},
			expected: "Alice Example",
		},
		{
			name:     "falls back to handle",
			user:     &model.User{Name: "alice.example"},
			expected: "alice.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.user.DisplayLabel()).Equal(tt.expected)
		})
	}
}

func TestMessageInThread(t *testing.T) {
	root := &model.Message{TS: "1.0"}
	reply := &model.Message{TS: "2.0", ThreadTS: "1.0"}
	other := &model.Message{TS: "3.0"}

	gt.Bool(t, root.InThread("1.0")).True()
	gt.Bool(t, reply.InThread("1.0")).True()
	gt.Bool(t, other.InThread("1.0")).False()
}

func TestConversationDetailValues(t *testing.T) {
	conv := &model.Conversation{ID: "C001", Name: "general"}
	gt.Value(t, conv.TopicValue()).Equal("")
	gt.Value(t, conv.PurposeValue()).Equal("")

	conv.Topic = &model.ConversationDetail{Value: "daily ops"}
	conv.Purpose = &model.ConversationDetail{Value: "keep the lights on"}
	gt.Value(t, conv.TopicValue()).Equal("daily ops")
	gt.Value(t, conv.PurposeValue()).Equal("keep the lights on")
}

func TestSearchMessageChannelID(t *testing.T) {
	attributed := &model.SearchMessage{
		TS:      "1.0",
		Channel: &model.SearchChannel{ID: "C001", Name: "ops"},
	}
	gt.Value(t, attributed.ChannelID()).Equal("C001")

	unattributed := &model.SearchMessage{TS: "2.0"}
	gt.Value(t, unattributed.ChannelID()).Equal("")
}

func TestSearchMessageAsMessage(t *testing.T) {
	match := &model.SearchMessage{
		TS:        "1.0",
		User:      "U001",
		Username:  "alice",
		Text:      "deploy done",
		Permalink: "https://example.slack.com/archives/C001/p1",
		Channel:   &model.SearchChannel{ID: "C001", Name: "ops"},
	}

	msg := match.AsMessage()
	gt.Value(t, msg.TS).Equal("1.0")
	gt.Value(t, msg.User).Equal("U001")
	gt.Value(t, msg.Text).Equal("deploy done")
	gt.Value(t, msg.Permalink).Equal(match.Permalink)
}
