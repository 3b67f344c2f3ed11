package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"gopkg.in/yaml.v3"

	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/output"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected output.Format
	}{
		{"human", output.FormatHuman},
		{"json", output.FormatJSON},
		{"yaml", output.FormatYAML},
		{"JSON", output.FormatJSON},
	}
	for _, tt := range tests {
		format, err := output.ParseFormat(tt.input)
		gt.NoError(t, err).Required()
		gt.Value(t, format).Equal(tt.expected)
	}

	_, err := output.ParseFormat("xml")
	gt.Error(t, err)
	gt.Bool(t, strings.Contains(err.Error(), "xml")).True()
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	users := []*model.User{{ID: "U001", Name: "alice"}}
	gt.NoError(t, output.Render(&buf, output.FormatJSON, users)).Required()

	var decoded []map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &decoded)).Required()
	gt.Array(t, decoded).Length(1).Required()
	gt.Value(t, decoded[0]["id"]).Equal("U001")
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	conv := &model.Conversation{ID: "C001", Name: "general"}
	gt.NoError(t, output.Render(&buf, output.FormatYAML, conv)).Required()

	var decoded map[string]any
	gt.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded)).Required()
	gt.Value(t, decoded["id"]).Equal("C001")
}

func TestHumanRenderers(t *testing.T) {
	var buf bytes.Buffer
	output.Users(&buf, []*model.User{
		{ID: "U001", Name: "alice", Profile: model.UserProfile{DisplayName: "Alice"}},
		{ID: "U002", Name: "robot", IsBot: true},
	})
	out := buf.String()
	gt.Bool(t, strings.Contains(out, "U001")).True()
	gt.Bool(t, strings.Contains(out, "alice")).True()

	buf.Reset()
	output.Conversations(&buf, []*model.Conversation{
		{ID: "C001", Name: "general", Topic: &model.ConversationDetail{Value: "daily"}},
	})
	gt.Bool(t, strings.Contains(buf.String(), "general")).True()

	buf.Reset()
	output.Messages(&buf, []*model.Message{
		{TS: "1700000001.000100", User: "U001", Text: "hello"},
	})
	gt.Bool(t, strings.Contains(buf.String(), "hello")).True()

	buf.Reset()
	output.SearchMessages(&buf, []*model.SearchMessage{
		{TS: "1700000001.000100", Username: "alice", Text: "deploy done",
			Channel: &model.SearchChannel{ID: "C001", Name: "ops"}},
	})
	gt.Bool(t, strings.Contains(buf.String(), "deploy done")).True()
}
