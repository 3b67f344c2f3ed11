package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/clacklabs/clack/pkg/domain/model"
)

var (
	nameColor = color.New(color.FgCyan, color.Bold)
	idColor   = color.New(color.FgHiBlack)
	flagColor = color.New(color.FgYellow)
	textColor = color.New(color.FgWhite)
)

// Users renders a user listing.
func Users(w io.Writer, users []*model.User) {
	for _, user := range users {
		nameColor.Fprintf(w, "@%s", user.Name)
		fmt.Fprint(w, "  ")
		idColor.Fprint(w, user.ID)
		if user.RealName != "" {
			fmt.Fprintf(w, "  %s", user.RealName)
		}
		if user.IsBot {
			fmt.Fprint(w, "  ")
			flagColor.Fprint(w, "[bot]")
		}
		if user.Deleted {
			fmt.Fprint(w, "  ")
			flagColor.Fprint(w, "[deactivated]")
		}
		fmt.Fprintln(w)
	}
}

// Conversations renders a conversation listing.
func Conversations(w io.Writer, convs []*model.Conversation) {
	for _, conv := range convs {
		nameColor.Fprintf(w, "#%s", conv.Name)
		fmt.Fprint(w, "  ")
		idColor.Fprint(w, conv.ID)
		if conv.IsPrivate {
			fmt.Fprint(w, "  ")
			flagColor.Fprint(w, "[private]")
		}
		if conv.IsArchived {
			fmt.Fprint(w, "  ")
			flagColor.Fprint(w, "[archived]")
		}
		if topic := conv.TopicValue(); topic != "" {
			fmt.Fprintf(w, "  %s", topic)
		}
		fmt.Fprintln(w)
	}
}

// Messages renders a message listing.
func Messages(w io.Writer, msgs []*model.Message) {
	for _, msg := range msgs {
		idColor.Fprint(w, msg.TS)
		if msg.User != "" {
			fmt.Fprint(w, "  ")
			nameColor.Fprint(w, msg.User)
		}
		fmt.Fprint(w, "  ")
		textColor.Fprint(w, msg.Text)
		fmt.Fprintln(w)
	}
}

// Files renders a file listing.
func Files(w io.Writer, files []*model.File) {
	for _, file := range files {
		nameColor.Fprint(w, file.Name)
		fmt.Fprint(w, "  ")
		idColor.Fprint(w, file.ID)
		if file.PrettyType != "" {
			fmt.Fprintf(w, "  %s", file.PrettyType)
		}
		if file.User != "" {
			fmt.Fprint(w, "  ")
			flagColor.Fprint(w, file.User)
		}
		fmt.Fprintln(w)
	}
}

// SearchMessages renders message search matches with channel attribution.
func SearchMessages(w io.Writer, msgs []*model.SearchMessage) {
	for _, msg := range msgs {
		if msg.Channel != nil {
			nameColor.Fprintf(w, "#%s", msg.Channel.Name)
			fmt.Fprint(w, "  ")
		}
		idColor.Fprint(w, msg.TS)
		if msg.Username != "" {
			fmt.Fprintf(w, "  @%s", msg.Username)
		}
		fmt.Fprint(w, "  ")
		textColor.Fprint(w, msg.Text)
		fmt.Fprintln(w)
	}
}
