package model

// Message is a single conversation message from conversations.history or
// conversations.replies.
type Message struct {
	TS        string     `json:"ts"`
	User      string     `json:"user,omitempty"`
	Text      string     `json:"text"`
	ThreadTS  string     `json:"thread_ts,omitempty"`
	Permalink string     `json:"permalink,omitempty"`
	Reactions []Reaction `json:"reactions,omitempty"`
}

type Reaction struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Users []string `json:"users,omitempty"`
}

// InThread reports whether the message belongs to the thread rooted at ts,
// counting the root message itself.
func (x *Message) InThread(ts string) bool {
	return x.TS == ts || x.ThreadTS == ts
}

type MessagesResponse struct {
	Messages         []*Message        `json:"messages"`
	HasMore          bool              `json:"has_more,omitempty"`
	ResponseMetadata *ResponseMetadata `json:"response_metadata,omitempty"`
}

type PostMessageResponse struct {
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}
