package model

// PinItem is one pinned item from pins.list.
type PinItem struct {
	Channel   string   `json:"channel"`
	Created   int64    `json:"created"`
	CreatedBy string   `json:"created_by"`
	Type      string   `json:"type"`
	Message   *Message `json:"message,omitempty"`
}

type PinsListResponse struct {
	Items []*PinItem `json:"items"`
}
