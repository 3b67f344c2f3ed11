package model

// AuthIdentity is the auth.test response payload. TeamID becomes the
// workspace partition key for every cached record.
type AuthIdentity struct {
	URL    string `json:"url"`
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
	BotID  string `json:"bot_id,omitempty"`
}
