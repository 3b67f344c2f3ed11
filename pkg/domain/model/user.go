package model

// User is a workspace member as returned by users.list / users.info.
type User struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	RealName string      `json:"real_name,omitempty"`
	Profile  UserProfile `json:"profile"`
	Deleted  bool        `json:"deleted"`
	IsBot    bool        `json:"is_bot"`
	IsAdmin  bool        `json:"is_admin,omitempty"`
	IsOwner  bool        `json:"is_owner,omitempty"`
	TZ       string      `json:"tz,omitempty"`
}

type UserProfile struct {
	Email       string `json:"email,omitempty"`
	StatusEmoji string `json:"status_emoji,omitempty"`
	StatusText  string `json:"status_text,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Image72     string `json:"image_72,omitempty"`
}

// DisplayLabel returns the best human-readable name for the user.
func (x *User) DisplayLabel() string {
	if x.Profile.DisplayName != "" {
		return x.Profile.DisplayName
	}
	if x.RealName != "" {
		return x.RealName
	}
	return x.Name
}

type UsersListResponse struct {
	Members          []*User           `json:"members"`
	ResponseMetadata *ResponseMetadata `json:"response_metadata,omitempty"`
}

type UserInfoResponse struct {
	User *User `json:"user"`
}

type UserProfileResponse struct {
	Profile UserProfile `json:"profile"`
}
