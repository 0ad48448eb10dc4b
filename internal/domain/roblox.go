package domain

// RobloxAccount is the result of a username lookup against the Roblox Users API.
type RobloxAccount struct {
	ID       int64  `json:"id"`
	Username string `json:"name"`
}

// RobloxProfile is the public profile of a Roblox account. Description is the
// free-text "About" section the challenge phrase must appear in.
type RobloxProfile struct {
	ID          int64  `json:"id"`
	Username    string `json:"name"`
	Description string `json:"description"`
}
