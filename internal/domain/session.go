package domain

import "time"

// VerificationSession is a pending challenge issued to a Discord user.
// PK: user_id. At most one live session per user — a new Issue overwrites
// any prior unconfirmed session (last write wins).
type VerificationSession struct {
	SessionID      string    `json:"id" dynamodbav:"session_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	GuildID        string    `json:"guild_id" dynamodbav:"guild_id"`
	RobloxUsername string    `json:"roblox_username" dynamodbav:"roblox_username"`
	Phrase         string    `json:"phrase" dynamodbav:"phrase"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
}
