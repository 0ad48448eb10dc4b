package domain

// Role is a grantable guild role as seen through the Role Directory.
// Position is Discord's rank within the guild role list; a member can only
// assign roles that sit below their own highest role.
type Role struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}
