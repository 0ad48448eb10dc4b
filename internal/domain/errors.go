package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so the command layer can map to user-facing replies
// without leaking infrastructure details.
var (
	ErrNotFound              = errors.New("not found")
	ErrNotConfigured         = errors.New("guild not configured")
	ErrNoPendingVerification = errors.New("no pending verification")
	ErrDMDeliveryFailed      = errors.New("direct message delivery failed")
	ErrRobloxUserNotFound    = errors.New("roblox user not found")
	ErrPhraseNotFound        = errors.New("phrase not found in profile")
	ErrRoleMissing           = errors.New("verified role missing")
	ErrRobloxUnavailable     = errors.New("roblox service unavailable")
)
