package entity

import "time"

// PasswordResetToken is the persisted, single-use grant behind a reset link.
// Only the SHA-256 digest of the emailed value is stored; ConsumedAt is set
// exactly once on redemption.
type PasswordResetToken struct {
	ID         int64
	UserID     string
	TokenHash  string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Usable reports whether the token can still redeem a password reset.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.ConsumedAt == nil && now.Before(t.ExpiresAt)
}
