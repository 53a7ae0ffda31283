package models

import "time"

// RefreshToken is one issued refresh token. Rows are never deleted: rotation
// and revocation stamp RevokedAt, keeping an audit trail of every issuance.
type RefreshToken struct {
	ID        int64
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// IsActive reports whether the token is usable at now: not revoked and not
// past its expiry.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// Revoke stamps the token revoked at now and clamps its expiry to now, so
// code that only checks expiry also sees the token as dead.
func (t *RefreshToken) Revoke(now time.Time) {
	t.RevokedAt = &now
	t.ExpiresAt = now
}
