package models

import "time"

// User is the account aggregate. RefreshTokens holds the user's issued
// refresh tokens when the caller loaded them; ordering is append-only and
// carries no meaning.
type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string
	CreatedAt     time.Time
	LastLoginAt   *time.Time
	RefreshTokens []*RefreshToken
}

// FindActiveRefreshToken scans the loaded token collection for the entry
// matching value that is still active at now. Tokens carry 512 bits of
// entropy, so at most one match is expected and the first wins.
func (u *User) FindActiveRefreshToken(value string, now time.Time) *RefreshToken {
	for _, t := range u.RefreshTokens {
		if t.Token == value && t.IsActive(now) {
			return t
		}
	}
	return nil
}
