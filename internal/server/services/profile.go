package services

import (
	"context"
	"errors"
	"time"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
)

// Profile is the account view returned to the authenticated user.
type Profile struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginTime *time.Time `json:"lastLoginTime,omitempty"`
}

// Profile returns the account details for userID. UserNotFound covers the
// case where a valid token outlives its account.
func (s *SessionService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.repos.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.ErrUserNotFound
		}
		return nil, s.fail(ctx, "GetUserProfileError", "error getting user profile", err)
	}
	return &Profile{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		CreatedAt:     user.CreatedAt,
		LastLoginTime: user.LastLoginAt,
	}, nil
}
