// Package users declares the persistence contract for user accounts.
package users

import (
	"context"
	"time"

	"github.com/lotfi029/FreelancerAssignment/internal/server/models"
)

// Repository defines the user persistence operations. Lookups return
// apperrors.ErrNotFound for missing rows rather than an SQL error.
type Repository interface {
	// Create inserts a new user and returns it with the generated id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByID looks a user up by primary key.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmailOrUsername matches login against either the username or the
	// email column, exact match.
	FindByEmailOrUsername(ctx context.Context, login string) (*models.User, error)

	// UsernameExists reports whether a user with the given username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateLastLogin stamps the user's last successful login time.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}
