// Package refreshtokens declares the persistence contract for refresh
// tokens. Revocation is an update, never a delete: consumed and revoked
// tokens stay behind as an audit trail.
package refreshtokens

import (
	"context"
	"time"

	"github.com/lotfi029/FreelancerAssignment/internal/server/models"
)

// Repository defines operations for issuing, listing, and revoking refresh
// tokens.
type Repository interface {
	// Create stores a newly issued refresh token and fills in its id.
	Create(ctx context.Context, token *models.RefreshToken) error

	// ListForUser returns every refresh token ever issued to the user,
	// active or not, in insertion order.
	ListForUser(ctx context.Context, userID string) ([]*models.RefreshToken, error)

	// Revoke stamps the token revoked at the given time and clamps its
	// expiry to the same instant.
	Revoke(ctx context.Context, id int64, at time.Time) error
}
