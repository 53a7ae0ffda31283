// Package products declares the persistence contract for the catalog.
// Soft-deleted rows are excluded from every read.
package products

import (
	"context"
	"time"

	"github.com/lotfi029/FreelancerAssignment/internal/server/models"
)

// Repository defines the product persistence operations.
type Repository interface {
	// Create inserts a new product and returns it with the generated id.
	Create(ctx context.Context, product *models.Product) (*models.Product, error)

	// FindByID looks a non-deleted product up by primary key;
	// apperrors.ErrNotFound when absent or soft-deleted.
	FindByID(ctx context.Context, id string) (*models.Product, error)

	// SelectAll returns all non-deleted products.
	SelectAll(ctx context.Context) ([]*models.Product, error)

	// SelectByCategory returns all non-deleted products in the category.
	SelectByCategory(ctx context.Context, category string) ([]*models.Product, error)

	// Categories returns the distinct categories of non-deleted products.
	Categories(ctx context.Context) ([]string, error)

	// Update persists the product's mutable fields and stamps updated_at.
	Update(ctx context.Context, product *models.Product) error

	// SoftDelete stamps deleted_at; the row is kept.
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
