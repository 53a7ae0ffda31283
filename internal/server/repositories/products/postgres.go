package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
	"github.com/lotfi029/FreelancerAssignment/internal/dbx"
	"github.com/lotfi029/FreelancerAssignment/internal/server/models"
)

// PostgresRepository implements product persistence over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, category, product_code, image, price, minimum_quantity, discount, created_by, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (name, category, product_code, image, price, minimum_quantity, discount, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Category, product.ProductCode, product.Image,
		product.Price, product.MinimumQuantity, product.Discount, product.CreatedBy,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return product, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return product, nil
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`
	return r.selectMany(ctx, query)
}

func (r *PostgresRepository) SelectByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	return r.selectMany(ctx, query, category)
}

func (r *PostgresRepository) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY category
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, image = $4, price = $5,
			minimum_quantity = $6, discount = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`
	now := time.Now()
	res, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Category, product.Image,
		product.Price, product.MinimumQuantity, product.Discount, now)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	product.UpdatedAt = &now
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE products
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	var updated sql.NullTime

	err := row.Scan(&product.ID, &product.Name, &product.Category, &product.ProductCode,
		&product.Image, &product.Price, &product.MinimumQuantity, &product.Discount,
		&product.CreatedBy, &product.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}
	if updated.Valid {
		product.UpdatedAt = &updated.Time
	}
	return product, nil
}
