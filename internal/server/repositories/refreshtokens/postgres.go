package refreshtokens

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lotfi029/FreelancerAssignment/internal/dbx"
	"github.com/lotfi029/FreelancerAssignment/internal/server/models"
)

// PostgresRepository implements refresh-token persistence over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		token.UserID, token.Token, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, created_at, expires_at, revoked_at
		FROM refresh_tokens
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.RefreshToken
	for rows.Next() {
		item := &models.RefreshToken{}
		var revoked sql.NullTime
		if err := rows.Scan(&item.ID, &item.UserID, &item.Token, &item.CreatedAt, &item.ExpiresAt, &revoked); err != nil {
			return nil, err
		}
		if revoked.Valid {
			item.RevokedAt = &revoked.Time
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Revoke writes both revoked_at and expires_at so a revoked token is also
// reported as expired by any reader that checks expiry alone.
func (r *PostgresRepository) Revoke(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $2, expires_at = $2
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
