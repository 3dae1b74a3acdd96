package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	"github.com/dforero/ecobarrio-api/internal/domain/repository"
)

type ResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewResetTokenRepository(pool *pgxpool.Pool) *ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

func (r *ResetTokenRepository) Create(ctx context.Context, t *entity.PasswordResetToken) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO password_reset_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, t.UserID, t.TokenHash, t.ExpiresAt)
	return row.Scan(&t.ID, &t.CreatedAt)
}

// Consume marks the matching live token as used in a single statement, so
// two racing redemptions cannot both succeed.
func (r *ResetTokenRepository) Consume(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error) {
	t := &entity.PasswordResetToken{}
	err := r.pool.QueryRow(ctx, `
		UPDATE password_reset_tokens
		SET consumed_at = now()
		WHERE token_hash = $1 AND consumed_at IS NULL AND expires_at > now()
		RETURNING id, user_id, token_hash, expires_at, consumed_at, created_at
	`, tokenHash).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.ConsumedAt, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

var _ repository.ResetTokenRepository = (*ResetTokenRepository)(nil)
