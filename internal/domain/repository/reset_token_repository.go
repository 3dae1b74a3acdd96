package repository

import (
	"context"

	"github.com/dforero/ecobarrio-api/internal/domain/entity"
)

// ResetTokenRepository persists single-use password-reset tokens.
type ResetTokenRepository interface {
	Create(ctx context.Context, t *entity.PasswordResetToken) error
	// Consume atomically marks the unexpired, unconsumed token matching
	// tokenHash as used and returns it. It returns (nil, nil) when no such
	// token exists, so concurrent redemptions have exactly one winner.
	Consume(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error)
}
