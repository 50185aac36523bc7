package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/telemedika/teleconsult-api/pkg/errors"
)

func (r *tokenRepository) StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO password_reset_tokens (user_id, token, expires_at, created_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (user_id) DO UPDATE
			SET token = $2, expires_at = $3, used_at = NULL, created_at = NOW()
		`
		_, err := tx.ExecContext(ctx, query, userID, token, expiry)
		return err
	})
}

// ConsumeResetToken validates a token and marks it used in one transaction,
// so a token can complete at most one reset.
func (r *tokenRepository) ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE password_reset_tokens
			SET used_at = NOW()
			WHERE token = $1
			AND expires_at > NOW()
			AND used_at IS NULL
			RETURNING user_id
		`
		if err := tx.GetContext(ctx, &userID, query, token); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.Validation("invalid or expired reset token", err)
			}
			return fmt.Errorf("failed to consume reset token: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}
