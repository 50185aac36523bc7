package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/telemedika/teleconsult-api/internal/model"
	apperrors "github.com/telemedika/teleconsult-api/pkg/errors"
)

func (r *doctorRepository) Get(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	query := `
		SELECT user_id, specialty, license_number
		FROM doctor_profiles
		WHERE user_id = $1
	`
	var profile model.DoctorProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor profile", err)
		}
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return &profile, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.DoctorListing, error) {
	query := `
		SELECT d.user_id, u.username, d.specialty
		FROM doctor_profiles d
		JOIN users u ON u.id = d.user_id
		ORDER BY u.username ASC
	`
	var doctors []*model.DoctorListing
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
