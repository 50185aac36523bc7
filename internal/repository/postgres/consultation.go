package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/telemedika/teleconsult-api/internal/model"
	apperrors "github.com/telemedika/teleconsult-api/pkg/errors"
)

const uniqueDoctorSlot = "consultations_doctor_id_scheduled_at_key"

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	query := `
		INSERT INTO consultations (
			id, patient_id, doctor_id, scheduled_at, notes, duration_minutes,
			status, payment_amount_cents, payment_status, video_link,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	consultation.ID = uuid.New()
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		consultation.ID,
		consultation.PatientID,
		consultation.DoctorID,
		consultation.ScheduledAt,
		consultation.Notes,
		consultation.DurationMinutes,
		consultation.Status,
		consultation.PaymentAmountCents,
		consultation.PaymentStatus,
		consultation.VideoLink,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, uniqueDoctorSlot) {
			return apperrors.Conflict("doctor already booked at this time", err)
		}
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

func (r *consultationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Consultation, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_at, notes, duration_minutes,
			   status, payment_amount_cents, payment_status, video_link,
			   created_at, updated_at
		FROM consultations
		WHERE id = $1
	`
	var consultation model.Consultation
	if err := r.db.GetContext(ctx, &consultation, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("consultation", err)
		}
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return &consultation, nil
}

// Update writes mutable fields. The video link is deliberately excluded: it
// is assigned once at creation and never rewritten.
func (r *consultationRepository) Update(ctx context.Context, consultation *model.Consultation) error {
	query := `
		UPDATE consultations
		SET status = $1, notes = $2, payment_status = $3, updated_at = $4
		WHERE id = $5
	`
	consultation.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		consultation.Status,
		consultation.Notes,
		consultation.PaymentStatus,
		consultation.UpdatedAt,
		consultation.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update consultation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("consultation", nil)
	}

	return nil
}

func (r *consultationRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_at, notes, duration_minutes,
			   status, payment_amount_cents, payment_status, video_link,
			   created_at, updated_at
		FROM consultations
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`
	var consultations []*model.Consultation
	if err := r.db.SelectContext(ctx, &consultations, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient consultations: %w", err)
	}
	return consultations, nil
}

func (r *consultationRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Consultation, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_at, notes, duration_minutes,
			   status, payment_amount_cents, payment_status, video_link,
			   created_at, updated_at
		FROM consultations
		WHERE doctor_id = $1
		ORDER BY scheduled_at DESC
	`
	var consultations []*model.Consultation
	if err := r.db.SelectContext(ctx, &consultations, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor consultations: %w", err)
	}
	return consultations, nil
}
