package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/telemedika/teleconsult-api/internal/model"
	apperrors "github.com/telemedika/teleconsult-api/pkg/errors"
)

const insertUserQuery = `
	INSERT INTO users (
		id, username, email, password_hash, is_patient, is_doctor,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func insertUser(ctx context.Context, tx *sqlx.Tx, user *model.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, insertUserQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsPatient,
		user.IsDoctor,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return userInsertError(err)
}

// userInsertError maps a users-table unique violation to the same validation
// failure the registration pre-check reports, so a duplicate that races past
// the pre-check surfaces with one contract.
func userInsertError(err error) error {
	if isUniqueViolation(err, "") {
		return apperrors.Validation("username or email already taken", err)
	}
	return err
}

// CreatePatient persists the user and the linked patient profile in one
// transaction.
func (r *userRepository) CreatePatient(ctx context.Context, user *model.User, profile *model.PatientProfile) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}

		profile.UserID = user.ID
		query := `
			INSERT INTO patient_profiles (user_id, phone_number, address)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, profile.UserID, profile.PhoneNumber, profile.Address); err != nil {
			return fmt.Errorf("failed to create patient profile: %w", err)
		}
		return nil
	})
}

// CreateDoctor persists the user and the linked doctor profile in one
// transaction.
func (r *userRepository) CreateDoctor(ctx context.Context, user *model.User, profile *model.DoctorProfile) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}

		profile.UserID = user.ID
		query := `
			INSERT INTO doctor_profiles (user_id, specialty, license_number)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, profile.UserID, profile.Specialty, profile.LicenseNumber); err != nil {
			return fmt.Errorf("failed to create doctor profile: %w", err)
		}
		return nil
	})
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_patient, is_doctor,
			   created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_patient, is_doctor,
			   created_at, updated_at
		FROM users
		WHERE username = $1
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_patient, is_doctor,
			   created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, updated_at = $3
		WHERE id = $4
	`
	user.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("user", nil)
	}

	return nil
}
