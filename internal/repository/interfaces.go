package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/telemedika/teleconsult-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles identity records and their role profiles.
	// The CreatePatient/CreateDoctor calls persist the user and the linked
	// profile in one transaction: both rows exist afterwards or neither does.
	UserRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		CreatePatient(ctx context.Context, user *model.User, profile *model.PatientProfile) error
		CreateDoctor(ctx context.Context, user *model.User, profile *model.DoctorProfile) error
	}

	PatientRepository interface {
		Get(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
	}

	DoctorRepository interface {
		Get(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
		List(ctx context.Context) ([]*model.DoctorListing, error)
	}

	// ConsultationRepository handles booking records. Create surfaces a
	// conflict error when the (doctor, scheduled_at) unique index rejects
	// the row.
	ConsultationRepository interface {
		Create(ctx context.Context, consultation *model.Consultation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Consultation, error)
		Update(ctx context.Context, consultation *model.Consultation) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Consultation, error)
	}

	// TokenRepository stores single-use password-reset tokens.
	TokenRepository interface {
		StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
		ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error)
	}
)
