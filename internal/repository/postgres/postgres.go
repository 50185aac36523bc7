package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/telemedika/teleconsult-api/internal/repository"
)

type userRepository struct {
	BaseRepository
}

type patientRepository struct {
	BaseRepository
}

type doctorRepository struct {
	BaseRepository
}

type consultationRepository struct {
	BaseRepository
}

type tokenRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{NewBaseRepository(db)}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

func NewConsultationRepository(db *sqlx.DB) repository.ConsultationRepository {
	return &consultationRepository{NewBaseRepository(db)}
}

func NewTokenRepository(db *sqlx.DB) repository.TokenRepository {
	return &tokenRepository{NewBaseRepository(db)}
}
