package model

import (
	"github.com/google/uuid"
)

// PatientProfile is the patient-specific extension of a user record. The
// owning user id doubles as the identity key; the row is removed by cascade
// when the user is deleted.
type PatientProfile struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Address     string    `db:"address" json:"address"`
}

// RegisterPatientRequest carries patient registration parameters.
type RegisterPatientRequest struct {
	Username    string `json:"username" binding:"required,max=150"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
	Address     string `json:"address" binding:"required"`
}
