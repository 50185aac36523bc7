package model

import (
	"github.com/google/uuid"
)

// DoctorProfile is the doctor-specific extension of a user record, keyed by
// the owning user id and removed by cascade with it.
type DoctorProfile struct {
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Specialty     string    `db:"specialty" json:"specialty"`
	LicenseNumber string    `db:"license_number" json:"license_number"`
}

// RegisterDoctorRequest carries doctor registration parameters.
type RegisterDoctorRequest struct {
	Username      string `json:"username" binding:"required,max=150"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Specialty     string `json:"specialty" binding:"required,max=100"`
	LicenseNumber string `json:"license_number" binding:"required,max=50"`
}

// DoctorListing is a directory entry shown when booking a consultation.
type DoctorListing struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Specialty string    `db:"specialty" json:"specialty"`
}
