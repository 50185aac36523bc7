package model

import (
	"time"
)

// User represents an identity record with credentials and role flags. The
// patient and doctor flags are independent booleans set once at registration;
// the registration paths each set exactly one of them, but the model does not
// enforce exclusivity.
type User struct {
	Base
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	Password     string    `db:"-" json:"password,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsPatient    bool      `db:"is_patient" json:"is_patient"`
	IsDoctor     bool      `db:"is_doctor" json:"is_doctor"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Dashboard destinations after login. The patient flag is checked first, so
// an account carrying both flags lands on the patient dashboard.
const (
	DestinationPatientDashboard = "/patient/dashboard"
	DestinationDoctorDashboard  = "/doctor/dashboard"
	DestinationHome             = "/"
)

// DashboardDestination returns where the caller should be routed after login.
func (u *User) DashboardDestination() string {
	switch {
	case u.IsPatient:
		return DestinationPatientDashboard
	case u.IsDoctor:
		return DestinationDoctorDashboard
	default:
		return DestinationHome
	}
}
