package model

import (
	"time"

	"github.com/google/uuid"
)

type ConsultationStatus string

const (
	ConsultationStatusPending    ConsultationStatus = "pending"
	ConsultationStatusInProgress ConsultationStatus = "in_progress"
	ConsultationStatusCompleted  ConsultationStatus = "completed"
)

// Valid reports whether s is a member of the status enum. Transitions between
// members are free-form; only membership is checked.
func (s ConsultationStatus) Valid() bool {
	switch s {
	case ConsultationStatusPending, ConsultationStatusInProgress, ConsultationStatusCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Consultation is a booked appointment between one patient and one doctor.
// Patient and doctor references are the owning users' ids (profiles are keyed
// by user id). No two consultations may share the same (doctor, scheduled_at)
// pair; the store enforces that with a unique index. The video link is
// assigned exactly once at creation and never regenerated.
type Consultation struct {
	Base
	PatientID          uuid.UUID          `db:"patient_id" json:"patient_id"`
	DoctorID           uuid.UUID          `db:"doctor_id" json:"doctor_id"`
	ScheduledAt        time.Time          `db:"scheduled_at" json:"scheduled_at"`
	Notes              string             `db:"notes" json:"notes,omitempty"`
	DurationMinutes    int                `db:"duration_minutes" json:"duration_minutes"`
	Status             ConsultationStatus `db:"status" json:"status"`
	PaymentAmountCents int64              `db:"payment_amount_cents" json:"payment_amount_cents"`
	PaymentStatus      PaymentStatus      `db:"payment_status" json:"payment_status"`
	VideoLink          string             `db:"video_link" json:"video_link"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// CreateConsultationRequest carries booking parameters. The doctor is chosen
// explicitly by the caller and is the authoritative assignment.
type CreateConsultationRequest struct {
	DoctorID           uuid.UUID `json:"doctor_id" binding:"required"`
	ScheduledAt        time.Time `json:"scheduled_at" binding:"required"`
	Notes              string    `json:"notes" binding:"max=1000"`
	DurationMinutes    int       `json:"duration_minutes" binding:"omitempty,min=5,max=240"`
	PaymentAmountCents int64     `json:"payment_amount_cents" binding:"omitempty,min=0"`
}
