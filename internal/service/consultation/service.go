package consultation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/telemedika/teleconsult-api/internal/model"
	"github.com/telemedika/teleconsult-api/internal/repository"
	apperrors "github.com/telemedika/teleconsult-api/pkg/errors"
	"github.com/telemedika/teleconsult-api/pkg/meeting"
)

type Service struct {
	repo        repository.ConsultationRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	rooms       *meeting.Generator
}

func NewService(repo repository.ConsultationRepository, patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository, rooms *meeting.Generator) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		rooms:       rooms,
	}
}

// Create books a consultation for the acting patient with the doctor the
// caller selected. The (doctor, scheduled_at) slot is claimed atomically by
// the store's unique index; a taken slot surfaces as a conflict error.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateConsultationRequest) (*model.Consultation, error) {
	if !actor.IsPatient {
		return nil, apperrors.Forbidden("only patients can book consultations", nil)
	}

	if _, err := s.patientRepo.Get(ctx, actor.UserID); err != nil {
		return nil, apperrors.Forbidden("only patients can book consultations", err)
	}

	if _, err := s.doctorRepo.Get(ctx, req.DoctorID); err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validation("unknown doctor", err)
		}
		return nil, fmt.Errorf("failed to resolve doctor: %w", err)
	}

	if req.ScheduledAt.IsZero() {
		return nil, apperrors.Validation("scheduled time is required", nil)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 30
	}

	consultation := &model.Consultation{
		PatientID:          actor.UserID,
		DoctorID:           req.DoctorID,
		ScheduledAt:        req.ScheduledAt,
		Notes:              req.Notes,
		DurationMinutes:    duration,
		Status:             model.ConsultationStatusPending,
		PaymentAmountCents: req.PaymentAmountCents,
		PaymentStatus:      model.PaymentStatusUnpaid,
		VideoLink:          s.rooms.NewRoomLink(),
	}

	if err := s.repo.Create(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

// UpdateStatus writes a new status value. Only the assigned doctor may do
// this; the record is never touched on an authorization failure. Any enum
// member may be written from any other, there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, newStatus model.ConsultationStatus) (*model.Consultation, error) {
	if !newStatus.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", newStatus), nil)
	}

	consultation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsDoctor || consultation.DoctorID != actor.UserID {
		return nil, apperrors.Forbidden("only the assigned doctor can update the status", nil)
	}

	consultation.Status = newStatus
	if err := s.repo.Update(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

// Get returns a consultation to one of its participants.
func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Consultation, error) {
	consultation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if consultation.PatientID != actor.UserID && consultation.DoctorID != actor.UserID {
		return nil, apperrors.Forbidden("not a participant of this consultation", nil)
	}
	return consultation, nil
}

// ListForPatient returns the caller's consultations in insertion order. A
// caller without the patient flag gets an empty result, not an error.
func (s *Service) ListForPatient(ctx context.Context, actor model.Actor) ([]*model.Consultation, error) {
	if !actor.IsPatient {
		return []*model.Consultation{}, nil
	}
	return s.repo.ListForPatient(ctx, actor.UserID)
}

// ListForDoctor returns the caller's consultations, most recent scheduled
// first. Fails closed like ListForPatient.
func (s *Service) ListForDoctor(ctx context.Context, actor model.Actor) ([]*model.Consultation, error) {
	if !actor.IsDoctor {
		return []*model.Consultation{}, nil
	}
	return s.repo.ListForDoctor(ctx, actor.UserID)
}

// List returns whichever side of the booking the caller participates in,
// mirroring the combined consultation listing of the dashboards.
func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.Consultation, error) {
	switch {
	case actor.IsPatient:
		return s.repo.ListForPatient(ctx, actor.UserID)
	case actor.IsDoctor:
		return s.repo.ListForDoctor(ctx, actor.UserID)
	default:
		return []*model.Consultation{}, nil
	}
}
