package consultation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedika/teleconsult-api/internal/model"
	apperrors "github.com/telemedika/teleconsult-api/pkg/errors"
	"github.com/telemedika/teleconsult-api/pkg/meeting"
)

type slotKey struct {
	doctorID    uuid.UUID
	scheduledAt time.Time
}

// fakeConsultationRepo mimics the store, including the unique-index rejection
// of duplicate (doctor, scheduled_at) pairs.
type fakeConsultationRepo struct {
	byID  map[uuid.UUID]*model.Consultation
	slots map[slotKey]bool
	order []uuid.UUID
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{
		byID:  make(map[uuid.UUID]*model.Consultation),
		slots: make(map[slotKey]bool),
	}
}

func (r *fakeConsultationRepo) Create(_ context.Context, c *model.Consultation) error {
	key := slotKey{c.DoctorID, c.ScheduledAt}
	if r.slots[key] {
		return apperrors.Conflict("doctor already booked at this time", nil)
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	r.byID[c.ID] = &stored
	r.slots[key] = true
	r.order = append(r.order, c.ID)
	return nil
}

func (r *fakeConsultationRepo) Get(_ context.Context, id uuid.UUID) (*model.Consultation, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("consultation", nil)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeConsultationRepo) Update(_ context.Context, c *model.Consultation) error {
	stored, ok := r.byID[c.ID]
	if !ok {
		return apperrors.NotFound("consultation", nil)
	}
	stored.Status = c.Status
	stored.Notes = c.Notes
	stored.PaymentStatus = c.PaymentStatus
	stored.UpdatedAt = time.Now()
	c.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *fakeConsultationRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*model.Consultation, error) {
	var out []*model.Consultation
	for _, id := range r.order {
		if c := r.byID[id]; c.PatientID == patientID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeConsultationRepo) ListForDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.Consultation, error) {
	var out []*model.Consultation
	for _, id := range r.order {
		if c := r.byID[id]; c.DoctorID == doctorID {
			copied := *c
			out = append(out, &copied)
		}
	}
	// scheduled_at descending, as the store query orders
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].ScheduledAt.After(out[i].ScheduledAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	profiles map[uuid.UUID]*model.PatientProfile
}

func (r *fakePatientRepo) Get(_ context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.NotFound("patient profile", nil)
	}
	return p, nil
}

type fakeDoctorRepo struct {
	profiles map[uuid.UUID]*model.DoctorProfile
}

func (r *fakeDoctorRepo) Get(_ context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	d, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.NotFound("doctor profile", nil)
	}
	return d, nil
}

func (r *fakeDoctorRepo) List(_ context.Context) ([]*model.DoctorListing, error) {
	var out []*model.DoctorListing
	for id, d := range r.profiles {
		out = append(out, &model.DoctorListing{UserID: id, Specialty: d.Specialty})
	}
	return out, nil
}

type fixture struct {
	svc      *Service
	repo     *fakeConsultationRepo
	patient  model.Actor
	doctor   model.Actor
	stranger model.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	patientID := uuid.New()
	doctorID := uuid.New()

	patients := &fakePatientRepo{profiles: map[uuid.UUID]*model.PatientProfile{
		patientID: {UserID: patientID, PhoneNumber: "+224000", Address: "X"},
	}}
	doctors := &fakeDoctorRepo{profiles: map[uuid.UUID]*model.DoctorProfile{
		doctorID: {UserID: doctorID, Specialty: "Cardiology", LicenseNumber: "L123"},
	}}

	repo := newFakeConsultationRepo()
	svc := NewService(repo, patients, doctors, meeting.NewGenerator(""))

	return &fixture{
		svc:      svc,
		repo:     repo,
		patient:  model.Actor{UserID: patientID, Username: "alice", IsPatient: true},
		doctor:   model.Actor{UserID: doctorID, Username: "drbob", IsDoctor: true},
		stranger: model.Actor{UserID: uuid.New(), Username: "mallory"},
	}
}

func bookingRequest(f *fixture, at time.Time) *model.CreateConsultationRequest {
	return &model.CreateConsultationRequest{
		DoctorID:           f.doctor.UserID,
		ScheduledAt:        at,
		Notes:              "first visit",
		DurationMinutes:    30,
		PaymentAmountCents: 5000,
	}
}

func TestCreateConsultation(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	c, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
	require.NoError(t, err)

	assert.Equal(t, model.ConsultationStatusPending, c.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, c.PaymentStatus)
	assert.Equal(t, f.patient.UserID, c.PatientID)
	assert.Equal(t, f.doctor.UserID, c.DoctorID)
	assert.NotEmpty(t, c.VideoLink)
	assert.Contains(t, c.VideoLink, "https://meet.jit.si/")
}

func TestCreateConsultationRequiresPatient(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(context.Background(), f.doctor, bookingRequest(f, at))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))

	_, err = f.svc.Create(context.Background(), f.stranger, bookingRequest(f, at))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}

func TestCreateConsultationUnknownDoctor(t *testing.T) {
	f := newFixture(t)

	req := bookingRequest(f, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	req.DoctorID = uuid.New()

	_, err := f.svc.Create(context.Background(), f.patient, req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestDoubleBookingConflicts(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
	require.NoError(t, err)

	// Second patient, same doctor and instant.
	otherID := uuid.New()
	f2 := model.Actor{UserID: otherID, IsPatient: true}
	fp := f.svc.patientRepo.(*fakePatientRepo)
	fp.profiles[otherID] = &model.PatientProfile{UserID: otherID}

	_, err = f.svc.Create(context.Background(), f2, bookingRequest(f, at))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	// The store is unchanged: still one booking.
	list, err := f.svc.ListForPatient(context.Background(), f.patient)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = f.svc.ListForPatient(context.Background(), f2)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestVideoLinkStableAcrossUpdates(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
	require.NoError(t, err)
	link := created.VideoLink

	_, err = f.svc.UpdateStatus(context.Background(), f.doctor, created.ID, model.ConsultationStatusInProgress)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), f.doctor, created.ID, model.ConsultationStatusCompleted)
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), f.patient, created.ID)
	require.NoError(t, err)
	assert.Equal(t, link, got.VideoLink)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), f.doctor, created.ID, model.ConsultationStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.ConsultationStatusCompleted, updated.Status)
}

func TestUpdateStatusAuthorization(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
	require.NoError(t, err)

	// Neither the patient nor an unrelated account may change the status,
	// and a denied attempt never mutates the record.
	for _, actor := range []model.Actor{f.patient, f.stranger} {
		_, err := f.svc.UpdateStatus(context.Background(), actor, created.ID, model.ConsultationStatusCompleted)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))

		got, err := f.svc.Get(context.Background(), f.patient, created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ConsultationStatusPending, got.Status)
	}

	// A doctor who is not the assigned one is refused too.
	otherDoctor := model.Actor{UserID: uuid.New(), IsDoctor: true}
	_, err = f.svc.UpdateStatus(context.Background(), otherDoctor, created.ID, model.ConsultationStatusCompleted)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}

func TestUpdateStatusUnknownConsultation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), f.doctor, uuid.New(), model.ConsultationStatusCompleted)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), f.doctor, created.ID, "cancelled")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestListForDoctorOrdering(t *testing.T) {
	f := newFixture(t)

	times := []time.Time{
		time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
	}
	for _, at := range times {
		_, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
		require.NoError(t, err)
	}

	list, err := f.svc.ListForDoctor(context.Background(), f.doctor)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.True(t, !list[i-1].ScheduledAt.Before(list[i].ScheduledAt),
			"expected scheduled_at descending")
	}
	for _, c := range list {
		assert.Equal(t, f.doctor.UserID, c.DoctorID)
	}
}

func TestListsFailClosed(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
	require.NoError(t, err)

	list, err := f.svc.ListForPatient(context.Background(), f.stranger)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.svc.ListForDoctor(context.Background(), f.stranger)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.svc.List(context.Background(), f.stranger)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetRequiresParticipant(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(context.Background(), f.patient, bookingRequest(f, at))
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), f.patient, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(context.Background(), f.doctor, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(context.Background(), f.stranger, created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}
