package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type IDGenerator func() string

func UUIDGenerator() string {
	return uuid.NewString()
}

type Options struct {
	// Persister is optional; without one the store lives in memory only.
	Persister domain.Persister
	NewID     IDGenerator
	Now       func() time.Time

	// EnforceReferences rejects appends that point to an unknown doctor,
	// an unoffered time or an already taken doctor/date/time.
	EnforceReferences bool
}

// Store owns the doctor catalog, the appointment log and the selection
// pointer. Every mutation persists the full snapshot before it becomes
// visible.
type Store struct {
	mu sync.RWMutex

	doctors      []models.Doctor
	appointments []models.Appointment
	selected     *string

	persister domain.Persister
	newID     IDGenerator
	now       func() time.Time
	strict    bool
}

func New(opts Options) *Store {
	s := &Store{
		doctors:   doctor.Catalog(),
		persister: opts.Persister,
		newID:     opts.NewID,
		now:       opts.Now,
		strict:    opts.EnforceReferences,
	}
	if s.newID == nil {
		s.newID = UUIDGenerator
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Load replaces appointments and selection with the persisted snapshot.
// Doctors always come from the static catalog.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	st, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("store: load: %w", err)
	}
	if st == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointments = append([]models.Appointment(nil), st.Appointments...)
	s.selected = copyID(st.SelectedDoctorID)
	return nil
}

func (s *Store) Append(ctx context.Context, in domain.NewAppointment) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.strict {
		var doc *models.Doctor
		if d, ok := s.findDoctorLocked(in.DoctorID); ok {
			doc = &d
		}
		if err := domain.CheckReferences(in, doc, s.appointments); err != nil {
			return models.Appointment{}, err
		}
	}

	ap := domain.Build(in, s.newID(), s.now())

	next := make([]models.Appointment, len(s.appointments), len(s.appointments)+1)
	copy(next, s.appointments)
	next = append(next, ap)

	if err := s.persistLocked(ctx, next, s.selected); err != nil {
		return models.Appointment{}, err
	}

	s.appointments = next
	return ap, nil
}

func (s *Store) ListByDoctor(doctorID string) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.DoctorID == doctorID {
			out = append(out, ap)
		}
	}
	return out
}

func (s *Store) FindDoctor(id string) (models.Doctor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findDoctorLocked(id)
}

func (s *Store) findDoctorLocked(id string) (models.Doctor, bool) {
	for _, d := range s.doctors {
		if d.ID == id {
			return cloneDoctor(d), true
		}
	}
	return models.Doctor{}, false
}

// SetSelection overwrites the selection pointer; nil clears it.
func (s *Store) SetSelection(ctx context.Context, doctorID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyID(doctorID)
	if err := s.persistLocked(ctx, s.appointments, next); err != nil {
		return err
	}

	s.selected = next
	return nil
}

func (s *Store) Selection() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyID(s.selected)
}

func (s *Store) Doctors() []models.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Doctor, len(s.doctors))
	for i, d := range s.doctors {
		out[i] = cloneDoctor(d)
	}
	return out
}

// cloneDoctor detaches AvailableTimes from the catalog's backing array.
func cloneDoctor(d models.Doctor) models.Doctor {
	d.AvailableTimes = append([]string(nil), d.AvailableTimes...)
	return d
}

func (s *Store) Appointments() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Appointment{}, s.appointments...)
}

func (s *Store) persistLocked(ctx context.Context, appointments []models.Appointment, selected *string) error {
	if s.persister == nil {
		return nil
	}

	st := domain.State{
		Appointments:     appointments,
		Doctors:          s.doctors,
		SelectedDoctorID: selected,
	}
	if err := s.persister.Save(ctx, st); err != nil {
		return fmt.Errorf("store: persist: %w", err)
	}
	return nil
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

var _ domain.Store = (*Store)(nil)
