package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type memoryPersister struct {
	mu      sync.Mutex
	state   *domain.State
	saves   int
	saveErr error
	loadErr error
}

func (p *memoryPersister) Load(ctx context.Context) (*domain.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.state, nil
}

func (p *memoryPersister) Save(ctx context.Context, st domain.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	p.state = &st
	return nil
}

func janeInput() domain.NewAppointment {
	return domain.NewAppointment{
		Name:             "Jane Doe",
		Email:            "jane@x.com",
		Phone:            "555-1111",
		DoctorID:         "1",
		Date:             "2025-01-10",
		Time:             "09:00",
		Reason:           "checkup",
		EmergencyContact: "555-2222",
	}
}

func TestFindDoctorRoundTripsCatalog(t *testing.T) {
	s := New(Options{})

	for _, d := range s.Doctors() {
		found, ok := s.FindDoctor(d.ID)
		require.True(t, ok)
		assert.Equal(t, d, found)
	}

	_, ok := s.FindDoctor("missing")
	assert.False(t, ok)
}

func TestDoctorLookupsDoNotShareCatalogSlices(t *testing.T) {
	s := New(Options{})

	doc, ok := s.FindDoctor("1")
	require.True(t, ok)
	doc.AvailableTimes[0] = "23:59"

	listed := s.Doctors()
	listed[0].AvailableTimes[1] = "23:58"

	again, ok := s.FindDoctor("1")
	require.True(t, ok)
	assert.Equal(t, "09:00", again.AvailableTimes[0])
	assert.Equal(t, "10:00", again.AvailableTimes[1])
}

func TestAppendThenListByDoctor(t *testing.T) {
	p := &memoryPersister{}
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	s := New(Options{
		Persister: p,
		NewID:     func() string { return "fixed-id" },
		Now:       func() time.Time { return now },
	})

	ap, err := s.Append(context.Background(), janeInput())
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", ap.ID)
	assert.Equal(t, "2025-01-01T08:00:00.000Z", ap.CreatedAt)

	list := s.ListByDoctor("1")
	require.Len(t, list, 1)
	assert.Equal(t, janeInput(), domain.Strip(list[0]))
	assert.Empty(t, s.ListByDoctor("2"))

	require.NotNil(t, p.state)
	assert.Len(t, p.state.Appointments, 1)
	assert.Len(t, p.state.Doctors, 6)
	assert.Equal(t, 1, p.saves)
}

func TestAppendRapidCallsYieldDistinctIDs(t *testing.T) {
	s := New(Options{})
	fixed := time.Now()
	s.now = func() time.Time { return fixed }

	const n = 50
	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		ap, err := s.Append(context.Background(), janeInput())
		require.NoError(t, err)
		seen[ap.ID] = true
	}

	assert.Len(t, s.Appointments(), n)
	assert.Len(t, seen, n)
}

func TestAppendKeepsInsertionOrder(t *testing.T) {
	s := New(Options{})
	for i := 0; i < 3; i++ {
		in := janeInput()
		in.Name = fmt.Sprintf("patient-%d", i)
		_, err := s.Append(context.Background(), in)
		require.NoError(t, err)
	}

	list := s.ListByDoctor("1")
	require.Len(t, list, 3)
	for i, ap := range list {
		assert.Equal(t, fmt.Sprintf("patient-%d", i), ap.Name)
	}
}

func TestAppendDoesNotValidateByDefault(t *testing.T) {
	s := New(Options{})

	in := janeInput()
	in.DoctorID = "does-not-exist"
	in.Time = "03:00"
	_, err := s.Append(context.Background(), in)
	require.NoError(t, err)

	_, err = s.Append(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, s.ListByDoctor("does-not-exist"), 2)
}

func TestAppendEnforcesReferencesWhenStrict(t *testing.T) {
	s := New(Options{EnforceReferences: true})

	_, err := s.Append(context.Background(), janeInput())
	require.NoError(t, err)

	_, err = s.Append(context.Background(), janeInput())
	assert.True(t, httperr.IsBusiness(err, domain.CodeTimeConflict))

	in := janeInput()
	in.DoctorID = "99"
	_, err = s.Append(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, domain.CodeDoctorNotFound))

	assert.Len(t, s.Appointments(), 1)
}

func TestAppendPersistFailureLeavesStateUntouched(t *testing.T) {
	p := &memoryPersister{saveErr: errors.New("quota exceeded")}
	s := New(Options{Persister: p})

	_, err := s.Append(context.Background(), janeInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, s.Appointments())
}

func TestSetSelection(t *testing.T) {
	p := &memoryPersister{}
	s := New(Options{Persister: p})
	ctx := context.Background()

	id := "3"
	require.NoError(t, s.SetSelection(ctx, &id))
	id = "mutated"

	require.NotNil(t, s.Selection())
	assert.Equal(t, "3", *s.Selection())
	assert.Equal(t, "3", *p.state.SelectedDoctorID)

	require.NoError(t, s.SetSelection(ctx, nil))
	assert.Nil(t, s.Selection())
	assert.Nil(t, p.state.SelectedDoctorID)
}

func TestLoadRestoresAppointmentsButKeepsStaticDoctors(t *testing.T) {
	sel := "2"
	p := &memoryPersister{state: &domain.State{
		Appointments:     []models.Appointment{{ID: "a1", DoctorID: "2"}},
		Doctors:          []models.Doctor{{ID: "x", Name: "Stale"}},
		SelectedDoctorID: &sel,
	}}
	s := New(Options{Persister: p})

	require.NoError(t, s.Load(context.Background()))

	assert.Len(t, s.ListByDoctor("2"), 1)
	assert.Equal(t, "2", *s.Selection())
	assert.Len(t, s.Doctors(), 6)
	_, ok := s.FindDoctor("x")
	assert.False(t, ok)
}

func TestLoadPropagatesErrors(t *testing.T) {
	s := New(Options{Persister: &memoryPersister{loadErr: errors.New("down")}})
	assert.Error(t, s.Load(context.Background()))

	assert.NoError(t, New(Options{}).Load(context.Background()))
	assert.NoError(t, New(Options{Persister: &memoryPersister{}}).Load(context.Background()))
}
