package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// SchemaVersion is written into the persisted envelope.
const SchemaVersion = 0

// State is the persisted snapshot of the store.
type State struct {
	Appointments     []models.Appointment `json:"appointments"`
	Doctors          []models.Doctor      `json:"doctors"`
	SelectedDoctorID *string              `json:"selectedDoctorId"`
}

// Envelope is the layout stored under the store key.
type Envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// Persister loads and saves whole store snapshots. Load returns a nil
// State when nothing has been persisted yet.
type Persister interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, st State) error
}

// Store is the collaborator seam used by the booking flow and the HTTP layer.
type Store interface {
	Append(ctx context.Context, in NewAppointment) (models.Appointment, error)
	ListByDoctor(doctorID string) []models.Appointment
	FindDoctor(id string) (models.Doctor, bool)
	SetSelection(ctx context.Context, doctorID *string) error
	Selection() *string
	Doctors() []models.Doctor
}
