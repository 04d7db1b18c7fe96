package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
)

type SelectDoctor struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewSelectDoctor(store domain.Store, audit *audit.Dispatcher) *SelectDoctor {
	return &SelectDoctor{store: store, audit: audit}
}

// Execute points the selection at a catalog doctor, or clears it when
// doctorID is nil.
func (uc *SelectDoctor) Execute(ctx context.Context, doctorID *string) error {
	if doctorID != nil {
		if _, ok := uc.store.FindDoctor(*doctorID); !ok {
			return httperr.ErrBusiness(domain.CodeDoctorNotFound)
		}
	}

	if err := uc.store.SetSelection(ctx, doctorID); err != nil {
		return err
	}

	entityID := ""
	if doctorID != nil {
		entityID = *doctorID
	}
	uc.audit.Dispatch(audit.Event{
		Action:   "doctor_selected",
		Entity:   "doctor",
		EntityID: entityID,
	})

	return nil
}
