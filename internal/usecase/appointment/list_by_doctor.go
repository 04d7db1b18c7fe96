package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/dto"
)

type ListAppointmentsByDoctor struct {
	store domain.Store
}

func NewListAppointmentsByDoctor(store domain.Store) *ListAppointmentsByDoctor {
	return &ListAppointmentsByDoctor{store: store}
}

// Execute returns the doctor's appointments in insertion order. Unknown
// doctor ids simply yield an empty list.
func (uc *ListAppointmentsByDoctor) Execute(
	ctx context.Context,
	doctorID string,
) []dto.AppointmentListDTO {
	doctorName := ""
	if d, ok := uc.store.FindDoctor(doctorID); ok {
		doctorName = d.Name
	}

	appointments := uc.store.ListByDoctor(doctorID)

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			PatientName: ap.Name,
			DoctorID:    ap.DoctorID,
			DoctorName:  doctorName,
			Date:        ap.Date,
			Time:        ap.Time,
			Reason:      ap.Reason,
			CreatedAt:   ap.CreatedAt,
		})
	}

	return out
}
