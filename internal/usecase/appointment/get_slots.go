package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/timezone"
)

type GetDoctorSlots struct {
	store domain.Store
}

func NewGetDoctorSlots(store domain.Store) *GetDoctorSlots {
	return &GetDoctorSlots{store: store}
}

func (uc *GetDoctorSlots) Execute(
	ctx context.Context,
	in domain.SlotsInput,
) ([]domain.TimeSlot, error) {
	doc, ok := uc.store.FindDoctor(in.DoctorID)
	if !ok {
		return nil, httperr.ErrBusiness(domain.CodeDoctorNotFound)
	}

	if _, err := time.Parse(timezone.DateLayout, in.Date); err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDate)
	}

	return domain.SlotsForDate(doc, in.Date, uc.store.ListByDoctor(in.DoctorID)), nil
}
