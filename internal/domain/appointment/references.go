package appointment

import (
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// CheckReferences enforces the cross-reference rules that are off by
// default: the doctor exists, the time is one of the doctor's slots and
// no existing appointment holds the same doctor/date/time.
func CheckReferences(
	in NewAppointment,
	doctor *models.Doctor,
	existing []models.Appointment,
) error {
	if doctor == nil {
		return httperr.ErrBusiness(CodeDoctorNotFound)
	}

	if !doctor.OffersTime(in.Time) {
		return httperr.ErrBusiness(CodeTimeNotAvailable)
	}

	for _, ap := range existing {
		if ap.DoctorID == in.DoctorID && ap.Date == in.Date && ap.Time == in.Time {
			return httperr.ErrBusiness(CodeTimeConflict)
		}
	}

	return nil
}
