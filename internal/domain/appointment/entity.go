package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// CreatedAtLayout matches an ISO-8601 UTC timestamp with milliseconds.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// NewAppointment carries every Appointment field except the generated
// identifier and creation timestamp.
type NewAppointment struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DoctorID         string `json:"doctorId"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Reason           string `json:"reason"`
	MedicalHistory   string `json:"medicalHistory"`
	EmergencyContact string `json:"emergencyContact"`
}

// Build assembles the stored record. No field is content-validated.
func Build(in NewAppointment, id string, now time.Time) models.Appointment {
	return models.Appointment{
		ID:               id,
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		EmergencyContact: in.EmergencyContact,
		DoctorID:         in.DoctorID,
		Date:             in.Date,
		Time:             in.Time,
		Reason:           in.Reason,
		MedicalHistory:   in.MedicalHistory,
		CreatedAt:        now.UTC().Format(CreatedAtLayout),
	}
}

// Strip drops the generated fields, leaving what the caller submitted.
func Strip(ap models.Appointment) NewAppointment {
	return NewAppointment{
		Name:             ap.Name,
		Email:            ap.Email,
		Phone:            ap.Phone,
		DoctorID:         ap.DoctorID,
		Date:             ap.Date,
		Time:             ap.Time,
		Reason:           ap.Reason,
		MedicalHistory:   ap.MedicalHistory,
		EmergencyContact: ap.EmergencyContact,
	}
}
