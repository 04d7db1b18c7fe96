package appointment

import "github.com/BruksfildServices01/clinic-booking/internal/models"

type SlotsInput struct {
	DoctorID string
	Date     string
}

// TimeSlot is one entry of a doctor's daily menu. Booked counts existing
// appointments on that date and time; a booked slot is still offered.
type TimeSlot struct {
	Time   string `json:"time"`
	Booked int    `json:"booked"`
}

func SlotsForDate(doctor models.Doctor, date string, appointments []models.Appointment) []TimeSlot {
	counts := make(map[string]int, len(doctor.AvailableTimes))
	for _, ap := range appointments {
		if ap.Date == date {
			counts[ap.Time]++
		}
	}

	slots := make([]TimeSlot, 0, len(doctor.AvailableTimes))
	for _, t := range doctor.AvailableTimes {
		slots = append(slots, TimeSlot{Time: t, Booked: counts[t]})
	}
	return slots
}
