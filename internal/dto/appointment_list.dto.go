package dto

type AppointmentListDTO struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"created_at"`
}
