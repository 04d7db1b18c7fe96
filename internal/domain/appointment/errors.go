package appointment

// Business error codes raised by the store and the booking flow.
const (
	CodeDoctorNotFound   = "doctor_not_found"
	CodeTimeNotAvailable = "time_not_available"
	CodeTimeConflict     = "time_conflict"
	CodeDuplicateID      = "duplicate_appointment_id"
	CodeSubmissionFailed = "submission_failed"
	CodeInvalidDate      = "invalid_date"
)
