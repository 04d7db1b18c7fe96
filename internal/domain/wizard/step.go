package wizard

import domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"

type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepSchedule
	StepMedicalDetails
	StepConfirmation
)

const (
	FirstStep  = StepPersonalInfo
	LastStep   = StepConfirmation
	TotalSteps = int(LastStep)
)

func (s Step) Title() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Info"
	case StepSchedule:
		return "Schedule"
	case StepMedicalDetails:
		return "Medical Details"
	case StepConfirmation:
		return "Confirmation"
	}
	return ""
}

type Field string

const (
	FieldName             Field = "name"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldDoctorID         Field = "doctorId"
	FieldDate             Field = "date"
	FieldTime             Field = "time"
	FieldReason           Field = "reason"
	FieldMedicalHistory   Field = "medicalHistory"
	FieldEmergencyContact Field = "emergencyContact"
)

// stepFields lists the fields bound on each step; required ones drive the
// advance predicate.
var stepFields = map[Step]struct {
	bound    []Field
	required []Field
}{
	StepPersonalInfo: {
		bound:    []Field{FieldName, FieldEmail, FieldPhone},
		required: []Field{FieldName, FieldEmail, FieldPhone},
	},
	StepSchedule: {
		bound:    []Field{FieldDoctorID, FieldDate, FieldTime},
		required: []Field{FieldDoctorID, FieldDate, FieldTime},
	},
	StepMedicalDetails: {
		bound:    []Field{FieldReason, FieldMedicalHistory, FieldEmergencyContact},
		required: []Field{FieldReason, FieldEmergencyContact},
	},
	StepConfirmation: {},
}

func (s Step) RequiredFields() []Field {
	return append([]Field(nil), stepFields[s].required...)
}

func (s Step) Binds(f Field) bool {
	for _, b := range stepFields[s].bound {
		if b == f {
			return true
		}
	}
	return false
}

// Valid reports whether every required field of the step is non-empty.
// Only presence is checked.
func (s Step) Valid(fields domain.NewAppointment) bool {
	for _, f := range stepFields[s].required {
		if fieldValue(fields, f) == "" {
			return false
		}
	}
	return true
}

// fieldOrder is form order; applying edits in it keeps a doctor change
// ahead of the time it would otherwise clear.
var fieldOrder = []Field{
	FieldName, FieldEmail, FieldPhone,
	FieldDoctorID, FieldDate, FieldTime,
	FieldReason, FieldMedicalHistory, FieldEmergencyContact,
}

func ParseField(name string) (Field, bool) {
	for _, f := range fieldOrder {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

func fieldValue(in domain.NewAppointment, f Field) string {
	switch f {
	case FieldName:
		return in.Name
	case FieldEmail:
		return in.Email
	case FieldPhone:
		return in.Phone
	case FieldDoctorID:
		return in.DoctorID
	case FieldDate:
		return in.Date
	case FieldTime:
		return in.Time
	case FieldReason:
		return in.Reason
	case FieldMedicalHistory:
		return in.MedicalHistory
	case FieldEmergencyContact:
		return in.EmergencyContact
	}
	return ""
}

func setFieldValue(in *domain.NewAppointment, f Field, v string) {
	switch f {
	case FieldName:
		in.Name = v
	case FieldEmail:
		in.Email = v
	case FieldPhone:
		in.Phone = v
	case FieldDoctorID:
		in.DoctorID = v
	case FieldDate:
		in.Date = v
	case FieldTime:
		in.Time = v
	case FieldReason:
		in.Reason = v
	case FieldMedicalHistory:
		in.MedicalHistory = v
	case FieldEmergencyContact:
		in.EmergencyContact = v
	}
}
