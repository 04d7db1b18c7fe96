package models

import "time"

type Appointment struct {
	ID string `json:"id"`

	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergencyContact"`

	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`

	Reason         string `json:"reason"`
	MedicalHistory string `json:"medicalHistory"`

	CreatedAt string `json:"createdAt"`
}

// AppointmentRecord is the relational row for an Appointment. Seq keeps
// the store's insertion order.
type AppointmentRecord struct {
	ID       string `gorm:"primaryKey;size:64"`
	StoreKey string `gorm:"size:100;uniqueIndex:idx_store_seq,priority:1;not null"`
	Seq      int    `gorm:"uniqueIndex:idx_store_seq,priority:2;not null"`

	Name             string `gorm:"size:100"`
	Email            string `gorm:"size:100"`
	Phone            string `gorm:"size:30"`
	EmergencyContact string `gorm:"size:100"`

	DoctorID string `gorm:"size:64;index"`
	Date     string `gorm:"size:20"`
	Time     string `gorm:"size:10"`

	Reason         string `gorm:"type:text"`
	MedicalHistory string `gorm:"type:text"`

	CreatedAtISO string `gorm:"column:created_at_iso;size:40"`

	StoredAt time.Time `gorm:"autoCreateTime"`
}
