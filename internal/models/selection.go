package models

import "time"

// StoreSelection holds the selection pointer of one store key.
type StoreSelection struct {
	StoreKey string  `gorm:"primaryKey;size:100"`
	DoctorID *string `gorm:"size:64"`

	UpdatedAt time.Time
}
