package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

const pgUniqueViolation = "23505"

// GormStatePersister stores the snapshot relationally: appointments are
// append-only rows ordered by Seq, the selection is a single row per key.
type GormStatePersister struct {
	db  *gorm.DB
	key string
}

func NewGormStatePersister(db *gorm.DB, key string) *GormStatePersister {
	return &GormStatePersister{db: db, key: key}
}

// --------------------------------------------------
// Load
// --------------------------------------------------

func (r *GormStatePersister) Load(ctx context.Context) (*domain.State, error) {
	var rows []models.AppointmentRecord
	if err := r.db.WithContext(ctx).
		Where("store_key = ?", r.key).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var sels []models.StoreSelection
	if err := r.db.WithContext(ctx).
		Where("store_key = ?", r.key).
		Find(&sels).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 && len(sels) == 0 {
		return nil, nil
	}

	st := &domain.State{
		Appointments: make([]models.Appointment, 0, len(rows)),
		Doctors:      doctor.Catalog(),
	}
	for _, row := range rows {
		st.Appointments = append(st.Appointments, fromRecord(row))
	}
	if len(sels) > 0 {
		st.SelectedDoctorID = sels[0].DoctorID
	}

	return st, nil
}

// --------------------------------------------------
// Save
// --------------------------------------------------

// Save inserts the appointments whose ids are not stored yet for this key
// and upserts the selection, in one transaction. New rows get Seq values
// after the highest stored one, so rows already in the table are never
// shadowed. Appointments are never updated.
func (r *GormStatePersister) Save(ctx context.Context, st domain.State) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored []models.AppointmentRecord
		if err := tx.
			Select("id", "seq").
			Where("store_key = ?", r.key).
			Find(&stored).Error; err != nil {
			return err
		}

		known := make(map[string]struct{}, len(stored))
		nextSeq := 0
		for _, row := range stored {
			known[row.ID] = struct{}{}
			if row.Seq >= nextSeq {
				nextSeq = row.Seq + 1
			}
		}

		var pending []models.AppointmentRecord
		for _, ap := range st.Appointments {
			if _, ok := known[ap.ID]; ok {
				continue
			}
			pending = append(pending, toRecord(r.key, nextSeq, ap))
			nextSeq++
		}

		if len(pending) > 0 {
			if err := tx.Create(&pending).Error; err != nil {
				return err
			}
		}

		sel := models.StoreSelection{
			StoreKey: r.key,
			DoctorID: st.SelectedDoctorID,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"doctor_id", "updated_at"}),
		}).Create(&sel).Error
	})

	if isUniqueViolation(err) {
		return httperr.ErrBusiness(domain.CodeDuplicateID)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func toRecord(key string, seq int, ap models.Appointment) models.AppointmentRecord {
	return models.AppointmentRecord{
		ID:               ap.ID,
		StoreKey:         key,
		Seq:              seq,
		Name:             ap.Name,
		Email:            ap.Email,
		Phone:            ap.Phone,
		EmergencyContact: ap.EmergencyContact,
		DoctorID:         ap.DoctorID,
		Date:             ap.Date,
		Time:             ap.Time,
		Reason:           ap.Reason,
		MedicalHistory:   ap.MedicalHistory,
		CreatedAtISO:     ap.CreatedAt,
	}
}

func fromRecord(row models.AppointmentRecord) models.Appointment {
	return models.Appointment{
		ID:               row.ID,
		Name:             row.Name,
		Email:            row.Email,
		Phone:            row.Phone,
		EmergencyContact: row.EmergencyContact,
		DoctorID:         row.DoctorID,
		Date:             row.Date,
		Time:             row.Time,
		Reason:           row.Reason,
		MedicalHistory:   row.MedicalHistory,
		CreatedAt:        row.CreatedAtISO,
	}
}

// Compile-time check
var _ domain.Persister = (*GormStatePersister)(nil)
