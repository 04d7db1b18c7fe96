package audit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// LogSink writes events to the structured log.
type LogSink struct{}

func (LogSink) Record(ctx context.Context, ev Event) error {
	log.Info().
		Str("audit_action", ev.Action).
		Str("entity", ev.Entity).
		Str("entity_id", ev.EntityID).
		Interface("metadata", ev.Metadata).
		Msg("audit")
	return nil
}

// GormSink stores events in the audit_logs table.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Record(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return s.db.WithContext(ctx).Create(&row).Error
}

// MultiSink fans an event out to every sink and returns the first error.
type MultiSink []Sink

func (m MultiSink) Record(ctx context.Context, ev Event) error {
	var first error
	for _, s := range m {
		if err := s.Record(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
