package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
	"github.com/BruksfildServices01/clinic-booking/internal/observability"
)

const (
	SourceWizard = "wizard"
	SourceDirect = "direct"
)

type CreateAppointment struct {
	store   domain.Store
	audit   *audit.Dispatcher
	metrics *metrics.BookingMetrics
}

func NewCreateAppointment(
	store domain.Store,
	audit *audit.Dispatcher,
	metrics *metrics.BookingMetrics,
) *CreateAppointment {
	return &CreateAppointment{
		store:   store,
		audit:   audit,
		metrics: metrics,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	source string,
	in domain.NewAppointment,
) (models.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "appointment.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("appointment.source", source),
		attribute.String("appointment.doctor_id", in.DoctorID),
	)

	logger := observability.LoggerFromContext(ctx)

	ap, err := uc.store.Append(ctx, in)
	uc.metrics.ObserveAppointment(source, err)
	if err != nil {
		observability.RecordError(span, err)
		logger.Error().Err(err).Str("source", source).Msg("append appointment failed")
		return models.Appointment{}, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{
			"source":    source,
			"doctor_id": ap.DoctorID,
			"date":      ap.Date,
			"time":      ap.Time,
		},
	})

	logger.Info().
		Str("appointment_id", ap.ID).
		Str("doctor_id", ap.DoctorID).
		Str("source", source).
		Msg("appointment created")

	return ap, nil
}
