package wizard

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// Submitter hands a completed booking to whatever records it.
type Submitter interface {
	Submit(ctx context.Context, in domain.NewAppointment) (models.Appointment, error)
}

type SubmitFunc func(ctx context.Context, in domain.NewAppointment) (models.Appointment, error)

func (f SubmitFunc) Submit(ctx context.Context, in domain.NewAppointment) (models.Appointment, error) {
	return f(ctx, in)
}

// SimulatedSubmitter waits a fixed delay, standing in for a remote booking
// call, then appends through Target.
type SimulatedSubmitter struct {
	Delay  time.Duration
	Target Submitter
}

func (s SimulatedSubmitter) Submit(ctx context.Context, in domain.NewAppointment) (models.Appointment, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return models.Appointment{}, ctx.Err()
		case <-timer.C:
		}
	}
	return s.Target.Submit(ctx, in)
}

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
