package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
	"github.com/BruksfildServices01/clinic-booking/internal/observability"
)

const (
	CodeNotAtConfirmation    = "not_at_confirmation"
	CodeSubmissionInProgress = "submission_in_progress"
	CodeAlreadySubmitted     = "already_submitted"
	CodeFieldNotOnStep       = "field_not_on_current_step"
	CodeTimeNotSelectable    = "time_not_selectable"
	CodeWizardLocked         = "wizard_locked"
	CodeWizardClosed         = "wizard_closed"
)

const (
	NoticeBooked = "Your appointment has been successfully scheduled."
	NoticeFailed = "Failed to book appointment. Please try again."

	DefaultResetDelay = 3 * time.Second
)

type Options struct {
	Store      domain.Store
	Submitter  Submitter
	Scheduler  Scheduler
	ResetDelay time.Duration
}

// Wizard is the four-step booking form. It collects fields, gates
// advancement on the current step and submits from the last step.
type Wizard struct {
	mu sync.Mutex

	store      domain.Store
	submitter  Submitter
	scheduler  Scheduler
	resetDelay time.Duration

	step       Step
	fields     domain.NewAppointment
	submitting bool
	submitted  bool
	notice     string

	resetTimer Timer
	closed     bool
}

// New starts a wizard on step 1, pre-filling the doctor from the store's
// selection pointer.
func New(opts Options) *Wizard {
	w := &Wizard{
		store:      opts.Store,
		submitter:  opts.Submitter,
		scheduler:  opts.Scheduler,
		resetDelay: opts.ResetDelay,
		step:       FirstStep,
	}
	if w.scheduler == nil {
		w.scheduler = RealScheduler{}
	}
	if w.resetDelay <= 0 {
		w.resetDelay = DefaultResetDelay
	}
	if sel := w.store.Selection(); sel != nil {
		w.fields.DoctorID = *sel
	}
	return w
}

type View struct {
	Step           Step                  `json:"step"`
	Title          string                `json:"title"`
	TotalSteps     int                   `json:"total_steps"`
	Fields         domain.NewAppointment `json:"fields"`
	StepValid      bool                  `json:"step_valid"`
	Submitting     bool                  `json:"submitting"`
	Submitted      bool                  `json:"submitted"`
	Notice         string                `json:"notice,omitempty"`
	TimeSelectable bool                  `json:"time_selectable"`
	SelectedDoctor *models.Doctor        `json:"selected_doctor"`
}

func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		Step:       w.step,
		Title:      w.step.Title(),
		TotalSteps: TotalSteps,
		Fields:     w.fields,
		StepValid:  w.step.Valid(w.fields),
		Submitting: w.submitting,
		Submitted:  w.submitted,
		Notice:     w.notice,
	}
	if d, ok := w.selectedDoctorLocked(); ok {
		v.SelectedDoctor = &d
		v.TimeSelectable = true
	}
	return v
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Fields() domain.NewAppointment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields
}

// SelectedDoctor looks the current doctorId up in the store on every call.
func (w *Wizard) SelectedDoctor() (models.Doctor, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedDoctorLocked()
}

func (w *Wizard) selectedDoctorLocked() (models.Doctor, bool) {
	if w.fields.DoctorID == "" {
		return models.Doctor{}, false
	}
	return w.store.FindDoctor(w.fields.DoctorID)
}

// TimeSelectable is false until a known doctor is selected.
func (w *Wizard) TimeSelectable() bool {
	_, ok := w.SelectedDoctor()
	return ok
}

// SetField writes a field bound to the current step. Changing the doctor
// clears a previously chosen time.
func (w *Wizard) SetField(f Field, value string) error {
	return w.SetFields(map[Field]string{f: value})
}

// SetFields applies several edits in form order. Either every edit is
// applied or, on the first rejected one, none is.
func (w *Wizard) SetFields(edits map[Field]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}

	next := w.fields
	for _, f := range fieldOrder {
		value, ok := edits[f]
		if !ok {
			continue
		}
		if err := w.applyLocked(&next, f, value); err != nil {
			return err
		}
	}

	w.fields = next
	return nil
}

func (w *Wizard) applyLocked(fields *domain.NewAppointment, f Field, value string) error {
	if !w.step.Binds(f) {
		return httperr.ErrBusiness(CodeFieldNotOnStep)
	}

	switch f {
	case FieldTime:
		if fields.DoctorID == "" {
			return httperr.ErrBusiness(CodeTimeNotSelectable)
		}
		if _, ok := w.store.FindDoctor(fields.DoctorID); !ok {
			return httperr.ErrBusiness(CodeTimeNotSelectable)
		}
	case FieldDoctorID:
		if value != fields.DoctorID {
			fields.Time = ""
		}
	}

	setFieldValue(fields, f, value)
	return nil
}

func (w *Wizard) StepValid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step.Valid(w.fields)
}

// Advance moves forward one step when the current step is complete. It is
// a no-op on the last step.
func (w *Wizard) Advance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.editableLocked() != nil || w.step >= LastStep || !w.step.Valid(w.fields) {
		return false
	}
	w.step++
	return true
}

// Retreat moves back one step regardless of validity. It is a no-op on
// the first step.
func (w *Wizard) Retreat() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.editableLocked() != nil || w.step <= FirstStep {
		return false
	}
	w.step--
	return true
}

// Confirm submits the collected fields from the last step. On success the
// store selection is cleared and the wizard resets itself after the reset
// delay.
func (w *Wizard) Confirm(ctx context.Context) (models.Appointment, error) {
	w.mu.Lock()
	switch {
	case w.closed:
		w.mu.Unlock()
		return models.Appointment{}, httperr.ErrBusiness(CodeWizardClosed)
	case w.submitted:
		w.mu.Unlock()
		return models.Appointment{}, httperr.ErrBusiness(CodeAlreadySubmitted)
	case w.submitting:
		w.mu.Unlock()
		return models.Appointment{}, httperr.ErrBusiness(CodeSubmissionInProgress)
	case w.step != LastStep:
		w.mu.Unlock()
		return models.Appointment{}, httperr.ErrBusiness(CodeNotAtConfirmation)
	}

	w.submitting = true
	w.notice = ""
	record := w.fields
	w.mu.Unlock()

	ap, err := w.submitter.Submit(ctx, record)
	if err != nil {
		w.mu.Lock()
		w.submitting = false
		w.notice = NoticeFailed
		w.mu.Unlock()
		return models.Appointment{}, fmt.Errorf("%w: %w", httperr.ErrBusiness(domain.CodeSubmissionFailed), err)
	}

	// The wizard stays in the submitting state, and so locked, until the
	// selection is cleared.
	if err := w.store.SetSelection(ctx, nil); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to clear doctor selection")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	w.submitted = true
	w.notice = NoticeBooked

	if !w.closed {
		w.resetTimer = w.scheduler.AfterFunc(w.resetDelay, w.reset)
	}
	return ap, nil
}

func (w *Wizard) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.step = FirstStep
	w.fields = domain.NewAppointment{}
	w.submitted = false
	w.notice = ""
	w.resetTimer = nil
}

// Close cancels a pending reset; a closed wizard rejects further input.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
}

func (w *Wizard) editableLocked() error {
	switch {
	case w.closed:
		return httperr.ErrBusiness(CodeWizardClosed)
	case w.submitting || w.submitted:
		return httperr.ErrBusiness(CodeWizardLocked)
	}
	return nil
}
