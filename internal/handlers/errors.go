package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/domain/wizard"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/observability"
)

var businessErrors = map[string]struct {
	status  int
	message string
}{
	domain.CodeDoctorNotFound:       {http.StatusNotFound, "Doctor not found."},
	domain.CodeTimeNotAvailable:     {http.StatusBadRequest, "The doctor does not offer this time."},
	domain.CodeTimeConflict:         {http.StatusConflict, "This time is already booked."},
	domain.CodeDuplicateID:          {http.StatusConflict, "Appointment already exists."},
	domain.CodeSubmissionFailed:     {http.StatusInternalServerError, wizard.NoticeFailed},
	domain.CodeInvalidDate:          {http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD."},
	wizard.CodeNotAtConfirmation:    {http.StatusConflict, "The wizard is not on the confirmation step."},
	wizard.CodeSubmissionInProgress: {http.StatusConflict, "A submission is already in progress."},
	wizard.CodeAlreadySubmitted:     {http.StatusConflict, "This booking was already submitted."},
	wizard.CodeFieldNotOnStep:       {http.StatusBadRequest, "Field is not part of the current step."},
	wizard.CodeTimeNotSelectable:    {http.StatusBadRequest, "Select a doctor before choosing a time."},
	wizard.CodeWizardLocked:         {http.StatusConflict, "The wizard cannot be edited right now."},
	wizard.CodeWizardClosed:         {http.StatusGone, "The wizard session has been closed."},
}

// writeError renders business errors with their mapped status and anything
// else as a 500.
func writeError(c *gin.Context, err error, fallbackCode string) {
	if code, ok := httperr.Code(err); ok {
		if m, known := businessErrors[code]; known {
			httperr.Write(c, m.status, code, m.message)
			return
		}
		httperr.BadRequest(c, code, "Request rejected.")
		return
	}

	observability.LoggerFromContext(c.Request.Context()).
		Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("request failed")
	httperr.Internal(c, fallbackCode, "Internal error.")
}
