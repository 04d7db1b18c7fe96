package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/domain/wizard"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/httpresp"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
	"github.com/BruksfildServices01/clinic-booking/internal/observability"
	"github.com/BruksfildServices01/clinic-booking/internal/session"
	"github.com/BruksfildServices01/clinic-booking/internal/timezone"
)

type WizardHandler struct {
	sessions *session.Registry
	metrics  *metrics.BookingMetrics
	clinicTZ string
	now      func() time.Time
}

func NewWizardHandler(
	sessions *session.Registry,
	metrics *metrics.BookingMetrics,
	clinicTZ string,
) *WizardHandler {
	return &WizardHandler{
		sessions: sessions,
		metrics:  metrics,
		clinicTZ: clinicTZ,
		now:      time.Now,
	}
}

type wizardResponse struct {
	ID string `json:"id"`
	wizard.View
	AvailableTimes []string `json:"available_times"`
	MinDate        string   `json:"min_date"`
	Moved          *bool    `json:"moved,omitempty"`
}

type confirmResponse struct {
	Appointment models.Appointment `json:"appointment"`
	Wizard      wizardResponse     `json:"wizard"`
}

func (h *WizardHandler) render(id string, w *wizard.Wizard) wizardResponse {
	v := w.View()
	times := []string{}
	if v.SelectedDoctor != nil {
		times = append(times, v.SelectedDoctor.AvailableTimes...)
	}
	return wizardResponse{
		ID:             id,
		View:           v,
		AvailableTimes: times,
		MinDate:        timezone.Today(h.clinicTZ, h.now()),
	}
}

func (h *WizardHandler) lookup(c *gin.Context) (string, *wizard.Wizard, bool) {
	id := c.Param("id")
	w, ok := h.sessions.Get(id)
	if !ok {
		httperr.NotFound(c, "wizard_not_found", "Wizard session not found.")
		return "", nil, false
	}
	return id, w, true
}

func (h *WizardHandler) Create(c *gin.Context) {
	id, w := h.sessions.Create()

	observability.LoggerFromContext(c.Request.Context()).
		Debug().
		Str("wizard_id", id).
		Msg("wizard session created")

	httpresp.Created(c, h.render(id, w))
}

func (h *WizardHandler) Get(c *gin.Context) {
	id, w, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.render(id, w))
}

// UpdateFields applies {"field": "value"} edits as one change: a rejected
// edit leaves every field as it was.
func (h *WizardHandler) UpdateFields(c *gin.Context) {
	id, w, ok := h.lookup(c)
	if !ok {
		return
	}

	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	edits := make(map[wizard.Field]string, len(req))
	for name, value := range req {
		f, known := wizard.ParseField(name)
		if !known {
			httperr.BadRequest(c, "unknown_field", "Unknown field: "+name)
			return
		}
		edits[f] = value
	}

	if err := w.SetFields(edits); err != nil {
		writeError(c, err, "failed_to_update_fields")
		return
	}

	c.JSON(http.StatusOK, h.render(id, w))
}

// Advance never fails on an incomplete step; the response reports whether
// the wizard moved.
func (h *WizardHandler) Advance(c *gin.Context) {
	id, w, ok := h.lookup(c)
	if !ok {
		return
	}

	moved := w.Advance()
	h.metrics.ObserveTransition("advance", moved)

	resp := h.render(id, w)
	resp.Moved = &moved
	c.JSON(http.StatusOK, resp)
}

func (h *WizardHandler) Retreat(c *gin.Context) {
	id, w, ok := h.lookup(c)
	if !ok {
		return
	}

	moved := w.Retreat()
	h.metrics.ObserveTransition("retreat", moved)

	resp := h.render(id, w)
	resp.Moved = &moved
	c.JSON(http.StatusOK, resp)
}

// Confirm blocks for the whole submission. The booking is not abandoned
// when the client disconnects mid-flight.
func (h *WizardHandler) Confirm(c *gin.Context) {
	id, w, ok := h.lookup(c)
	if !ok {
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	started := time.Now()
	ap, err := w.Confirm(ctx)
	if err == nil || httperr.IsBusiness(err, domain.CodeSubmissionFailed) {
		h.metrics.ObserveSubmission(err, time.Since(started).Seconds())
	}
	if err != nil {
		writeError(c, err, "failed_to_confirm")
		return
	}

	httpresp.Created(c, confirmResponse{
		Appointment: ap,
		Wizard:      h.render(id, w),
	})
}

func (h *WizardHandler) Delete(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		httperr.NotFound(c, "wizard_not_found", "Wizard session not found.")
		return
	}
	c.Status(http.StatusNoContent)
}
