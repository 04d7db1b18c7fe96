package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create *ucAppointment.CreateAppointment
}

func NewAppointmentHandler(create *ucAppointment.CreateAppointment) *AppointmentHandler {
	return &AppointmentHandler{create: create}
}

// Create appends a record directly, bypassing the wizard. Fields are stored
// as given; only the JSON shape is checked.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req domain.NewAppointment
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.SourceDirect, req)
	if err != nil {
		writeError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}
