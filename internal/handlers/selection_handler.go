package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
)

type SelectionHandler struct {
	store        domain.Store
	selectDoctor *ucAppointment.SelectDoctor
}

func NewSelectionHandler(store domain.Store, selectDoctor *ucAppointment.SelectDoctor) *SelectionHandler {
	return &SelectionHandler{store: store, selectDoctor: selectDoctor}
}

type UpdateSelectionRequest struct {
	DoctorID *string `json:"doctor_id"`
}

func (h *SelectionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, UpdateSelectionRequest{DoctorID: h.store.Selection()})
}

// Put points the selection at a doctor; a null doctor_id clears it.
func (h *SelectionHandler) Put(c *gin.Context) {
	var req UpdateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := h.selectDoctor.Execute(c.Request.Context(), req.DoctorID); err != nil {
		writeError(c, err, "failed_to_update_selection")
		return
	}

	c.JSON(http.StatusOK, UpdateSelectionRequest{DoctorID: h.store.Selection()})
}
