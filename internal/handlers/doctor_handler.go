package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
)

type DoctorHandler struct {
	store            domain.Store
	listAppointments *ucAppointment.ListAppointmentsByDoctor
	getSlots         *ucAppointment.GetDoctorSlots
}

func NewDoctorHandler(
	store domain.Store,
	listAppointments *ucAppointment.ListAppointmentsByDoctor,
	getSlots *ucAppointment.GetDoctorSlots,
) *DoctorHandler {
	return &DoctorHandler{
		store:            store,
		listAppointments: listAppointments,
		getSlots:         getSlots,
	}
}

func (h *DoctorHandler) List(c *gin.Context) {
	httpresp.List(c, h.store.Doctors())
}

func (h *DoctorHandler) Get(c *gin.Context) {
	doc, ok := h.store.FindDoctor(c.Param("id"))
	if !ok {
		httperr.NotFound(c, domain.CodeDoctorNotFound, "Doctor not found.")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Appointments lists a doctor's bookings in insertion order. An unknown id
// yields an empty list, matching the store query.
func (h *DoctorHandler) Appointments(c *gin.Context) {
	httpresp.List(c, h.listAppointments.Execute(c.Request.Context(), c.Param("id")))
}

// Slots returns the doctor's daily time menu for ?date=YYYY-MM-DD with the
// number of bookings already recorded on each slot.
func (h *DoctorHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), domain.SlotsInput{
		DoctorID: c.Param("id"),
		Date:     date,
	})
	if err != nil {
		writeError(c, err, "failed_to_list_slots")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor_id": c.Param("id"),
		"date":      date,
		"slots":     slots,
	})
}
