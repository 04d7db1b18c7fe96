package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	"github.com/BruksfildServices01/clinic-booking/internal/config"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/domain/wizard"
	"github.com/BruksfildServices01/clinic-booking/internal/handlers"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
	"github.com/BruksfildServices01/clinic-booking/internal/middleware"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
	"github.com/BruksfildServices01/clinic-booking/internal/session"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
)

type Deps struct {
	Config   *config.Config
	Store    domain.Store
	Audit    *audit.Dispatcher
	Metrics  *metrics.BookingMetrics
	Gatherer prometheus.Gatherer

	// DB is set only for the postgres backend; it enables /api/audit-logs.
	DB *gorm.DB

	// Scheduler overrides the wizard reset timer, for tests.
	Scheduler wizard.Scheduler
}

// RegisterRoutes wires use cases and handlers onto r. The returned registry
// owns the wizard sessions; the caller starts and stops its sweeper.
func RegisterRoutes(r *gin.Engine, deps Deps) *session.Registry {
	cfg := deps.Config

	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// use cases
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		deps.Store,
		deps.Audit,
		deps.Metrics,
	)
	listByDoctorUC := ucAppointment.NewListAppointmentsByDoctor(deps.Store)
	getSlotsUC := ucAppointment.NewGetDoctorSlots(deps.Store)
	selectDoctorUC := ucAppointment.NewSelectDoctor(deps.Store, deps.Audit)

	submitter := wizard.SimulatedSubmitter{
		Delay: cfg.SubmitDelay,
		Target: wizard.SubmitFunc(func(ctx context.Context, in domain.NewAppointment) (models.Appointment, error) {
			return createAppointmentUC.Execute(ctx, ucAppointment.SourceWizard, in)
		}),
	}

	sessions := session.NewRegistry(func() *wizard.Wizard {
		return wizard.New(wizard.Options{
			Store:      deps.Store,
			Submitter:  submitter,
			Scheduler:  deps.Scheduler,
			ResetDelay: cfg.ResetDelay,
		})
	}, session.Options{
		IdleTTL: cfg.SessionIdleTTL,
		Metrics: deps.Metrics,
	})

	// handlers
	doctorHandler := handlers.NewDoctorHandler(deps.Store, listByDoctorUC, getSlotsUC)
	appointmentHandler := handlers.NewAppointmentHandler(createAppointmentUC)
	selectionHandler := handlers.NewSelectionHandler(deps.Store, selectDoctorUC)
	wizardHandler := handlers.NewWizardHandler(sessions, deps.Metrics, cfg.ClinicTimezone)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"storage": cfg.StorageBackend,
		})
	})

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		doctors := api.Group("/doctors")
		{
			doctors.GET("", doctorHandler.List)
			doctors.GET("/:id", doctorHandler.Get)
			doctors.GET("/:id/appointments", doctorHandler.Appointments)
			doctors.GET("/:id/slots", doctorHandler.Slots)
		}

		api.POST("/appointments", appointmentHandler.Create)

		api.GET("/selection", selectionHandler.Get)
		api.PUT("/selection", selectionHandler.Put)

		wiz := api.Group("/wizard")
		{
			wiz.POST("", wizardHandler.Create)
			wiz.GET("/:id", wizardHandler.Get)
			wiz.PATCH("/:id/fields", wizardHandler.UpdateFields)
			wiz.POST("/:id/advance", wizardHandler.Advance)
			wiz.POST("/:id/retreat", wizardHandler.Retreat)
			wiz.POST("/:id/confirm", wizardHandler.Confirm)
			wiz.DELETE("/:id", wizardHandler.Delete)
		}

		if deps.DB != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)
			api.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return sessions
}
