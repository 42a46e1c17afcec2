package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	"github.com/studiobellavita/salon-agenda/internal/config"
	"github.com/studiobellavita/salon-agenda/internal/fiscal"
	"github.com/studiobellavita/salon-agenda/internal/handlers"
	infraRepo "github.com/studiobellavita/salon-agenda/internal/infra/repository"
	"github.com/studiobellavita/salon-agenda/internal/middleware"
	ucBooking "github.com/studiobellavita/salon-agenda/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	agendaRepo := infraRepo.NewAgendaGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	fiscalIssuer := fiscal.NewQueueIssuer()

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	proposeUC := ucBooking.NewProposeBooking(agendaRepo, auditDispatcher)
	mergeUC := ucBooking.NewMergeCollision(agendaRepo, auditDispatcher)
	recurrenceUC := ucBooking.NewGenerateRecurrence(agendaRepo, auditDispatcher)
	confirmUC := ucBooking.NewToggleConfirm(agendaRepo, auditDispatcher)
	checkInUC := ucBooking.NewCheckIn(agendaRepo, auditDispatcher)
	finalizeUC := ucBooking.NewFinalize(
		agendaRepo,
		fiscalIssuer,
		auditDispatcher,
		cfg.SalonSplitPct,
		cfg.ProfessionalSplitPct,
	)
	cancelUC := ucBooking.NewCancel(agendaRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		proposeUC,
		mergeUC,
		recurrenceUC,
		confirmUC,
		checkInUC,
		finalizeUC,
		cancelUC,
	)

	agendaHandler := handlers.NewAgendaHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Propose)
		api.GET("/appointments", agendaHandler.ListByDate)
		api.GET("/appointments/:id", agendaHandler.Get)

		api.POST("/appointments/:id/merge", appointmentHandler.Merge)
		api.POST("/appointments/:id/recurrence", appointmentHandler.Recurrence)

		api.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		api.PATCH("/appointments/:id/check-in", appointmentHandler.CheckIn)
		api.POST("/appointments/:id/finalize", appointmentHandler.Finalize)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

		api.GET("/recurrences/:recurrenceId", agendaHandler.ListSeries)

		// ------------------------------
		// CATÁLOGO
		// ------------------------------
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/professionals", catalogHandler.ListProfessionals)
		api.GET("/customers/:id", catalogHandler.GetCustomer)
		api.GET("/customers/:id/history", catalogHandler.ListCustomerHistory)
	}
}
