package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
	"github.com/studiobellavita/salon-agenda/internal/timezone"
)

// ======================================================
// AGENDA (leituras do calendário)
// ======================================================

type AgendaHandler struct {
	db *gorm.DB
}

func NewAgendaHandler(db *gorm.DB) *AgendaHandler {
	return &AgendaHandler{db: db}
}

// ListByDate devolve o dia inteiro, com linhas e pagamentos, inclusive
// cancelados (a UI decide como exibir o cancelado).
func (h *AgendaHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}
	if _, err := timezone.ParseDate(dateStr); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	var aps []models.Appointment
	h.db.WithContext(c.Request.Context()).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Payments").
		Preload("Customer").
		Where("date = ?", dateStr).
		Order("time ASC").
		Find(&aps)

	c.JSON(200, aps)
}

// Get devolve um agendamento completo.
func (h *AgendaHandler) Get(c *gin.Context) {
	var ap models.Appointment
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Payments").
		Preload("Customer").
		Where("id = ?", c.Param("id")).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(200, ap)
}

// ListSeries devolve as repetições de uma série de recorrência.
func (h *AgendaHandler) ListSeries(c *gin.Context) {
	var aps []models.Appointment
	h.db.WithContext(c.Request.Context()).
		Where(
			"recurrence_id = ? AND status <> ?",
			c.Param("recurrenceId"), string(domain.StatusCancelado),
		).
		Order("date ASC, time ASC").
		Find(&aps)

	c.JSON(200, aps)
}
