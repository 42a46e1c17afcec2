package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studiobellavita/salon-agenda/internal/domain/schedule"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/httpresp"
	"github.com/studiobellavita/salon-agenda/internal/models"
	ucBooking "github.com/studiobellavita/salon-agenda/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	proposeUC    *ucBooking.ProposeBooking
	mergeUC      *ucBooking.MergeCollision
	recurrenceUC *ucBooking.GenerateRecurrence
	confirmUC    *ucBooking.ToggleConfirm
	checkInUC    *ucBooking.CheckIn
	finalizeUC   *ucBooking.Finalize
	cancelUC     *ucBooking.Cancel
}

func NewAppointmentHandler(
	proposeUC *ucBooking.ProposeBooking,
	mergeUC *ucBooking.MergeCollision,
	recurrenceUC *ucBooking.GenerateRecurrence,
	confirmUC *ucBooking.ToggleConfirm,
	checkInUC *ucBooking.CheckIn,
	finalizeUC *ucBooking.Finalize,
	cancelUC *ucBooking.Cancel,
) *AppointmentHandler {
	return &AppointmentHandler{
		proposeUC:    proposeUC,
		mergeUC:      mergeUC,
		recurrenceUC: recurrenceUC,
		confirmUC:    confirmUC,
		checkInUC:    checkInUC,
		finalizeUC:   finalizeUC,
		cancelUC:     cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type LineRequest struct {
	ServiceID  string   `json:"service_id" binding:"required"`
	ProviderID string   `json:"provider_id" binding:"required"`
	UnitPrice  *float64 `json:"unit_price"`
	Discount   float64  `json:"discount"`
	IsCourtesy bool     `json:"is_courtesy"`
	StartTime  string   `json:"start_time"`
	Products   []string `json:"products"`
}

type ProposeRequest struct {
	CustomerID string        `json:"customer_id" binding:"required"`
	Date       string        `json:"date" binding:"required"`
	Time       string        `json:"time" binding:"required"`
	Notes      string        `json:"notes"`
	Lines      []LineRequest `json:"lines" binding:"required"`

	ExcludeAppointmentID string `json:"exclude_appointment_id"`

	Recurrence *RecurrenceRequest `json:"recurrence"`
}

type RecurrenceRequest struct {
	Frequency string `json:"frequency" binding:"required"`
	Count     int    `json:"count" binding:"required"`
}

type MergeRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`

	Lines []models.ServiceLine `json:"lines" binding:"required"`

	DuplicateAppointmentID string `json:"duplicate_appointment_id"`
}

type PaymentRequest struct {
	Method       string  `json:"method" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	Installments *int    `json:"installments"`
	CardBrand    *string `json:"card_brand"`
}

type FinalizeRequest struct {
	Payments    []PaymentRequest `json:"payments"`
	CouponCode  *string          `json:"coupon_code"`
	IncludeDebt bool             `json:"include_debt"`
	AsDebt      bool             `json:"as_debt"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ======================================================
// PROPOSE
// ======================================================

func (h *AppointmentHandler) Propose(c *gin.Context) {
	var req ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	lines := make([]ucBooking.LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, ucBooking.LineInput{
			ServiceID:  l.ServiceID,
			ProviderID: l.ProviderID,
			UnitPrice:  l.UnitPrice,
			Discount:   l.Discount,
			IsCourtesy: l.IsCourtesy,
			StartTime:  l.StartTime,
			Products:   l.Products,
		})
	}

	result, err := h.proposeUC.Execute(c.Request.Context(), ucBooking.ProposeBookingInput{
		CustomerID:           req.CustomerID,
		Date:                 req.Date,
		Time:                 req.Time,
		Lines:                lines,
		Notes:                req.Notes,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	switch result.Outcome {
	case ucBooking.OutcomeComposed:
		resp := gin.H{
			"outcome":     result.Outcome,
			"appointment": result.Appointment,
			"substituted": result.Substituted,
		}
		if result.Substituted {
			resp["substituted_from"] = result.SubstitutedFrom
			resp["substituted_to"] = result.SubstitutedTo
		}

		// a recorrência é opcional na própria reserva
		if req.Recurrence != nil {
			children, err := h.recurrenceUC.Execute(
				c.Request.Context(),
				ucBooking.GenerateRecurrenceInput{
					TemplateAppointmentID: result.Appointment.ID,
					Frequency:             schedule.Frequency(req.Recurrence.Frequency),
					Count:                 req.Recurrence.Count,
				},
			)
			if err != nil {
				writeBusinessError(c, err)
				return
			}
			resp["recurrence_children"] = children
		}

		c.JSON(201, resp)

	case ucBooking.OutcomeConflictSameCustomer:
		c.JSON(409, gin.H{
			"outcome":       result.Outcome,
			"conflict":      result.Conflict,
			"pending_lines": result.PendingLines,
		})

	case ucBooking.OutcomeConflictDifferentCustomer:
		c.JSON(409, gin.H{
			"outcome":              result.Outcome,
			"conflict_provider_id": result.ConflictProviderID,
		})
	}
}

// ======================================================
// MERGE
// ======================================================

func (h *AppointmentHandler) Merge(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.mergeUC.Execute(c.Request.Context(), ucBooking.MergeCollisionInput{
		TargetAppointmentID:    c.Param("id"),
		CustomerID:             req.CustomerID,
		Date:                   req.Date,
		Time:                   req.Time,
		Lines:                  req.Lines,
		DuplicateAppointmentID: req.DuplicateAppointmentID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// RECURRENCE
// ======================================================

func (h *AppointmentHandler) Recurrence(c *gin.Context) {
	var req RecurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	children, err := h.recurrenceUC.Execute(c.Request.Context(), ucBooking.GenerateRecurrenceInput{
		TemplateAppointmentID: c.Param("id"),
		Frequency:             schedule.Frequency(req.Frequency),
		Count:                 req.Count,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(201, gin.H{"children": children, "total": len(children)})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	ap, err := h.confirmUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	ap, err := h.checkInUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_cancel_reason", "Motivo do cancelamento é obrigatório.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// FINALIZE
// ======================================================

func (h *AppointmentHandler) Finalize(c *gin.Context) {
	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	payments := make([]ucBooking.PaymentInput, 0, len(req.Payments))
	for _, p := range req.Payments {
		payments = append(payments, ucBooking.PaymentInput{
			Method:       p.Method,
			Amount:       p.Amount,
			Installments: p.Installments,
			CardBrand:    p.CardBrand,
		})
	}

	result, err := h.finalizeUC.Execute(c.Request.Context(), ucBooking.FinalizeInput{
		AppointmentID: c.Param("id"),
		Payments:      payments,
		CouponCode:    req.CouponCode,
		IncludeDebt:   req.IncludeDebt,
		AsDebt:        req.AsDebt,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	switch result.Outcome {
	case ucBooking.FinalizePaid, ucBooking.FinalizeDebt:
		c.JSON(200, gin.H{
			"outcome":     result.Outcome,
			"appointment": result.Appointment,
			"total":       result.Total,
		})

	case ucBooking.FinalizeMismatch:
		c.JSON(422, gin.H{
			"outcome":  result.Outcome,
			"expected": result.Expected,
			"declared": result.Declared,
		})

	case ucBooking.FinalizeBlocked:
		c.JSON(409, gin.H{
			"outcome": result.Outcome,
			"reason":  result.Reason,
		})
	}
}
