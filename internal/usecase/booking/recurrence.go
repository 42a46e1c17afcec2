package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/domain/schedule"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
	"github.com/studiobellavita/salon-agenda/internal/timezone"
)

const maxRecurrenceCount = 24

// ======================================================
// INPUT
// ======================================================

type GenerateRecurrenceInput struct {
	TemplateAppointmentID string
	Frequency             schedule.Frequency
	Count                 int
}

// ======================================================
// USE CASE
// ======================================================

// GenerateRecurrence expande um agendamento modelo em N repetições futuras.
// Cada repetição copia a composição de serviços do modelo e nasce pendente,
// sem pagamento. Não há validação antecipada de conflito nas datas futuras:
// conflito em data gerada só aparece se alguém tentar reconfirmar aquele dia.
type GenerateRecurrence struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewGenerateRecurrence(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *GenerateRecurrence {
	return &GenerateRecurrence{
		repo:  repo,
		audit: audit,
	}
}

func (uc *GenerateRecurrence) Execute(
	ctx context.Context,
	in GenerateRecurrenceInput,
) ([]*models.Appointment, error) {

	if !in.Frequency.Valid() {
		return nil, httperr.ErrBusiness("invalid_frequency")
	}
	if in.Count < 1 || in.Count > maxRecurrenceCount {
		return nil, httperr.ErrBusiness("invalid_recurrence_count")
	}

	template, err := uc.repo.GetAppointment(ctx, in.TemplateAppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	anchor, err := timezone.ParseDate(template.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// --------------------------------------------------
	// Série: o modelo e os filhos compartilham o recurrenceId
	// --------------------------------------------------
	if template.RecurrenceID == nil {
		rid := uuid.NewString()
		template.RecurrenceID = &rid
		if err := uc.repo.UpdateAppointment(ctx, template); err != nil {
			return nil, err
		}
	}

	dates := schedule.SeriesDates(anchor, in.Frequency, in.Count)

	children := make([]*models.Appointment, 0, len(dates))
	for _, d := range dates {
		children = append(children, cloneForDate(template, d.Format("2006-01-02")))
	}

	if err := uc.repo.CreateAppointments(ctx, children); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "recurrence_generated",
		Entity:   "appointment",
		EntityID: &template.ID,
		Metadata: map[string]any{
			"frequency": in.Frequency,
			"count":     in.Count,
		},
	})

	return children, nil
}

// cloneForDate copia a composição de serviços do modelo para uma data.
func cloneForDate(template *models.Appointment, date string) *models.Appointment {
	child := &models.Appointment{
		ID:         uuid.NewString(),
		CustomerID: template.CustomerID,
		ProviderID: template.ProviderID,
		ServiceID:  template.ServiceID,

		Date: date,
		Time: template.Time,

		Status: string(domain.StatusPendente),

		CombinedServiceNames: template.CombinedServiceNames,
		RecurrenceID:         template.RecurrenceID,
	}

	zero := 0.0
	child.PricePaid = &zero

	for _, ln := range template.Lines {
		child.Lines = append(child.Lines, models.ServiceLine{
			ID:            uuid.NewString(),
			AppointmentID: child.ID,
			ServiceID:     ln.ServiceID,
			ProviderID:    ln.ProviderID,
			ServiceName:   ln.ServiceName,
			UnitPrice:     ln.UnitPrice,
			Discount:      ln.Discount,
			IsCourtesy:    ln.IsCourtesy,
			StartTime:     ln.StartTime,
			ProductsUsed:  ln.ProductsUsed,
			Position:      ln.Position,
		})
	}

	return child
}
