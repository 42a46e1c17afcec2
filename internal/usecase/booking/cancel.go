package booking

import (
	"context"
	"fmt"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
	"github.com/studiobellavita/salon-agenda/internal/timezone"
)

// Cancel é o soft-delete do agendamento: status cancelado, motivo
// obrigatório, entrada no histórico da cliente. Irreversível.
type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancel(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Cancel {
	return &Cancel{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	appointmentID string,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.Now()
	if err := domain.Cancel(ap, reason, now); err != nil {
		return nil, err
	}

	entry := &models.CustomerHistoryEntry{
		CustomerID:    ap.CustomerID,
		AppointmentID: &ap.ID,
		Kind:          models.HistoryCancelled,
		Detail: fmt.Sprintf(
			"%s em %s %s — %s",
			ap.CombinedServiceNames, ap.Date, ap.Time, ap.CancelReason,
		),
	}

	if err := uc.repo.CancelAppointment(ctx, ap, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"reason": ap.CancelReason},
	})

	return ap, nil
}
