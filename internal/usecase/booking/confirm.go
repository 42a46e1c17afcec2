package booking

import (
	"context"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// ToggleConfirm alterna pendente ⇄ confirmado.
type ToggleConfirm struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewToggleConfirm(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ToggleConfirm {
	return &ToggleConfirm{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ToggleConfirm) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.ToggleConfirm(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_confirm_toggled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
