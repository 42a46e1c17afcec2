package booking

import (
	"context"
	"log"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/domain/schedule"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// CheckIn abre o atendimento (em andamento) e, de carona, tenta adiantar o
// próximo agendamento da mesma cliente no mesmo dia. O adiantamento é melhor
// esforço: se falhar, fica no log e o check-in principal segue valendo.
type CheckIn struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCheckIn(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CheckIn {
	return &CheckIn{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CheckIn) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CheckIn(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.advanceNextSameDay(ctx, ap)

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_checked_in",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// advanceNextSameDay coloca em andamento o próximo agendamento do dia da
// mesma cliente, na ordem dos horários.
func (uc *CheckIn) advanceNextSameDay(ctx context.Context, current *models.Appointment) {
	sameDay, err := uc.repo.ListCustomerDayAppointments(
		ctx,
		current.CustomerID,
		current.Date,
	)
	if err != nil {
		log.Printf("check-in: não foi possível buscar agendamentos do dia: %v", err)
		return
	}

	now := schedule.NormalizeTime(current.Time)

	var next *models.Appointment
	for i := range sameDay {
		other := &sameDay[i]
		if other.ID == current.ID {
			continue
		}
		if domain.CanCheckIn(domain.Status(other.Status)) != nil {
			continue
		}
		t := schedule.NormalizeTime(other.Time)
		if t <= now {
			continue
		}
		if next == nil || t < schedule.NormalizeTime(next.Time) {
			next = other
		}
	}

	if next == nil {
		return
	}

	if err := domain.CheckIn(next); err != nil {
		return
	}
	if err := uc.repo.UpdateAppointment(ctx, next); err != nil {
		log.Printf("check-in: adiantamento do próximo agendamento falhou: %v", err)
	}
}
