package booking

import (
	"context"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/domain/schedule"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type MergeCollisionInput struct {
	TargetAppointmentID string

	CustomerID string
	Date       string
	Time       string

	// Linhas resolvidas pela proposta que colidiu.
	Lines []models.ServiceLine

	// Se a duplicata chegou a ser persistida, precisa sumir junto do merge.
	DuplicateAppointmentID string
}

// ======================================================
// USE CASE
// ======================================================

// MergeCollision dobra uma reserva colidente para dentro do agendamento já
// existente da mesma cliente no mesmo horário, em vez de criar duplicata.
// Acrescentar as linhas e remover a duplicata é uma transação só: merge
// parcial é violação de invariante. Não há retry automático; se a gravação
// falhar, o chamador volta ao estado pré-merge e mostra o erro.
type MergeCollision struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMergeCollision(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *MergeCollision {
	return &MergeCollision{
		repo:  repo,
		audit: audit,
	}
}

func (uc *MergeCollision) Execute(
	ctx context.Context,
	in MergeCollisionInput,
) (*models.Appointment, error) {

	if len(in.Lines) == 0 {
		return nil, httperr.ErrBusiness("missing_lines")
	}

	target, err := uc.repo.GetAppointment(ctx, in.TargetAppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// --------------------------------------------------
	// Pré-condições: mesma cliente, mesmo instante, alvo aberto
	// --------------------------------------------------
	if target.CustomerID != in.CustomerID {
		return nil, httperr.ErrBusiness("customer_mismatch")
	}
	if target.Date != in.Date || !schedule.SameSlot(target.Time, in.Time) {
		return nil, httperr.ErrBusiness("slot_mismatch")
	}

	newLines := make([]models.ServiceLine, len(in.Lines))
	copy(newLines, in.Lines)

	if err := domain.AppendLines(target, newLines); err != nil {
		return nil, err
	}

	if err := uc.repo.MergeAppointments(
		ctx,
		target,
		newLines,
		in.DuplicateAppointmentID,
	); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_merged",
		Entity:   "appointment",
		EntityID: &target.ID,
		Metadata: map[string]any{
			"added_lines": len(newLines),
			"duplicate":   in.DuplicateAppointmentID,
		},
	})

	return target, nil
}
