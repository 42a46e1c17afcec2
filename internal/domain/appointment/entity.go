package appointment

import (
	"strings"
	"time"

	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// ===============================
// Ações de domínio
// ===============================

// ToggleConfirm alterna pendente ⇄ confirmado.
func ToggleConfirm(ap *models.Appointment) error {
	if err := CanToggleConfirm(Status(ap.Status)); err != nil {
		return err
	}

	if ap.Status == string(StatusConfirmado) {
		ap.Status = string(StatusPendente)
	} else {
		ap.Status = string(StatusConfirmado)
	}
	return nil
}

// CheckIn coloca o agendamento em andamento (começa o atendimento).
func CheckIn(ap *models.Appointment) error {
	if err := CanCheckIn(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusEmAndamento)
	return nil
}

// Finalize encerra como concluído registrando o valor efetivamente pago.
func Finalize(ap *models.Appointment, pricePaid float64, now time.Time) error {
	if err := CanFinalize(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConcluido)
	ap.PricePaid = &pricePaid
	ap.PaymentDate = &now
	ap.CompletedAt = &now
	return nil
}

// Cancel é o soft-delete do agendamento; motivo é obrigatório.
func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return httperr.ErrBusiness("missing_cancel_reason")
	}
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelado)
	ap.CancelReason = strings.TrimSpace(reason)
	ap.CancelledAt = &now
	return nil
}

// CombinedServiceNames junta os nomes das linhas na ordem, " + ".
func CombinedServiceNames(lines []models.ServiceLine) string {
	names := make([]string, 0, len(lines))
	for _, ln := range lines {
		if ln.ServiceName != "" {
			names = append(names, ln.ServiceName)
		}
	}
	return strings.Join(names, " + ")
}

// AppendLines acrescenta linhas ao agregado (merge) e refaz o nome composto.
func AppendLines(ap *models.Appointment, lines []models.ServiceLine) error {
	if err := CanMergeInto(Status(ap.Status)); err != nil {
		return err
	}

	base := len(ap.Lines)
	for i := range lines {
		lines[i].AppointmentID = ap.ID
		lines[i].Position = base + i
		ap.Lines = append(ap.Lines, lines[i])
	}

	ap.CombinedServiceNames = CombinedServiceNames(ap.Lines)
	return nil
}
