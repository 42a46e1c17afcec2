package appointment

import "github.com/studiobellavita/salon-agenda/internal/httperr"

// ===============================
// Status do agendamento
// ===============================

type Status string

const (
	StatusPendente    Status = "pendente"
	StatusConfirmado  Status = "confirmado"
	StatusEmAndamento Status = "em_andamento"
	StatusConcluido   Status = "concluido"
	StatusCancelado   Status = "cancelado"
)

func InitialStatus() Status {
	return StatusPendente
}

// IsTerminal: nenhum estado sai de concluído ou cancelado.
func IsTerminal(s Status) bool {
	return s == StatusConcluido || s == StatusCancelado
}

// ===============================
// Validações de transição
// ===============================

// CanToggleConfirm: pendente ⇄ confirmado, sem outro significado de negócio.
func CanToggleConfirm(current Status) error {
	if current != StatusPendente && current != StatusConfirmado {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCheckIn: inicia o atendimento (abre o checkout).
func CanCheckIn(current Status) error {
	if current != StatusPendente && current != StatusConfirmado {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanFinalize: só finaliza quem está em andamento.
func CanFinalize(current Status) error {
	if current == StatusConcluido {
		return httperr.ErrBusiness("already_finalized")
	}
	if current != StatusEmAndamento {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: qualquer estado não terminal.
func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanMergeInto: o alvo de um merge não pode estar encerrado.
func CanMergeInto(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
