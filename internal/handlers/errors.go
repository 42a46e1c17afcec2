package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studiobellavita/salon-agenda/internal/httperr"
)

// mensagens por código de negócio
var businessMessages = map[string]string{
	"invalid_request":          "Dados inválidos.",
	"missing_lines":            "Informe ao menos um serviço.",
	"invalid_discount":         "Desconto não pode ser negativo.",
	"customer_not_found":       "Cliente não encontrada.",
	"appointment_not_found":    "Agendamento não encontrado.",
	"service_not_found":        "Serviço não encontrado.",
	"no_eligible_provider":     "Nenhum profissional disponível fora da restrição.",
	"customer_mismatch":        "O agendamento pertence a outra cliente.",
	"slot_mismatch":            "Horários diferentes não podem ser mesclados.",
	"invalid_state":            "Transição de status inválida.",
	"already_finalized":        "Atendimento já concluído.",
	"missing_cancel_reason":    "Motivo do cancelamento é obrigatório.",
	"invalid_coupon":           "Cupom inválido ou inativo.",
	"payment_mismatch":         "Pagamentos não batem com o total.",
	"debt_with_payments":       "Fiado não aceita pagamentos declarados.",
	"time_conflict":            "Horário já ocupado para este profissional.",
	"invalid_frequency":        "Frequência de recorrência inválida.",
	"invalid_recurrence_count": "Quantidade de repetições fora do limite.",
	"invalid_date":             "Data inválida.",
}

var businessStatus = map[string]int{
	"customer_not_found":    404,
	"appointment_not_found": 404,
	"service_not_found":     404,
	"invalid_state":         409,
	"time_conflict":         409,
	"already_finalized":     409,
	"customer_mismatch":     409,
	"slot_mismatch":         409,
}

// writeBusinessError mapeia erro de negócio para o HTTP certo; o resto é 500.
func writeBusinessError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	status := businessStatus[code]
	if status == 0 {
		status = 400
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = code
	}

	httperr.Write(c, status, code, msg)
}
