package models

import "time"

const (
	FiscalPending = "pendente"
	FiscalQueued  = "enfileirada"
	FiscalFailed  = "falhou"
)

// Registro de segregação de valores (Salão Parceiro) gerado no checkout pago.
// A emissão da NFSe em si (protocolo, retries, webhook) é do colaborador
// externo; aqui só guardamos o que ele consome e a situação do repasse.
type FiscalIssuance struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AppointmentID string `gorm:"type:uuid;uniqueIndex" json:"appointment_id"`

	TotalValue        float64 `gorm:"type:decimal(10,2);not null" json:"total_value"`
	SalonValue        float64 `gorm:"type:decimal(10,2);not null" json:"salon_value"`
	ProfessionalValue float64 `gorm:"type:decimal(10,2);not null" json:"professional_value"`

	ProfessionalTaxID  string `gorm:"size:20" json:"professional_tax_id"`
	ServiceDescription string `gorm:"size:255" json:"service_description"`

	Status   string `gorm:"size:20;default:'pendente'" json:"status"`
	Attempts int    `gorm:"default:0" json:"attempts"`
	LastError string `gorm:"size:255" json:"last_error"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
