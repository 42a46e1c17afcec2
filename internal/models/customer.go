package models

import (
	"strings"
	"time"
)

// Cliente do salão, com os campos de crediário ("fiado") e restrições.
type Customer struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// Saldo devedor acumulado; só o checkout mexe aqui.
	OutstandingBalance float64 `gorm:"type:decimal(10,2);default:0" json:"outstanding_balance"`
	TotalSpent         float64 `gorm:"type:decimal(10,2);default:0" json:"total_spent"`
	TotalVisits        int     `gorm:"default:0" json:"total_visits"`
	LastVisit          *time.Time `json:"last_visit"`

	// Profissionais com quem a cliente não pode ser agendada, separados
	// por vírgula. Regra de negócio dura: troca automática, nunca silêncio.
	RestrictedProviderIDs string `gorm:"size:500" json:"restricted_provider_ids"`

	IsBlocked bool `gorm:"default:false" json:"is_blocked"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) RestrictedProviders() map[string]bool {
	set := map[string]bool{}
	if c.RestrictedProviderIDs == "" {
		return set
	}
	for _, id := range strings.Split(c.RestrictedProviderIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}

func (c *Customer) IsProviderRestricted(providerID string) bool {
	return c.RestrictedProviders()[providerID]
}

// Entrada do histórico da cliente (cancelamentos, atendimentos concluídos).
type CustomerHistoryEntry struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID string `gorm:"type:uuid;index" json:"customer_id"`

	AppointmentID *string `gorm:"type:uuid" json:"appointment_id"`

	Kind   string `gorm:"size:30;not null" json:"kind"`
	Detail string `gorm:"size:500" json:"detail"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	HistoryCancelled = "cancelamento"
	HistoryCompleted = "atendimento"
	HistoryDebt      = "fiado"
)
