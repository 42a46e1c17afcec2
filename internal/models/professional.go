package models

import "time"

// Profissional que atende no salão.
type Professional struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`

	Active bool `gorm:"default:true" json:"active"`

	// CPF/CNPJ usado no registro de segregação fiscal (Salão Parceiro).
	FiscalTaxID string `gorm:"size:20" json:"fiscal_tax_id"`

	// Percentual do profissional na nota; 0 usa o padrão da configuração.
	CommissionPct float64 `gorm:"type:decimal(5,2);default:0" json:"commission_pct"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
