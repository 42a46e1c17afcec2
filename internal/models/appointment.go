package models

import (
	"strings"
	"time"
)

// Agendamento: o agregado central da agenda. O profissional/serviço/horário
// "primário" espelha a primeira linha de serviço (compatibilidade com a
// listagem diária, que só mostra o primário).
type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	CustomerID string   `gorm:"type:uuid;index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ProviderID string       `gorm:"type:uuid;index" json:"provider_id"`
	Provider   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"provider"`

	ServiceID string  `gorm:"type:uuid" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Data "2006-01-02" e hora "15:04", sempre normalizadas ao minuto.
	Date string `gorm:"size:10;index" json:"date"`
	Time string `gorm:"size:5" json:"time"`

	Status string `gorm:"size:20;default:'pendente'" json:"status"`

	// Todas as linhas, inclusive a primária (position 0).
	Lines    []ServiceLine `gorm:"foreignKey:AppointmentID" json:"lines"`
	Payments []PaymentLine `gorm:"foreignKey:AppointmentID" json:"payments"`

	CombinedServiceNames string `gorm:"size:255" json:"combined_service_names"`

	AppliedCouponCode *string  `gorm:"size:40" json:"applied_coupon_code"`
	DiscountAmount    float64  `gorm:"type:decimal(10,2);default:0" json:"discount_amount"`
	PricePaid         *float64 `gorm:"type:decimal(10,2)" json:"price_paid"`

	PaymentDate  *time.Time `json:"payment_date"`
	RecurrenceID *string    `gorm:"type:uuid;index" json:"recurrence_id"`

	CancelReason string `gorm:"size:255" json:"cancel_reason"`
	Notes        string `gorm:"size:255" json:"notes"`

	// Situação da emissão fiscal (vazio enquanto não finalizado como pago).
	FiscalStatus string `gorm:"size:20" json:"fiscal_status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderIDs retorna o profissional primário e os das linhas adicionais.
func (a *Appointment) ProviderIDs() []string {
	seen := map[string]bool{a.ProviderID: true}
	ids := []string{a.ProviderID}
	for _, ln := range a.Lines {
		if ln.ProviderID != "" && !seen[ln.ProviderID] {
			seen[ln.ProviderID] = true
			ids = append(ids, ln.ProviderID)
		}
	}
	return ids
}

// Uma linha de serviço: unidade de trabalho com preço congelado na reserva.
type ServiceLine struct {
	ID            string `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID string `gorm:"type:uuid;index" json:"appointment_id"`

	ServiceID  string `gorm:"type:uuid" json:"service_id"`
	ProviderID string `gorm:"type:uuid" json:"provider_id"`

	ServiceName string `gorm:"size:100" json:"service_name"`

	UnitPrice  float64 `gorm:"type:decimal(10,2)" json:"unit_price"`
	Discount   float64 `gorm:"type:decimal(10,2);default:0" json:"discount"`
	IsCourtesy bool    `gorm:"default:false" json:"is_courtesy"`

	StartTime string `gorm:"size:5" json:"start_time"`

	// Produtos consumidos, separados por vírgula.
	ProductsUsed string `gorm:"size:255" json:"products_used"`

	// Agrupa linhas de vários agendamentos do mesmo dia num único checkout.
	ParentAppointmentID *string `gorm:"type:uuid" json:"parent_appointment_id"`

	Position int `gorm:"default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *ServiceLine) Products() []string {
	if l.ProductsUsed == "" {
		return nil
	}
	return strings.Split(l.ProductsUsed, ",")
}

func (l *ServiceLine) SetProducts(products []string) {
	l.ProductsUsed = strings.Join(products, ",")
}

// Uma forma de pagamento declarada no checkout.
type PaymentLine struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AppointmentID string `gorm:"type:uuid;index" json:"appointment_id"`

	Method       string  `gorm:"size:30;not null" json:"method"`
	Amount       float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Installments *int    `json:"installments"`
	CardBrand    *string `gorm:"size:30" json:"card_brand"`

	CreatedAt time.Time `json:"created_at"`
}
