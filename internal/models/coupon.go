package models

import "time"

const (
	CouponPercentage = "percentage"
	CouponFixed      = "fixed"
)

// Cupom de desconto aplicável no checkout.
type Coupon struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:40;uniqueIndex;not null" json:"code"`

	// percentage ou fixed
	Kind  string  `gorm:"size:20;not null" json:"kind"`
	Value float64 `gorm:"type:decimal(10,2);not null" json:"value"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
