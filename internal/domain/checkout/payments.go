package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// ======================================================
// Conferência dos pagamentos
// ======================================================

// Tolerância de arredondamento entre a soma declarada e o total.
var paymentTolerance = decimal.NewFromFloat(0.01)

// SumPayments soma os valores declarados.
func SumPayments(payments []models.PaymentLine) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(decimal.NewFromFloat(p.Amount))
	}
	return sum.Round(2)
}

// ReconcilePayments aceita os pagamentos somente se |Σ − total| ≤ 0.01.
// Divergência devolve payment_mismatch: a finalização é recusada, nunca
// ajustada por conta própria.
func ReconcilePayments(
	payments []models.PaymentLine,
	total decimal.Decimal,
) (decimal.Decimal, error) {

	declared := SumPayments(payments)

	if declared.Sub(total).Abs().GreaterThan(paymentTolerance) {
		return declared, httperr.ErrBusiness("payment_mismatch")
	}

	return declared, nil
}
