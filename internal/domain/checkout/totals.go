package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/studiobellavita/salon-agenda/internal/models"
)

// ======================================================
// Total do checkout
// ======================================================

// ComputeTotal calcula o valor a pagar de um atendimento:
//
//	base  = Σ (linha cortesia ? 0 : preço − desconto)
//	cupom = percentual sobre a base, ou valor fixo
//	base pós-cupom nunca fica negativa; o fiado entra depois do cupom
//	e o resultado final também não fica negativo.
//
// Função pura: o total oficial é sempre recalculado na finalização,
// nunca o valor informativo congelado na reserva.
func ComputeTotal(
	lines []models.ServiceLine,
	coupon *models.Coupon,
	includeDebt bool,
	outstandingBalance float64,
) decimal.Decimal {

	base := decimal.Zero
	for _, ln := range lines {
		if ln.IsCourtesy {
			continue
		}
		price := decimal.NewFromFloat(ln.UnitPrice).
			Sub(decimal.NewFromFloat(ln.Discount))
		base = base.Add(price)
	}

	if coupon != nil && coupon.Active {
		switch coupon.Kind {
		case models.CouponPercentage:
			pct := decimal.NewFromFloat(coupon.Value).
				Div(decimal.NewFromInt(100))
			base = base.Sub(base.Mul(pct))
		case models.CouponFixed:
			base = base.Sub(decimal.NewFromFloat(coupon.Value))
		}
	}

	// cupom maior que a base não gera crédito
	if base.IsNegative() {
		base = decimal.Zero
	}

	if includeDebt {
		base = base.Add(decimal.NewFromFloat(outstandingBalance))
	}

	if base.IsNegative() {
		base = decimal.Zero
	}

	return base.Round(2)
}

// BookingTimePrice soma preços no momento da reserva. Só informativo.
func BookingTimePrice(lines []models.ServiceLine) decimal.Decimal {
	return ComputeTotal(lines, nil, false, 0)
}
