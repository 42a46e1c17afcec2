package checkout

import (
	"github.com/shopspring/decimal"
)

// ======================================================
// Segregação de valores (Salão Parceiro)
// ======================================================

// SplitFiscalValues reparte o total da nota entre salão e profissional.
// Cada lado é arredondado a 2 casas por conta própria; a soma pode diferir
// do total em um centavo e esse resíduo é aceito, não reconciliado.
func SplitFiscalValues(
	total decimal.Decimal,
	salonPct float64,
	professionalPct float64,
) (salonValue, professionalValue decimal.Decimal) {

	hundred := decimal.NewFromInt(100)

	salonValue = total.
		Mul(decimal.NewFromFloat(salonPct)).
		Div(hundred).
		Round(2)

	professionalValue = total.
		Mul(decimal.NewFromFloat(professionalPct)).
		Div(hundred).
		Round(2)

	return salonValue, professionalValue
}
