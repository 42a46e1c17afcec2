package schedule

import "time"

// ===============================
// Cadência de recorrência
// ===============================

type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	return f == Weekly || f == Biweekly || f == Monthly
}

// SeriesDates gera as próximas count datas a partir da âncora.
// Semanal soma 7 dias, quinzenal 14; mensal mantém o dia do mês da âncora,
// preso ao último dia quando o mês alvo é mais curto (31/01 → 28/02).
func SeriesDates(anchor time.Time, freq Frequency, count int) []time.Time {
	dates := make([]time.Time, 0, count)

	for i := 1; i <= count; i++ {
		switch freq {
		case Weekly:
			dates = append(dates, anchor.AddDate(0, 0, 7*i))
		case Biweekly:
			dates = append(dates, anchor.AddDate(0, 0, 14*i))
		case Monthly:
			dates = append(dates, addMonthsClamped(anchor, i))
		}
	}

	return dates
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()

	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d,
		t.Hour(), t.Minute(), 0, 0, t.Location())
}
