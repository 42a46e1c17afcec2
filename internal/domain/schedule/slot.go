package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ===============================
// Modelo de horário
// ===============================

// NormalizeTime leva "9:5" / "09:05:00" para "09:05" (granularidade de
// minuto). Entrada inválida volta como veio; quem valida é o handler.
func NormalizeTime(t string) string {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) < 2 {
		return t
	}

	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return t
	}

	return fmt.Sprintf("%02d:%02d", h, m)
}

// SameSlot compara dois horários no mesmo dia, ao minuto.
func SameSlot(a, b string) bool {
	return NormalizeTime(a) == NormalizeTime(b)
}

// SlotKey identifica a ocupação de um profissional num instante.
type SlotKey struct {
	ProviderID string
	Date       string
	Time       string
}

func NewSlotKey(providerID, date, timeStr string) SlotKey {
	return SlotKey{
		ProviderID: providerID,
		Date:       date,
		Time:       NormalizeTime(timeStr),
	}
}
