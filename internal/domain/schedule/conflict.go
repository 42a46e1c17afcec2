package schedule

import (
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// ===============================
// Detector de conflito
// ===============================

// FindConflict varre os agendamentos de um dia e devolve o primeiro que
// ocupa algum dos profissionais candidatos no mesmo minuto. Agendamentos
// cancelados não contam; excludeID deixa re-salvar sem conflitar consigo
// mesmo. Leitura pura: quem decide o que fazer com o conflito é o caso
// de uso (cliente igual → merge, cliente diferente → rejeição).
func FindConflict(
	dayAppointments []models.Appointment,
	candidateProviderIDs []string,
	timeStr string,
	excludeID string,
) *models.Appointment {

	candidates := map[string]bool{}
	for _, id := range candidateProviderIDs {
		if id != "" {
			candidates[id] = true
		}
	}

	want := NormalizeTime(timeStr)

	for i := range dayAppointments {
		ap := &dayAppointments[i]

		if ap.ID == excludeID {
			continue
		}
		if ap.Status == string(domain.StatusCancelado) {
			continue
		}
		if NormalizeTime(ap.Time) != want {
			continue
		}

		// primário ou qualquer linha adicional
		for _, pid := range ap.ProviderIDs() {
			if candidates[pid] {
				return ap
			}
		}
	}

	return nil
}
