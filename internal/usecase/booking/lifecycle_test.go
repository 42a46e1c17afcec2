package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

func seedLifecycle(repo *fakeRepo, status string) {
	repo.customers["cust-1"] = &models.Customer{ID: "cust-1", Name: "Ana"}
	repo.appointments["ap-1"] = &models.Appointment{
		ID:                   "ap-1",
		CustomerID:           "cust-1",
		ProviderID:           "prov-1",
		Date:                 "2026-03-10",
		Time:                 "10:00",
		Status:               status,
		CombinedServiceNames: "Corte",
	}
}

// -------- Confirmação --------

func TestToggleConfirm_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusPendente))

	uc := NewToggleConfirm(repo, noopAudit())

	ap, err := uc.Execute(context.Background(), "ap-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmado), ap.Status)

	ap, err = uc.Execute(context.Background(), "ap-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendente), ap.Status)
}

func TestToggleConfirm_RejectsStarted(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusEmAndamento))

	uc := NewToggleConfirm(repo, noopAudit())

	_, err := uc.Execute(context.Background(), "ap-1")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

// -------- Check-in --------

func TestCheckIn_OpensAppointment(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusConfirmado))

	uc := NewCheckIn(repo, noopAudit())

	ap, err := uc.Execute(context.Background(), "ap-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusEmAndamento), ap.Status)
	assert.Equal(t, string(domain.StatusEmAndamento), repo.appointments["ap-1"].Status)
}

func TestCheckIn_AdvancesNextSameDay(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusConfirmado))

	// dois horários depois no mesmo dia: o mais cedo é adiantado junto
	repo.appointments["ap-2"] = &models.Appointment{
		ID: "ap-2", CustomerID: "cust-1", ProviderID: "prov-2",
		Date: "2026-03-10", Time: "14:00",
		Status: string(domain.StatusPendente),
	}
	repo.appointments["ap-3"] = &models.Appointment{
		ID: "ap-3", CustomerID: "cust-1", ProviderID: "prov-3",
		Date: "2026-03-10", Time: "11:30",
		Status: string(domain.StatusConfirmado),
	}

	uc := NewCheckIn(repo, noopAudit())

	_, err := uc.Execute(context.Background(), "ap-1")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusEmAndamento), repo.appointments["ap-3"].Status)
	assert.Equal(t, string(domain.StatusPendente), repo.appointments["ap-2"].Status)
}

func TestCheckIn_IgnoresOtherCustomersAndEarlierTimes(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusConfirmado))

	repo.appointments["ap-earlier"] = &models.Appointment{
		ID: "ap-earlier", CustomerID: "cust-1", ProviderID: "prov-2",
		Date: "2026-03-10", Time: "08:00",
		Status: string(domain.StatusConfirmado),
	}
	repo.appointments["ap-other"] = &models.Appointment{
		ID: "ap-other", CustomerID: "cust-2", ProviderID: "prov-2",
		Date: "2026-03-10", Time: "15:00",
		Status: string(domain.StatusConfirmado),
	}

	uc := NewCheckIn(repo, noopAudit())

	_, err := uc.Execute(context.Background(), "ap-1")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmado), repo.appointments["ap-earlier"].Status)
	assert.Equal(t, string(domain.StatusConfirmado), repo.appointments["ap-other"].Status)
}

func TestCheckIn_AdvanceFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusConfirmado))

	repo.appointments["ap-2"] = &models.Appointment{
		ID: "ap-2", CustomerID: "cust-1", ProviderID: "prov-2",
		Date: "2026-03-10", Time: "14:00",
		Status: string(domain.StatusConfirmado),
	}
	repo.failUpdateIDs["ap-2"] = true

	uc := NewCheckIn(repo, noopAudit())

	ap, err := uc.Execute(context.Background(), "ap-1")
	require.NoError(t, err)

	// o check-in principal vale mesmo com o adiantamento falhando
	assert.Equal(t, string(domain.StatusEmAndamento), ap.Status)
	assert.Equal(t, string(domain.StatusConfirmado), repo.appointments["ap-2"].Status)
}

func TestCheckIn_RejectsConcluded(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusConcluido))

	uc := NewCheckIn(repo, noopAudit())

	_, err := uc.Execute(context.Background(), "ap-1")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

// -------- Cancelamento --------

func TestCancel_WritesHistory(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusConfirmado))

	uc := NewCancel(repo, noopAudit())

	ap, err := uc.Execute(context.Background(), "ap-1", "cliente desmarcou")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelado), ap.Status)
	assert.Equal(t, "cliente desmarcou", ap.CancelReason)
	assert.NotNil(t, ap.CancelledAt)

	require.Len(t, repo.history, 1)
	assert.Equal(t, models.HistoryCancelled, repo.history[0].Kind)
	assert.Contains(t, repo.history[0].Detail, "cliente desmarcou")
	assert.Contains(t, repo.history[0].Detail, "Corte")
}

func TestCancel_ReasonRequired(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusPendente))

	uc := NewCancel(repo, noopAudit())

	_, err := uc.Execute(context.Background(), "ap-1", "  ")
	assert.True(t, httperr.IsBusiness(err, "missing_cancel_reason"))
	assert.Empty(t, repo.history)
}

func TestCancel_Irreversible(t *testing.T) {
	repo := newFakeRepo()
	seedLifecycle(repo, string(domain.StatusCancelado))

	uc := NewCancel(repo, noopAudit())

	_, err := uc.Execute(context.Background(), "ap-1", "de novo")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
