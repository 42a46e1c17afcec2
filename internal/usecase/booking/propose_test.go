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

func seedCatalog(repo *fakeRepo) {
	repo.customers["cust-1"] = &models.Customer{ID: "cust-1", Name: "Ana"}
	repo.customers["cust-2"] = &models.Customer{ID: "cust-2", Name: "Bia"}

	repo.services["svc-corte"] = &models.Service{ID: "svc-corte", Name: "Corte", Price: 80, Active: true}
	repo.services["svc-escova"] = &models.Service{ID: "svc-escova", Name: "Escova", Price: 50, Active: true}

	repo.professionals = []models.Professional{
		{ID: "prov-1", Name: "Carla", Active: true},
		{ID: "prov-2", Name: "Dani", Active: true},
	}
}

func TestProposeBooking_Composed(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	uc := NewProposeBooking(repo, noopAudit())

	result, err := uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "cust-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Lines: []LineInput{
			{ServiceID: "svc-corte", ProviderID: "prov-1"},
			{ServiceID: "svc-escova", ProviderID: "prov-2", Discount: 5},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeComposed, result.Outcome)
	assert.False(t, result.Substituted)

	ap := result.Appointment
	require.NotNil(t, ap)
	assert.NotEmpty(t, ap.ID)
	assert.Equal(t, "prov-1", ap.ProviderID)
	assert.Equal(t, "svc-corte", ap.ServiceID)
	assert.Equal(t, string(domain.StatusPendente), ap.Status)
	assert.Equal(t, "Corte + Escova", ap.CombinedServiceNames)

	require.Len(t, ap.Lines, 2)
	assert.Equal(t, 80.0, ap.Lines[0].UnitPrice) // preço de catálogo congelado
	assert.Equal(t, 5.0, ap.Lines[1].Discount)
	assert.Equal(t, 0, ap.Lines[0].Position)
	assert.Equal(t, 1, ap.Lines[1].Position)

	// persistido
	_, err = repo.GetAppointment(context.Background(), ap.ID)
	assert.NoError(t, err)
}

func TestProposeBooking_SnapshotPriceOverride(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	uc := NewProposeBooking(repo, noopAudit())

	custom := 65.0
	result, err := uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "cust-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Lines: []LineInput{
			{ServiceID: "svc-corte", ProviderID: "prov-1", UnitPrice: &custom},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 65.0, result.Appointment.Lines[0].UnitPrice)
}

func TestProposeBooking_ConflictDifferentCustomer(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.appointments["ap-1"] = &models.Appointment{
		ID:         "ap-1",
		CustomerID: "cust-2",
		ProviderID: "prov-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Status:     string(domain.StatusConfirmado),
	}

	uc := NewProposeBooking(repo, noopAudit())

	result, err := uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "cust-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Lines:      []LineInput{{ServiceID: "svc-corte", ProviderID: "prov-1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConflictDifferentCustomer, result.Outcome)
	assert.Equal(t, "prov-1", result.ConflictProviderID)
	assert.Nil(t, result.Appointment)

	// nada novo persistido
	assert.Len(t, repo.appointments, 1)
}

func TestProposeBooking_ConflictSameCustomerOffersMerge(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.appointments["ap-1"] = &models.Appointment{
		ID:         "ap-1",
		CustomerID: "cust-1",
		ProviderID: "prov-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Status:     string(domain.StatusPendente),
	}

	uc := NewProposeBooking(repo, noopAudit())

	result, err := uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "cust-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Lines:      []LineInput{{ServiceID: "svc-escova", ProviderID: "prov-1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConflictSameCustomer, result.Outcome)
	require.NotNil(t, result.Conflict)
	assert.Equal(t, "ap-1", result.Conflict.ID)

	// linhas resolvidas prontas para o merge, candidato nunca persistido
	require.Len(t, result.PendingLines, 1)
	assert.Equal(t, "Escova", result.PendingLines[0].ServiceName)
	assert.Len(t, repo.appointments, 1)
}

func TestProposeBooking_RestrictedProviderSubstitution(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.customers["cust-1"].RestrictedProviderIDs = "prov-1"

	uc := NewProposeBooking(repo, noopAudit())

	result, err := uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "cust-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Lines:      []LineInput{{ServiceID: "svc-corte", ProviderID: "prov-1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeComposed, result.Outcome)
	assert.True(t, result.Substituted)
	assert.Equal(t, "prov-1", result.SubstitutedFrom)
	assert.Equal(t, "prov-2", result.SubstitutedTo)
	assert.Equal(t, "prov-2", result.Appointment.ProviderID)
}

func TestProposeBooking_NoEligibleProvider(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.customers["cust-1"].RestrictedProviderIDs = "prov-1,prov-2"

	uc := NewProposeBooking(repo, noopAudit())

	_, err := uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "cust-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Lines:      []LineInput{{ServiceID: "svc-corte", ProviderID: "prov-1"}},
	})

	assert.True(t, httperr.IsBusiness(err, "no_eligible_provider"))
	assert.Empty(t, repo.appointments)
}

func TestProposeBooking_EditExcludesSelf(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.appointments["ap-1"] = &models.Appointment{
		ID:         "ap-1",
		CustomerID: "cust-1",
		ProviderID: "prov-1",
		Date:       "2026-03-10",
		Time:       "10:00",
		Status:     string(domain.StatusPendente),
	}

	uc := NewProposeBooking(repo, noopAudit())

	result, err := uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID:           "cust-1",
		Date:                 "2026-03-10",
		Time:                 "10:00",
		Lines:                []LineInput{{ServiceID: "svc-corte", ProviderID: "prov-1"}},
		ExcludeAppointmentID: "ap-1",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeComposed, result.Outcome)
}

func TestProposeBooking_Validations(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	uc := NewProposeBooking(repo, noopAudit())

	_, err := uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "cust-1", Date: "2026-03-10", Time: "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "missing_lines"))

	_, err = uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "nope", Date: "2026-03-10", Time: "10:00",
		Lines: []LineInput{{ServiceID: "svc-corte", ProviderID: "prov-1"}},
	})
	assert.True(t, httperr.IsBusiness(err, "customer_not_found"))

	_, err = uc.Execute(context.Background(), ProposeBookingInput{
		CustomerID: "cust-1", Date: "2026-03-10", Time: "10:00",
		Lines: []LineInput{{ServiceID: "svc-corte", ProviderID: "prov-1", Discount: -1}},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_discount"))
}
