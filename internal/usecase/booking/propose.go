package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/domain/schedule"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// ======================================================
// INPUT / OUTCOME
// ======================================================

type LineInput struct {
	ServiceID  string
	ProviderID string

	// Preço congelado na reserva; nil usa o preço de catálogo.
	UnitPrice  *float64
	Discount   float64
	IsCourtesy bool

	StartTime string
	Products  []string
}

type ProposeBookingInput struct {
	CustomerID string
	Date       string
	Time       string
	Lines      []LineInput
	Notes      string

	// Preenchido na edição, para não conflitar consigo mesmo.
	ExcludeAppointmentID string
}

type ProposeOutcome string

const (
	OutcomeComposed                  ProposeOutcome = "composed"
	OutcomeConflictSameCustomer      ProposeOutcome = "conflict_same_customer"
	OutcomeConflictDifferentCustomer ProposeOutcome = "conflict_different_customer"
)

type ProposeBookingResult struct {
	Outcome ProposeOutcome

	// composed
	Appointment *models.Appointment

	// a troca automática por restrição precisa ser reportada, nunca silenciosa
	Substituted     bool
	SubstitutedFrom string
	SubstitutedTo   string

	// conflitos
	Conflict           *models.Appointment
	ConflictProviderID string

	// linhas já resolvidas, prontas para o merge se a cliente confirmar
	PendingLines []models.ServiceLine
}

// ======================================================
// USE CASE
// ======================================================

type ProposeBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewProposeBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ProposeBooking {
	return &ProposeBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ProposeBooking) Execute(
	ctx context.Context,
	in ProposeBookingInput,
) (*ProposeBookingResult, error) {

	if len(in.Lines) == 0 {
		return nil, httperr.ErrBusiness("missing_lines")
	}

	// --------------------------------------------------
	// 1️⃣ Cliente
	// --------------------------------------------------
	cust, err := uc.repo.GetCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Restrição de profissional (linha primária)
	// --------------------------------------------------
	substituted := false
	substitutedFrom := ""
	if cust.IsProviderRestricted(in.Lines[0].ProviderID) {
		replacement, err := uc.pickEligibleProvider(ctx, cust)
		if err != nil {
			return nil, err
		}
		substitutedFrom = in.Lines[0].ProviderID
		in.Lines[0].ProviderID = replacement.ID
		substituted = true
	}

	// --------------------------------------------------
	// 3️⃣ Resolve as linhas (nome e preço de catálogo)
	// --------------------------------------------------
	lines, err := uc.resolveLines(ctx, in.Lines, in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Conflito de horário
	// --------------------------------------------------
	dayAps, err := uc.repo.ListDayAppointments(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	providerIDs := make([]string, 0, len(lines))
	for _, ln := range lines {
		providerIDs = append(providerIDs, ln.ProviderID)
	}

	if conflict := schedule.FindConflict(
		dayAps,
		providerIDs,
		in.Time,
		in.ExcludeAppointmentID,
	); conflict != nil {

		if conflict.CustomerID == in.CustomerID {
			// mesma cliente, mesmo horário → oferta de merge
			return &ProposeBookingResult{
				Outcome:      OutcomeConflictSameCustomer,
				Conflict:     conflict,
				PendingLines: lines,
			}, nil
		}

		return &ProposeBookingResult{
			Outcome:            OutcomeConflictDifferentCustomer,
			Conflict:           conflict,
			ConflictProviderID: conflict.ProviderID,
		}, nil
	}

	// --------------------------------------------------
	// 5️⃣ Composição e persistência
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,

		ProviderID: lines[0].ProviderID,
		ServiceID:  lines[0].ServiceID,

		Date: in.Date,
		Time: schedule.NormalizeTime(in.Time),

		Status: string(domain.InitialStatus()),
		Notes:  in.Notes,

		CombinedServiceNames: domain.CombinedServiceNames(lines),
	}

	for i := range lines {
		lines[i].AppointmentID = ap.ID
		lines[i].Position = i
	}
	ap.Lines = lines

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		// corrida perdida na releitura sob lock
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"substituted": substituted,
			"date":        ap.Date,
			"time":        ap.Time,
		},
	})

	return &ProposeBookingResult{
		Outcome:         OutcomeComposed,
		Appointment:     ap,
		Substituted:     substituted,
		SubstitutedFrom: substitutedFrom,
		SubstitutedTo:   ap.ProviderID,
	}, nil
}

// ======================================================
// HELPERS
// ======================================================

// pickEligibleProvider devolve o primeiro profissional ativo fora do
// conjunto de restrição da cliente.
func (uc *ProposeBooking) pickEligibleProvider(
	ctx context.Context,
	cust *models.Customer,
) (*models.Professional, error) {

	pros, err := uc.repo.ListActiveProfessionals(ctx)
	if err != nil {
		return nil, err
	}

	restricted := cust.RestrictedProviders()
	for i := range pros {
		if !restricted[pros[i].ID] {
			return &pros[i], nil
		}
	}

	return nil, httperr.ErrBusiness("no_eligible_provider")
}

func (uc *ProposeBooking) resolveLines(
	ctx context.Context,
	inputs []LineInput,
	defaultTime string,
) ([]models.ServiceLine, error) {

	lines := make([]models.ServiceLine, 0, len(inputs))

	for _, li := range inputs {
		if li.Discount < 0 {
			return nil, httperr.ErrBusiness("invalid_discount")
		}

		svc, err := uc.repo.GetService(ctx, li.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}

		price := svc.Price
		if li.UnitPrice != nil {
			price = *li.UnitPrice
		}

		start := li.StartTime
		if start == "" {
			start = defaultTime
		}

		ln := models.ServiceLine{
			ID:          uuid.NewString(),
			ServiceID:   svc.ID,
			ProviderID:  li.ProviderID,
			ServiceName: svc.Name,
			UnitPrice:   price,
			Discount:    li.Discount,
			IsCourtesy:  li.IsCourtesy,
			StartTime:   schedule.NormalizeTime(start),
		}
		ln.SetProducts(li.Products)

		lines = append(lines, ln)
	}

	return lines, nil
}
