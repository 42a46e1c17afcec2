package booking

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/domain/checkout"
	"github.com/studiobellavita/salon-agenda/internal/fiscal"
	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/models"
	"github.com/studiobellavita/salon-agenda/internal/timezone"
)

// ======================================================
// INPUT / OUTCOME
// ======================================================

type PaymentInput struct {
	Method       string
	Amount       float64
	Installments *int
	CardBrand    *string
}

type FinalizeInput struct {
	AppointmentID string

	Payments   []PaymentInput
	CouponCode *string

	// Soma o saldo devedor da cliente no total deste checkout.
	IncludeDebt bool

	// Fiado: serviço prestado, pagamento todo adiado para o crediário.
	AsDebt bool
}

type FinalizeOutcome string

const (
	FinalizePaid     FinalizeOutcome = "paid"
	FinalizeDebt     FinalizeOutcome = "debt"
	FinalizeMismatch FinalizeOutcome = "mismatch"
	FinalizeBlocked  FinalizeOutcome = "blocked"
)

type FinalizeResult struct {
	Outcome     FinalizeOutcome
	Appointment *models.Appointment

	Total float64

	// mismatch
	Expected float64
	Declared float64

	// blocked
	Reason string
}

// ======================================================
// USE CASE
// ======================================================

// Finalize fecha a conta de um atendimento em andamento: recalcula o total
// oficial, confere os pagamentos declarados e aplica o desfecho (pago ou
// fiado) numa transação só. A emissão fiscal fica desacoplada: falha na
// entrega ao emissor marca o registro para retry, nunca derruba o checkout.
type Finalize struct {
	repo   domain.Repository
	issuer fiscal.Issuer
	audit  *audit.Dispatcher

	salonPct        float64
	professionalPct float64
}

func NewFinalize(
	repo domain.Repository,
	issuer fiscal.Issuer,
	audit *audit.Dispatcher,
	salonPct float64,
	professionalPct float64,
) *Finalize {
	return &Finalize{
		repo:            repo,
		issuer:          issuer,
		audit:           audit,
		salonPct:        salonPct,
		professionalPct: professionalPct,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Finalize) Execute(
	ctx context.Context,
	in FinalizeInput,
) (*FinalizeResult, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanFinalize(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	cust, err := uc.repo.GetCustomer(ctx, ap.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	// --------------------------------------------------
	// 1️⃣ Bloqueios duros: nada é gravado
	// --------------------------------------------------
	if cust.IsBlocked {
		return &FinalizeResult{
			Outcome: FinalizeBlocked,
			Reason:  "customer_blocked",
		}, nil
	}
	if cust.IsProviderRestricted(ap.ProviderID) {
		return &FinalizeResult{
			Outcome: FinalizeBlocked,
			Reason:  "restricted_provider",
		}, nil
	}

	// --------------------------------------------------
	// 2️⃣ Cupom
	// --------------------------------------------------
	var coupon *models.Coupon
	if in.CouponCode != nil && *in.CouponCode != "" {
		coupon, err = uc.repo.GetCouponByCode(ctx, *in.CouponCode)
		if err != nil || !coupon.Active {
			return nil, httperr.ErrBusiness("invalid_coupon")
		}
	}

	// --------------------------------------------------
	// 3️⃣ Linhas: as do agendamento + as adotadas de outros
	//    agendamentos do dia (parent_appointment_id)
	// --------------------------------------------------
	lines := ap.Lines
	adopted, err := uc.repo.ListLinesByParent(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	lines = append(lines, adopted...)

	// --------------------------------------------------
	// 4️⃣ Total oficial
	// --------------------------------------------------
	total := checkout.ComputeTotal(lines, coupon, in.IncludeDebt, cust.OutstandingBalance)
	totalF, _ := total.Float64()

	if coupon != nil {
		gross := checkout.ComputeTotal(lines, nil, false, 0)
		net := checkout.ComputeTotal(lines, coupon, false, 0)
		ap.DiscountAmount, _ = gross.Sub(net).Float64()
		ap.AppliedCouponCode = &coupon.Code
	}

	now := timezone.Now()

	// --------------------------------------------------
	// 5️⃣ Fiado: receita reconhecida, cobrança adiada
	// --------------------------------------------------
	if in.AsDebt {
		if len(in.Payments) > 0 {
			return nil, httperr.ErrBusiness("debt_with_payments")
		}

		if err := domain.Finalize(ap, 0, now); err != nil {
			return nil, err
		}

		cust.OutstandingBalance += totalF
		cust.TotalSpent += totalF
		cust.TotalVisits++
		cust.LastVisit = &now

		entry := &models.CustomerHistoryEntry{
			CustomerID:    cust.ID,
			AppointmentID: &ap.ID,
			Kind:          models.HistoryDebt,
			Detail:        ap.CombinedServiceNames,
		}

		if err := uc.repo.CommitCheckout(ctx, ap, cust, entry, nil); err != nil {
			return nil, err
		}

		uc.dispatch("appointment_finalized_debt", ap, totalF)

		return &FinalizeResult{
			Outcome:     FinalizeDebt,
			Appointment: ap,
			Total:       totalF,
		}, nil
	}

	// --------------------------------------------------
	// 6️⃣ Pago: a soma declarada tem que bater com o total
	// --------------------------------------------------
	payments := make([]models.PaymentLine, 0, len(in.Payments))
	for _, p := range in.Payments {
		payments = append(payments, models.PaymentLine{
			AppointmentID: ap.ID,
			Method:        p.Method,
			Amount:        p.Amount,
			Installments:  p.Installments,
			CardBrand:     p.CardBrand,
		})
	}

	declared, err := checkout.ReconcilePayments(payments, total)
	if err != nil {
		declaredF, _ := declared.Float64()
		return &FinalizeResult{
			Outcome:  FinalizeMismatch,
			Expected: totalF,
			Declared: declaredF,
		}, nil
	}

	if err := domain.Finalize(ap, totalF, now); err != nil {
		return nil, err
	}
	ap.Payments = payments

	cust.TotalSpent += totalF
	cust.TotalVisits++
	cust.LastVisit = &now
	if in.IncludeDebt {
		cust.OutstandingBalance = 0
	}

	entry := &models.CustomerHistoryEntry{
		CustomerID:    cust.ID,
		AppointmentID: &ap.ID,
		Kind:          models.HistoryCompleted,
		Detail:        ap.CombinedServiceNames,
	}

	issuance := uc.buildIssuance(ctx, ap, totalF)
	ap.FiscalStatus = models.FiscalPending

	if err := uc.repo.CommitCheckout(ctx, ap, cust, entry, issuance); err != nil {
		return nil, err
	}

	uc.handOffFiscal(ctx, ap, issuance)

	uc.dispatch("appointment_finalized_paid", ap, totalF)

	return &FinalizeResult{
		Outcome:     FinalizePaid,
		Appointment: ap,
		Total:       totalF,
	}, nil
}

// ======================================================
// HELPERS
// ======================================================

// buildIssuance monta o registro de segregação de valores (Salão Parceiro).
func (uc *Finalize) buildIssuance(
	ctx context.Context,
	ap *models.Appointment,
	totalF float64,
) *models.FiscalIssuance {

	salonPct := uc.salonPct
	proPct := uc.professionalPct
	taxID := ""

	if pro, err := uc.repo.GetProfessional(ctx, ap.ProviderID); err == nil {
		taxID = pro.FiscalTaxID
		if pro.CommissionPct > 0 {
			proPct = pro.CommissionPct
			salonPct = 100 - proPct
		}
	}

	// o valor da nota é o total efetivamente pago
	salonValue, proValue := checkout.SplitFiscalValues(
		decimal.NewFromFloat(totalF), salonPct, proPct,
	)

	salonF, _ := salonValue.Float64()
	proF, _ := proValue.Float64()

	return &models.FiscalIssuance{
		AppointmentID:      ap.ID,
		TotalValue:         totalF,
		SalonValue:         salonF,
		ProfessionalValue:  proF,
		ProfessionalTaxID:  taxID,
		ServiceDescription: ap.CombinedServiceNames,
		Status:             models.FiscalPending,
	}
}

// handOffFiscal entrega o registro ao emissor; falha vira retry, não erro.
func (uc *Finalize) handOffFiscal(
	ctx context.Context,
	ap *models.Appointment,
	issuance *models.FiscalIssuance,
) {
	issuance.Attempts++

	if err := uc.issuer.Issue(ctx, issuance); err != nil {
		log.Printf("fiscal: entrega ao emissor falhou: %v", err)
		issuance.Status = models.FiscalFailed
		issuance.LastError = err.Error()
	} else {
		issuance.Status = models.FiscalQueued
	}

	if err := uc.repo.UpdateFiscalIssuance(ctx, issuance); err != nil {
		log.Printf("fiscal: não foi possível atualizar a situação: %v", err)
	}
}

func (uc *Finalize) dispatch(action string, ap *models.Appointment, total float64) {
	uc.audit.Dispatch(audit.Event{
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"total": total},
	})
}
