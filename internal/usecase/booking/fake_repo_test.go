package booking

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/studiobellavita/salon-agenda/internal/audit"
	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// fakeRepo é a implementação em memória do repositório para os testes de
// caso de uso. Escritas compostas (merge, checkout) aplicam tudo ou nada,
// como a transação real.
type fakeRepo struct {
	appointments  map[string]*models.Appointment
	customers     map[string]*models.Customer
	services      map[string]*models.Service
	professionals []models.Professional
	coupons       map[string]*models.Coupon
	linesByParent map[string][]models.ServiceLine

	history  []models.CustomerHistoryEntry
	fiscal   []*models.FiscalIssuance
	auditLog []string

	failMerge       bool
	failCommit      bool
	failUpdateIDs   map[string]bool
	updatedIDs      []string
	deletedIDs      []string
	createdChildren int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		appointments:  map[string]*models.Appointment{},
		customers:     map[string]*models.Customer{},
		services:      map[string]*models.Service{},
		coupons:       map[string]*models.Coupon{},
		linesByParent: map[string][]models.ServiceLine{},
		failUpdateIDs: map[string]bool{},
	}
}

func noopAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nil)
}

func copyAppointment(ap *models.Appointment) *models.Appointment {
	cp := *ap
	cp.Lines = append([]models.ServiceLine(nil), ap.Lines...)
	cp.Payments = append([]models.PaymentLine(nil), ap.Payments...)
	return &cp
}

// -------- Appointment (leitura) --------

func (f *fakeRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyAppointment(ap), nil
}

func (f *fakeRepo) ListDayAppointments(_ context.Context, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Date == date && ap.Status != string(domain.StatusCancelado) {
			out = append(out, *copyAppointment(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (f *fakeRepo) ListCustomerDayAppointments(_ context.Context, customerID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CustomerID == customerID && ap.Date == date &&
			ap.Status != string(domain.StatusCancelado) {
			out = append(out, *copyAppointment(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// -------- Appointment (escrita) --------

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = copyAppointment(ap)
	return nil
}

func (f *fakeRepo) CreateAppointments(_ context.Context, aps []*models.Appointment) error {
	for _, ap := range aps {
		f.appointments[ap.ID] = copyAppointment(ap)
		f.createdChildren++
	}
	return nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.failUpdateIDs[ap.ID] {
		return errors.New("update falhou")
	}
	f.updatedIDs = append(f.updatedIDs, ap.ID)
	f.appointments[ap.ID] = copyAppointment(ap)
	return nil
}

func (f *fakeRepo) MergeAppointments(
	_ context.Context,
	target *models.Appointment,
	newLines []models.ServiceLine,
	duplicateID string,
) error {
	if f.failMerge {
		return errors.New("merge falhou")
	}

	stored, ok := f.appointments[target.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	stored.Lines = append(stored.Lines, newLines...)
	stored.CombinedServiceNames = target.CombinedServiceNames

	if duplicateID != "" {
		delete(f.appointments, duplicateID)
		f.deletedIDs = append(f.deletedIDs, duplicateID)
	}

	return nil
}

func (f *fakeRepo) CommitCheckout(
	_ context.Context,
	ap *models.Appointment,
	cust *models.Customer,
	entry *models.CustomerHistoryEntry,
	fiscal *models.FiscalIssuance,
) error {
	if f.failCommit {
		return errors.New("commit falhou")
	}

	f.appointments[ap.ID] = copyAppointment(ap)
	if cust != nil {
		cp := *cust
		f.customers[cust.ID] = &cp
	}
	if entry != nil {
		f.history = append(f.history, *entry)
	}
	if fiscal != nil {
		f.fiscal = append(f.fiscal, fiscal)
	}
	return nil
}

func (f *fakeRepo) CancelAppointment(
	_ context.Context,
	ap *models.Appointment,
	entry *models.CustomerHistoryEntry,
) error {
	f.appointments[ap.ID] = copyAppointment(ap)
	if entry != nil {
		f.history = append(f.history, *entry)
	}
	return nil
}

func (f *fakeRepo) ListLinesByParent(_ context.Context, appointmentID string) ([]models.ServiceLine, error) {
	return f.linesByParent[appointmentID], nil
}

// -------- Customer --------

func (f *fakeRepo) GetCustomer(_ context.Context, id string) (*models.Customer, error) {
	cust, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *cust
	return &cp, nil
}

func (f *fakeRepo) ListCustomerHistory(_ context.Context, customerID string) ([]models.CustomerHistoryEntry, error) {
	var out []models.CustomerHistoryEntry
	for _, e := range f.history {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out, nil
}

// -------- Catálogo --------

func (f *fakeRepo) GetService(_ context.Context, id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (f *fakeRepo) GetProfessional(_ context.Context, id string) (*models.Professional, error) {
	for i := range f.professionals {
		if f.professionals[i].ID == id {
			return &f.professionals[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListActiveProfessionals(_ context.Context) ([]models.Professional, error) {
	var out []models.Professional
	for _, p := range f.professionals {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

// -------- Cupom --------

func (f *fakeRepo) GetCouponByCode(_ context.Context, code string) (*models.Coupon, error) {
	coupon, ok := f.coupons[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return coupon, nil
}

// -------- Fiscal --------

func (f *fakeRepo) UpdateFiscalIssuance(_ context.Context, issuance *models.FiscalIssuance) error {
	for i, fi := range f.fiscal {
		if fi.AppointmentID == issuance.AppointmentID {
			f.fiscal[i] = issuance
			return nil
		}
	}
	f.fiscal = append(f.fiscal, issuance)
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
