package appointment

import (
	"context"

	"github.com/studiobellavita/salon-agenda/internal/models"
)

type Repository interface {
	// -------- Appointment (leitura) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	ListDayAppointments(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	ListCustomerDayAppointments(
		ctx context.Context,
		customerID string,
		date string,
	) ([]models.Appointment, error)

	// -------- Appointment (escrita) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CreateAppointments(
		ctx context.Context,
		aps []*models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// MergeAppointments grava as linhas novas no alvo e remove a duplicata
	// numa única transação: ou tudo, ou nada.
	MergeAppointments(
		ctx context.Context,
		target *models.Appointment,
		newLines []models.ServiceLine,
		duplicateID string,
	) error

	// CommitCheckout aplica o desfecho do checkout (agendamento, pagamentos,
	// saldo da cliente, histórico e registro fiscal) numa única transação.
	CommitCheckout(
		ctx context.Context,
		ap *models.Appointment,
		cust *models.Customer,
		entry *models.CustomerHistoryEntry,
		fiscal *models.FiscalIssuance,
	) error

	// CancelAppointment grava o cancelamento junto do histórico da cliente.
	CancelAppointment(
		ctx context.Context,
		ap *models.Appointment,
		entry *models.CustomerHistoryEntry,
	) error

	// ListLinesByParent busca linhas de outros agendamentos do mesmo dia
	// adotadas por este checkout (parent_appointment_id).
	ListLinesByParent(
		ctx context.Context,
		appointmentID string,
	) ([]models.ServiceLine, error)

	// -------- Customer --------
	GetCustomer(
		ctx context.Context,
		id string,
	) (*models.Customer, error)

	ListCustomerHistory(
		ctx context.Context,
		customerID string,
	) ([]models.CustomerHistoryEntry, error)

	// -------- Catálogo --------
	GetService(
		ctx context.Context,
		id string,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		id string,
	) (*models.Professional, error)

	ListActiveProfessionals(
		ctx context.Context,
	) ([]models.Professional, error)

	// -------- Cupom --------
	GetCouponByCode(
		ctx context.Context,
		code string,
	) (*models.Coupon, error)

	// -------- Fiscal --------
	UpdateFiscalIssuance(
		ctx context.Context,
		issuance *models.FiscalIssuance,
	) error
}
