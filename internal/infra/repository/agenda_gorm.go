package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/studiobellavita/salon-agenda/internal/domain/appointment"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

type AgendaGormRepository struct {
	db *gorm.DB
}

func NewAgendaGormRepository(db *gorm.DB) *AgendaGormRepository {
	return &AgendaGormRepository{db: db}
}

// --------------------------------------------------
// Appointment (leitura)
// --------------------------------------------------

func (r *AgendaGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Payments").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AgendaGormRepository) ListDayAppointments(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("date = ? AND status <> ?", date, string(domain.StatusCancelado)).
		Order("time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AgendaGormRepository) ListCustomerDayAppointments(
	ctx context.Context,
	customerID string,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"customer_id = ? AND date = ? AND status <> ?",
			customerID, date, string(domain.StatusCancelado),
		).
		Order("time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Appointment (escrita)
// --------------------------------------------------

func (r *AgendaGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// relê o slot sob lock antes de gravar (corrida entre duas sessões)
		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"provider_id = ? AND date = ? AND time = ? AND status <> ?",
				ap.ProviderID, ap.Date, ap.Time, string(domain.StatusCancelado),
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}

		return tx.Create(ap).Error
	})
}

func (r *AgendaGormRepository) CreateAppointments(
	ctx context.Context,
	aps []*models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ap := range aps {
			if err := tx.Create(ap).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AgendaGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

// MergeAppointments: acrescentar as linhas e apagar a duplicata é uma
// transação só — merge parcial nunca pode ficar gravado.
func (r *AgendaGormRepository) MergeAppointments(
	ctx context.Context,
	target *models.Appointment,
	newLines []models.ServiceLine,
	duplicateID string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if len(newLines) > 0 {
			if err := tx.Create(&newLines).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Model(&models.Appointment{}).
			Where("id = ?", target.ID).
			Update("combined_service_names", target.CombinedServiceNames).
			Error; err != nil {
			return err
		}

		if duplicateID != "" {
			if err := tx.
				Where("appointment_id = ?", duplicateID).
				Delete(&models.ServiceLine{}).Error; err != nil {
				return err
			}
			if err := tx.
				Where("id = ?", duplicateID).
				Delete(&models.Appointment{}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// CommitCheckout: agendamento, pagamentos, saldo da cliente, histórico e
// registro fiscal comitam juntos ou não comitam.
func (r *AgendaGormRepository) CommitCheckout(
	ctx context.Context,
	ap *models.Appointment,
	cust *models.Customer,
	entry *models.CustomerHistoryEntry,
	fiscal *models.FiscalIssuance,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Omit(clause.Associations).Save(ap).Error; err != nil {
			return err
		}

		if len(ap.Payments) > 0 {
			if err := tx.Create(&ap.Payments).Error; err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Save(cust).Error; err != nil {
			return err
		}

		if entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}

		if fiscal != nil {
			if err := tx.Create(fiscal).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AgendaGormRepository) CancelAppointment(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.CustomerHistoryEntry,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Omit(clause.Associations).Save(ap).Error; err != nil {
			return err
		}

		if entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AgendaGormRepository) ListLinesByParent(
	ctx context.Context,
	appointmentID string,
) ([]models.ServiceLine, error) {

	var lines []models.ServiceLine
	if err := r.db.WithContext(ctx).
		Where("parent_appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}

	return lines, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AgendaGormRepository) GetCustomer(
	ctx context.Context,
	id string,
) (*models.Customer, error) {

	var cust models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cust).Error; err != nil {
		return nil, err
	}

	return &cust, nil
}

func (r *AgendaGormRepository) ListCustomerHistory(
	ctx context.Context,
	customerID string,
) ([]models.CustomerHistoryEntry, error) {

	var entries []models.CustomerHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *AgendaGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&svc).Error; err != nil {
		return nil, err
	}

	return &svc, nil
}

func (r *AgendaGormRepository) GetProfessional(
	ctx context.Context,
	id string,
) (*models.Professional, error) {

	var pro models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&pro).Error; err != nil {
		return nil, err
	}

	return &pro, nil
}

func (r *AgendaGormRepository) ListActiveProfessionals(
	ctx context.Context,
) ([]models.Professional, error) {

	var pros []models.Professional
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&pros).Error; err != nil {
		return nil, err
	}

	return pros, nil
}

// --------------------------------------------------
// Cupom
// --------------------------------------------------

func (r *AgendaGormRepository) GetCouponByCode(
	ctx context.Context,
	code string,
) (*models.Coupon, error) {

	var coupon models.Coupon
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&coupon).Error; err != nil {
		return nil, err
	}

	return &coupon, nil
}

// --------------------------------------------------
// Fiscal
// --------------------------------------------------

func (r *AgendaGormRepository) UpdateFiscalIssuance(
	ctx context.Context,
	issuance *models.FiscalIssuance,
) error {
	return r.db.WithContext(ctx).Save(issuance).Error
}

// Compile-time check
var _ domain.Repository = (*AgendaGormRepository)(nil)
