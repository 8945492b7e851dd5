package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"salonagenda/internal/domain"
	"salonagenda/internal/modules/booking"
)

var activeStatuses = []string{string(domain.AppointmentPending), string(domain.AppointmentConfirmed)}

// AppointmentRepository is the durable appointment store. Create holds a
// process-wide lock around its check-and-insert transaction; the partial
// unique index created by Migrate covers other processes on the same database.
type AppointmentRepository struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ServiceID     int64           `gorm:"column:service_id;not null;index"`
	ServiceName   string          `gorm:"column:service_name;size:120;not null"`
	Date          string          `gorm:"column:appointment_date;size:10;not null;index:idx_appointments_schedule,priority:1"`
	Slot          string          `gorm:"column:slot_time;size:5;not null;index:idx_appointments_schedule,priority:2"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	PaymentMethod string          `gorm:"column:payment_method;size:16;not null"`
	Status        string          `gorm:"column:status;size:16;not null;index"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) (*domain.Appointment, error) {
	date, err := domain.ParseDate(m.Date)
	if err != nil {
		return nil, fmt.Errorf("appointment %d: %w", m.ID, err)
	}
	slot, err := domain.ParseTimeSlot(m.Slot)
	if err != nil {
		return nil, fmt.Errorf("appointment %d: %w", m.ID, err)
	}

	return &domain.Appointment{
		ID:            m.ID,
		ServiceID:     m.ServiceID,
		ServiceName:   m.ServiceName,
		Date:          date,
		Slot:          slot,
		Price:         m.Price,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Status:        domain.AppointmentStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, c domain.AppointmentCandidate) (*domain.Appointment, error) {
	m := appointmentModel{
		ServiceID:     c.ServiceID,
		ServiceName:   c.ServiceName,
		Date:          c.Date.String(),
		Slot:          c.Slot.String(),
		Price:         c.Price,
		PaymentMethod: string(c.PaymentMethod),
		Status:        string(domain.AppointmentPending),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&appointmentModel{}).
			Where("appointment_date = ? AND slot_time = ?", m.Date, m.Slot).
			Where("status IN ?", activeStatuses).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return booking.ErrSlotConflict
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, booking.ErrSlotConflict) || isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s %s", booking.ErrSlotConflict, m.Date, m.Slot)
		}
		return nil, fmt.Errorf("appointments: create: %w", err)
	}

	return toDomainAppointment(m)
}

// List returns every appointment ordered by date, slot and id.
func (r *AppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	var rows []appointmentModel
	err := r.db.WithContext(ctx).
		Order("appointment_date ASC").
		Order("slot_time ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		a, err := toDomainAppointment(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *AppointmentRepository) Remove(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&appointmentModel{}, id)
	if tx.Error != nil {
		return fmt.Errorf("appointments: remove %d: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: appointment %d", booking.ErrNotFound, id)
	}
	return nil
}

// OccupiedSlots lists the slots of date held by pending or confirmed appointments.
func (r *AppointmentRepository) OccupiedSlots(ctx context.Context, date domain.Date) ([]domain.TimeSlot, error) {
	var raw []string
	err := r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("appointment_date = ?", date.String()).
		Where("status IN ?", activeStatuses).
		Order("slot_time ASC").
		Pluck("slot_time", &raw).Error
	if err != nil {
		return nil, fmt.Errorf("appointments: occupied slots: %w", err)
	}

	out := make([]domain.TimeSlot, 0, len(raw))
	for _, s := range raw {
		slot, err := domain.ParseTimeSlot(s)
		if err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
