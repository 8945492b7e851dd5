package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"salonagenda/internal/domain"
	"salonagenda/internal/modules/booking"
	"salonagenda/internal/pkg/validator"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", booking.ErrServiceNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActive returns the services clients may book, by name.
func (r *ServiceRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// Upsert inserts s or refreshes the existing service with the same name.
func (r *ServiceRepository) Upsert(ctx context.Context, s *domain.Service) error {
	if errs := validator.Validate(s); errs != nil {
		return fmt.Errorf("%w: %v", booking.ErrValidation, errs)
	}
	if !s.Price.IsPositive() {
		return fmt.Errorf("%w: price must be > 0", booking.ErrValidation)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "duration_minutes", "price", "active", "updated_at"}),
	}).Create(s).Error
}
