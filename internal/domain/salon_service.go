package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable salon service (haircut, manicure, ...).
type Service struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"size:120;not null;uniqueIndex" validate:"required,max=120"`
	Description     string          `json:"description" gorm:"type:text"`
	DurationMinutes int             `json:"duration" gorm:"not null" validate:"required,gt=0"`
	Price           decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Active          bool            `json:"status" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Service) TableName() string { return "services" }
