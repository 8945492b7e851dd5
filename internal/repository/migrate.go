package repository

import (
	"fmt"

	"gorm.io/gorm"

	"salonagenda/internal/domain"
)

// activeSlotIndex keeps (date, slot) unique among appointments that hold
// their slot. Both PostgreSQL and SQLite support partial indexes.
const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
ON appointments (appointment_date, slot_time)
WHERE status IN ('pending', 'confirmed')`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Service{}, &appointmentModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}
	return nil
}
