package booking

import (
	"context"
	"time"

	"salonagenda/internal/domain"
)

// AppointmentStore persists confirmed bookings. Create must run its conflict
// check and insert as one indivisible step.
type AppointmentStore interface {
	Create(ctx context.Context, c domain.AppointmentCandidate) (*domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	Remove(ctx context.Context, id int64) error
	OccupiedSlots(ctx context.Context, date domain.Date) ([]domain.TimeSlot, error)
}

// ServiceCatalog is the read side of service definitions.
type ServiceCatalog interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// DraftStore keeps in-flight drafts keyed by draft id. Drafts are never
// deleted explicitly; every Save carries a ttl after which the draft is gone.
type DraftStore interface {
	Get(ctx context.Context, id string) (Draft, error)
	Save(ctx context.Context, d Draft, ttl time.Duration) error
}

// Notifier receives booking side effects. Delivery is up to the implementation.
type Notifier interface {
	AppointmentCreated(ctx context.Context, a domain.Appointment)
	AppointmentRemoved(ctx context.Context, id int64)
}
