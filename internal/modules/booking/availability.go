package booking

import (
	"time"

	"salonagenda/internal/domain"
)

// AvailabilityFilter narrows the slot catalog down to what can still be booked
// on a given day. It never reads the clock itself.
type AvailabilityFilter struct {
	catalog  SlotCatalog
	lastDate domain.Date // zero means no upper bound
}

func NewAvailabilityFilter(catalog SlotCatalog, lastDate domain.Date) *AvailabilityFilter {
	return &AvailabilityFilter{catalog: catalog, lastDate: lastDate}
}

func (f *AvailabilityFilter) Catalog() SlotCatalog { return f.catalog }

// Bookable reports whether date may be picked for a new booking: not in the
// past and not beyond the last bookable date.
func (f *AvailabilityFilter) Bookable(date domain.Date, now time.Time) bool {
	return notPast(date, now) && f.withinHorizon(date)
}

func notPast(date domain.Date, now time.Time) bool {
	return !date.IsZero() && !date.Before(domain.DateOf(now))
}

func (f *AvailabilityFilter) withinHorizon(date domain.Date) bool {
	return f.lastDate.IsZero() || !date.After(f.lastDate)
}

// Available returns the slots of date that have not started yet at now.
// Past dates yield an empty slice, future dates the whole catalog.
// A slot that starts exactly at now is considered gone. The last bookable
// date is not applied here; SelectDate enforces it.
func (f *AvailabilityFilter) Available(date domain.Date, now time.Time) []domain.TimeSlot {
	if !notPast(date, now) {
		return []domain.TimeSlot{}
	}

	all := f.catalog.SlotsForDay()
	if date.After(domain.DateOf(now)) {
		return all
	}

	h, m, s := now.Clock()
	nowSec := h*3600 + m*60 + s
	out := make([]domain.TimeSlot, 0, len(all))
	for _, slot := range all {
		if slot.SecondOfDay() > nowSec {
			out = append(out, slot)
		}
	}
	return out
}

// IsAvailable reports whether slot is in Available(date, now).
func (f *AvailabilityFilter) IsAvailable(date domain.Date, slot domain.TimeSlot, now time.Time) bool {
	for _, s := range f.Available(date, now) {
		if s == slot {
			return true
		}
	}
	return false
}
