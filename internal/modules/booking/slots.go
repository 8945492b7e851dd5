package booking

import (
	"sort"

	"salonagenda/internal/domain"
)

// DefaultSlotTimes is the salon's working grid; there is no 12:00 slot (lunch).
var DefaultSlotTimes = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

// SlotCatalog is the fixed, ordered set of candidate slots for any day.
type SlotCatalog struct {
	slots []domain.TimeSlot
}

// NewSlotCatalog sorts and de-duplicates the given slots.
func NewSlotCatalog(slots ...domain.TimeSlot) SlotCatalog {
	out := make([]domain.TimeSlot, 0, len(slots))
	seen := make(map[domain.TimeSlot]struct{}, len(slots))
	for _, s := range slots {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return SlotCatalog{slots: out}
}

// ParseSlotCatalog builds a catalog from "HH:MM" strings.
func ParseSlotCatalog(times []string) (SlotCatalog, error) {
	slots := make([]domain.TimeSlot, 0, len(times))
	for _, t := range times {
		s, err := domain.ParseTimeSlot(t)
		if err != nil {
			return SlotCatalog{}, err
		}
		slots = append(slots, s)
	}
	return NewSlotCatalog(slots...), nil
}

func DefaultSlotCatalog() SlotCatalog {
	c, err := ParseSlotCatalog(DefaultSlotTimes)
	if err != nil {
		panic(err)
	}
	return c
}

// SlotsForDay returns a copy; callers may modify it.
func (c SlotCatalog) SlotsForDay() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(c.slots))
	copy(out, c.slots)
	return out
}

func (c SlotCatalog) Len() int { return len(c.slots) }
