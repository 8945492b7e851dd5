package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

// Date is a calendar day without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeSlot is a bookable time of day (hour:minute).
type TimeSlot struct {
	Hour   int
	Minute int
}

func ParseTimeSlot(s string) (TimeSlot, error) {
	t, err := time.Parse(SlotLayout, s)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("invalid slot %q: %w", s, err)
	}
	return TimeSlot{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustTimeSlot is ParseTimeSlot for literals.
func MustTimeSlot(s string) TimeSlot {
	ts, err := ParseTimeSlot(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// SecondOfDay is the offset of the slot from midnight.
func (s TimeSlot) SecondOfDay() int {
	return s.Hour*3600 + s.Minute*60
}

func (s TimeSlot) Compare(o TimeSlot) int {
	return sign(s.SecondOfDay() - o.SecondOfDay())
}

func (s TimeSlot) Before(o TimeSlot) bool { return s.Compare(o) < 0 }

func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TimeSlot) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimeSlot(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
