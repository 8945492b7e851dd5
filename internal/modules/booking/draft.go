package booking

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"salonagenda/internal/domain"
)

type State string

const (
	StateEmpty           State = "empty"
	StateDateSelected    State = "date_selected"
	StateSlotSelected    State = "slot_selected"
	StatePaymentSelected State = "payment_selected"
	StateConfirmed       State = "confirmed"
	StateCancelled       State = "cancelled"
)

func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateCancelled
}

// Draft is an in-progress booking owned by a single session.
type Draft struct {
	ID            string               `json:"id"`
	Service       domain.Service       `json:"service"`
	Date          *domain.Date         `json:"date,omitempty"`
	Slot          *domain.TimeSlot     `json:"slot,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"payment_method,omitempty"`
	State         State                `json:"state"`
	CreatedAt     time.Time            `json:"created_at"`
}

func NewDraft(id string, svc domain.Service, now time.Time) Draft {
	return Draft{ID: id, Service: svc, State: StateEmpty, CreatedAt: now}
}

// Machine applies booking transitions to drafts. Every method takes a draft
// by value and returns the next draft; the input is never modified.
type Machine struct {
	filter *AvailabilityFilter
}

func NewMachine(filter *AvailabilityFilter) *Machine {
	return &Machine{filter: filter}
}

func (m *Machine) Filter() *AvailabilityFilter { return m.filter }

func transitionErr(op string, from State) error {
	return fmt.Errorf("%w: cannot %s in state %s", ErrInvalidTransition, op, from)
}

// SelectDate picks (or re-picks) the day. Any slot or payment method chosen
// for a previous day is dropped.
func (m *Machine) SelectDate(d Draft, date domain.Date, now time.Time) (Draft, error) {
	if d.State.Terminal() {
		return d, transitionErr("select date", d.State)
	}
	if !m.filter.Bookable(date, now) {
		return d, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}

	d.Date = &date
	d.Slot = nil
	d.PaymentMethod = ""
	d.State = StateDateSelected
	return d, nil
}

// SelectSlot re-checks availability against now rather than trusting the
// moment the date was picked.
func (m *Machine) SelectSlot(d Draft, slot domain.TimeSlot, now time.Time) (Draft, error) {
	switch d.State {
	case StateDateSelected, StateSlotSelected, StatePaymentSelected:
	default:
		return d, transitionErr("select slot", d.State)
	}
	if !m.filter.IsAvailable(*d.Date, slot, now) {
		return d, fmt.Errorf("%w: %s %s", ErrSlotUnavailable, d.Date, slot)
	}

	d.Slot = &slot
	d.PaymentMethod = ""
	d.State = StateSlotSelected
	return d, nil
}

func (m *Machine) SelectPaymentMethod(d Draft, method domain.PaymentMethod) (Draft, error) {
	switch d.State {
	case StateSlotSelected, StatePaymentSelected:
	default:
		return d, transitionErr("select payment method", d.State)
	}
	if !method.Valid() {
		return d, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}

	d.PaymentMethod = method
	d.State = StatePaymentSelected
	return d, nil
}

// CheckConfirmable validates that d may be confirmed at now.
func (m *Machine) CheckConfirmable(d Draft, now time.Time) error {
	if d.State != StatePaymentSelected {
		return transitionErr("confirm", d.State)
	}
	if !m.filter.IsAvailable(*d.Date, *d.Slot, now) {
		return fmt.Errorf("%w: %s %s", ErrSlotUnavailable, d.Date, d.Slot)
	}
	return nil
}

// Candidate is the record a confirmable draft asks the store to persist.
func (m *Machine) Candidate(d Draft, price decimal.Decimal) domain.AppointmentCandidate {
	return domain.AppointmentCandidate{
		ServiceID:     d.Service.ID,
		ServiceName:   d.Service.Name,
		Date:          *d.Date,
		Slot:          *d.Slot,
		Price:         price,
		PaymentMethod: d.PaymentMethod,
	}
}

// Confirmed marks d as persisted. It is only valid after CheckConfirmable.
func (m *Machine) Confirmed(d Draft) Draft {
	d.State = StateConfirmed
	return d
}

// Reopen sends a draft that lost its slot back to slot selection so the
// caller can pick another one. The payment method must be chosen again.
func (m *Machine) Reopen(d Draft) Draft {
	if d.State != StatePaymentSelected {
		return d
	}
	d.PaymentMethod = ""
	d.State = StateSlotSelected
	return d
}

func (m *Machine) Cancel(d Draft) (Draft, error) {
	if d.State.Terminal() {
		return d, transitionErr("cancel", d.State)
	}
	d.State = StateCancelled
	return d, nil
}
