package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonagenda/internal/domain"
)

func testService() domain.Service {
	return domain.Service{ID: 1, Name: "Corte", DurationMinutes: 30, Price: decimal.RequireFromString("50"), Active: true}
}

func paidDraft(t *testing.T, m *Machine) Draft {
	t.Helper()
	now := at("2025-06-10T09:00:00")

	d := NewDraft("d1", testService(), now)
	d, err := m.SelectDate(d, day("2025-06-11"), now)
	require.NoError(t, err)
	d, err = m.SelectSlot(d, domain.MustTimeSlot("10:00"), now)
	require.NoError(t, err)
	d, err = m.SelectPaymentMethod(d, domain.PaymentPix)
	require.NoError(t, err)
	return d
}

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine(newFilter())
	d := paidDraft(t, m)

	assert.Equal(t, StatePaymentSelected, d.State)
	require.NoError(t, m.CheckConfirmable(d, at("2025-06-10T09:00:00")))

	c := m.Candidate(d, decimal.RequireFromString("50"))
	assert.Equal(t, domain.AppointmentCandidate{
		ServiceID:     1,
		ServiceName:   "Corte",
		Date:          day("2025-06-11"),
		Slot:          domain.MustTimeSlot("10:00"),
		Price:         decimal.RequireFromString("50"),
		PaymentMethod: domain.PaymentPix,
	}, c)

	assert.Equal(t, StateConfirmed, m.Confirmed(d).State)
}

func TestMachine_IllegalTransitions(t *testing.T) {
	m := NewMachine(newFilter())
	now := at("2025-06-10T09:00:00")
	empty := NewDraft("d1", testService(), now)

	_, err := m.SelectSlot(empty, domain.MustTimeSlot("10:00"), now)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = m.SelectPaymentMethod(empty, domain.PaymentPix)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	dated, err := m.SelectDate(empty, day("2025-06-11"), now)
	require.NoError(t, err)
	_, err = m.SelectPaymentMethod(dated, domain.PaymentPix)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, m.CheckConfirmable(dated, now), ErrInvalidTransition)

	confirmed := m.Confirmed(paidDraft(t, m))
	_, err = m.SelectDate(confirmed, day("2025-06-12"), now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Cancel(confirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, m.CheckConfirmable(confirmed, now), ErrInvalidTransition)

	cancelled, err := m.Cancel(dated)
	require.NoError(t, err)
	_, err = m.SelectSlot(cancelled, domain.MustTimeSlot("10:00"), now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMachine_RejectedInputLeavesDraftAsIs(t *testing.T) {
	m := NewMachine(newFilter())
	now := at("2025-06-10T14:30:00")
	d := NewDraft("d1", testService(), now)

	got, err := m.SelectDate(d, day("2025-06-09"), now)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, d, got)

	d, err = m.SelectDate(d, day("2025-06-10"), now)
	require.NoError(t, err)

	got, err = m.SelectSlot(d, domain.MustTimeSlot("14:00"), now)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, d, got)

	_, err = m.SelectSlot(d, domain.MustTimeSlot("12:00"), now)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	d, err = m.SelectSlot(d, domain.MustTimeSlot("15:00"), now)
	require.NoError(t, err)
	got, err = m.SelectPaymentMethod(d, domain.PaymentMethod("cash"))
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	assert.Equal(t, StateSlotSelected, got.State)
}

func TestMachine_DoesNotMutateInput(t *testing.T) {
	m := NewMachine(newFilter())
	now := at("2025-06-10T09:00:00")
	d := NewDraft("d1", testService(), now)

	next, err := m.SelectDate(d, day("2025-06-11"), now)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, d.State)
	assert.Nil(t, d.Date)
	assert.NotNil(t, next.Date)
}

func TestMachine_ReselectClearsDownstream(t *testing.T) {
	m := NewMachine(newFilter())
	now := at("2025-06-10T09:00:00")
	d := paidDraft(t, m)

	d2, err := m.SelectSlot(d, domain.MustTimeSlot("11:00"), now)
	require.NoError(t, err)
	assert.Equal(t, StateSlotSelected, d2.State)
	assert.Empty(t, d2.PaymentMethod)

	d3, err := m.SelectDate(d, day("2025-06-12"), now)
	require.NoError(t, err)
	assert.Equal(t, StateDateSelected, d3.State)
	assert.Nil(t, d3.Slot)
	assert.Empty(t, d3.PaymentMethod)
}

func TestMachine_SlotPassesBeforeConfirm(t *testing.T) {
	m := NewMachine(newFilter())
	now := at("2025-06-10T14:30:00")

	d := NewDraft("d1", testService(), now)
	d, _ = m.SelectDate(d, day("2025-06-10"), now)
	d, _ = m.SelectSlot(d, domain.MustTimeSlot("15:00"), now)
	d, _ = m.SelectPaymentMethod(d, domain.PaymentCredit)

	err := m.CheckConfirmable(d, at("2025-06-10T15:00:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	reopened := m.Reopen(d)
	assert.Equal(t, StateSlotSelected, reopened.State)
	assert.Empty(t, reopened.PaymentMethod)
	assert.Equal(t, "15:00", reopened.Slot.String())
}

func TestMachine_ReopenOnlyAffectsPaidDrafts(t *testing.T) {
	m := NewMachine(newFilter())
	d := NewDraft("d1", testService(), at("2025-06-10T09:00:00"))
	assert.Equal(t, d, m.Reopen(d))
}
