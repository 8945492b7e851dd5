package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// HoldsSlot reports whether an appointment in this status occupies its (date, slot).
func (s AppointmentStatus) HoldsSlot() bool {
	return s == AppointmentPending || s == AppointmentConfirmed
}

type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentPix    PaymentMethod = "pix"
)

// PaymentMethods lists every accepted method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCredit, PaymentDebit, PaymentPix}
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCredit, PaymentDebit, PaymentPix:
		return true
	}
	return false
}

// ParsePaymentMethod normalizes user input ("Pix", " CREDIT ").
// The result may be invalid; callers check Valid.
func ParsePaymentMethod(s string) PaymentMethod {
	return PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
}

// AppointmentCandidate is what a confirmed draft asks the store to persist.
type AppointmentCandidate struct {
	ServiceID     int64
	ServiceName   string
	Date          Date
	Slot          TimeSlot
	Price         decimal.Decimal
	PaymentMethod PaymentMethod
}

type Appointment struct {
	ID            int64             `json:"id"`
	ServiceID     int64             `json:"service_id"`
	ServiceName   string            `json:"service_name"`
	Date          Date              `json:"date"`
	Slot          TimeSlot          `json:"slot"`
	Price         decimal.Decimal   `json:"price"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
