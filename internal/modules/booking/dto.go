package booking

import (
	"time"

	"salonagenda/internal/domain"
)

type StartBookingRequest struct {
	ServiceID int64 `json:"service_id" binding:"required,gt=0"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type SelectSlotRequest struct {
	Slot string `json:"slot" binding:"required"`
}

type SelectPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type DraftResponse struct {
	ID            string               `json:"id"`
	State         State                `json:"state"`
	ServiceID     int64                `json:"service_id"`
	ServiceName   string               `json:"service_name"`
	Price         string               `json:"price"`
	Date          *domain.Date         `json:"date,omitempty"`
	Slot          *domain.TimeSlot     `json:"slot,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"payment_method,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toDraftResponse(d Draft) DraftResponse {
	return DraftResponse{
		ID:            d.ID,
		State:         d.State,
		ServiceID:     d.Service.ID,
		ServiceName:   d.Service.Name,
		Price:         d.Service.Price.StringFixed(2),
		Date:          d.Date,
		Slot:          d.Slot,
		PaymentMethod: d.PaymentMethod,
		CreatedAt:     d.CreatedAt,
	}
}

type AvailabilityResponse struct {
	Date  domain.Date       `json:"date"`
	Slots []domain.TimeSlot `json:"slots"`
}
