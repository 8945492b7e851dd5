package booking

import "errors"

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrSlotUnavailable      = errors.New("slot unavailable")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrSlotConflict         = errors.New("slot conflict")
	ErrPricing              = errors.New("pricing error")
	ErrNotFound             = errors.New("not found")

	ErrDraftNotFound   = errors.New("draft not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInactive = errors.New("service inactive")
	ErrValidation      = errors.New("validation error")
)
