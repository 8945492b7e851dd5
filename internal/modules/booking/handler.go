package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salonagenda/internal/domain"
	"salonagenda/internal/middleware"
	jwtsvc "salonagenda/internal/pkg/jwt"
	"salonagenda/internal/pkg/response"
)

type Handler struct {
	service *Service
	tokens  *jwtsvc.Service
}

func NewHandler(service *Service, tokens *jwtsvc.Service) *Handler {
	return &Handler{service: service, tokens: tokens}
}

// RegisterRoutes mounts public booking routes and the draft routes, which
// need a session token issued by POST /bookings.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetAvailability)
	rg.POST("/bookings", h.StartBooking)

	// There are no accounts: appointment listing and removal are open to any
	// caller, like the salon's shared agenda. Put an auth middleware on rg to
	// restrict them.
	rg.GET("/appointments", h.ListAppointments)
	rg.DELETE("/appointments/:id", h.RemoveAppointment)

	draft := rg.Group("/bookings/draft")
	draft.Use(middleware.BookingSession(h.tokens))
	{
		draft.GET("", h.GetDraft)
		draft.PUT("/date", h.SelectDate)
		draft.GET("/slots", h.GetSlots)
		draft.PUT("/slot", h.SelectSlot)
		draft.PUT("/payment-method", h.SelectPaymentMethod)
		draft.POST("/confirm", h.Confirm)
		draft.DELETE("", h.Cancel)
	}
}

func (h *Handler) GetAvailability(c *gin.Context) {
	date, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.service.AvailableSlotsForDate(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, AvailabilityResponse{Date: date, Slots: slots})
}

func (h *Handler) StartBooking(c *gin.Context) {
	var req StartBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, http.StatusBadRequest, err)
		return
	}

	d, err := h.service.StartBooking(c.Request.Context(), req.ServiceID)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(d.ID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue booking session")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"draft":         toDraftResponse(d),
		"session_token": token,
	})
}

func (h *Handler) GetDraft(c *gin.Context) {
	d, err := h.service.GetDraft(c.Request.Context(), c.GetString(middleware.DraftIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, http.StatusBadRequest, err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
		return
	}

	d, err := h.service.SelectDate(c.Request.Context(), c.GetString(middleware.DraftIDKey), date)
	h.respondDraft(c, d, err)
}

func (h *Handler) GetSlots(c *gin.Context) {
	slots, err := h.service.AvailableSlots(c.Request.Context(), c.GetString(middleware.DraftIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) SelectSlot(c *gin.Context) {
	var req SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, http.StatusBadRequest, err)
		return
	}
	slot, err := domain.ParseTimeSlot(req.Slot)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "slot must be HH:MM")
		return
	}

	d, err := h.service.SelectSlot(c.Request.Context(), c.GetString(middleware.DraftIDKey), slot)
	h.respondDraft(c, d, err)
}

func (h *Handler) SelectPaymentMethod(c *gin.Context) {
	var req SelectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, http.StatusBadRequest, err)
		return
	}

	method := domain.ParsePaymentMethod(req.PaymentMethod)
	d, err := h.service.SelectPaymentMethod(c.Request.Context(), c.GetString(middleware.DraftIDKey), method)
	h.respondDraft(c, d, err)
}

func (h *Handler) Confirm(c *gin.Context) {
	appt, d, err := h.service.Confirm(c.Request.Context(), c.GetString(middleware.DraftIDKey))
	if err != nil {
		h.failWithDraft(c, d, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"appointment": appt,
		"draft":       toDraftResponse(d),
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	d, err := h.service.Cancel(c.Request.Context(), c.GetString(middleware.DraftIDKey))
	h.respondDraft(c, d, err)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	items, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": items})
}

func (h *Handler) RemoveAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID")
		return
	}

	if err := h.service.RemoveAppointment(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": id})
}

func (h *Handler) respondDraft(c *gin.Context, d Draft, err error) {
	if err != nil {
		h.failWithDraft(c, d, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

// failWithDraft reports err and, when the draft is still usable, its current
// state so the client can recover without another round trip.
func (h *Handler) failWithDraft(c *gin.Context, d Draft, err error) {
	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	if d.ID == "" {
		response.Error(c, status, code, msg)
		return
	}
	response.ErrorWithDetails(c, status, code, msg, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	response.Error(c, status, code, msg)
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		return http.StatusBadRequest, "INVALID_DATE", "Date is in the past or beyond the booking horizon"
	case errors.Is(err, ErrInvalidPaymentMethod):
		return http.StatusBadRequest, "INVALID_PAYMENT_METHOD", "Payment method must be credit, debit or pix"
	case errors.Is(err, ErrSlotUnavailable):
		return http.StatusConflict, "SLOT_UNAVAILABLE", "Slot is no longer available, pick another one"
	case errors.Is(err, ErrSlotConflict):
		return http.StatusConflict, "SLOT_CONFLICT", "Slot was booked by someone else, pick another one"
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", "Operation not allowed in the current booking step"
	case errors.Is(err, ErrPricing):
		return http.StatusUnprocessableEntity, "PRICING_ERROR", "Service price is not valid"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Appointment not found"
	case errors.Is(err, ErrDraftNotFound):
		return http.StatusNotFound, "DRAFT_NOT_FOUND", "Booking session expired or unknown"
	case errors.Is(err, ErrServiceNotFound):
		return http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found"
	case errors.Is(err, ErrServiceInactive):
		return http.StatusConflict, "SERVICE_INACTIVE", "Service is not available for booking"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking"
	}
}
