package booking

import (
	"context"

	"go.uber.org/zap"

	"salonagenda/internal/domain"
)

// LogNotifier records booking side effects in the log. It stands in for
// whatever delivers toasts or messages to people.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) AppointmentCreated(_ context.Context, a domain.Appointment) {
	n.logger.Info("appointment created",
		zap.Int64("appointment_id", a.ID),
		zap.Int64("service_id", a.ServiceID),
		zap.String("date", a.Date.String()),
		zap.String("slot", a.Slot.String()),
		zap.String("payment_method", string(a.PaymentMethod)),
		zap.String("price", a.Price.StringFixed(2)),
	)
}

func (n *LogNotifier) AppointmentRemoved(_ context.Context, id int64) {
	n.logger.Info("appointment removed", zap.Int64("appointment_id", id))
}
