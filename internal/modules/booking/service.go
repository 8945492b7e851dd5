package booking

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"salonagenda/internal/domain"
)

const (
	defaultDraftTTL = 30 * time.Minute
	// Finished drafts linger so late calls get ErrInvalidTransition
	// instead of ErrDraftNotFound.
	finishedDraftTTL = 5 * time.Minute
)

// draftLockStripes is the number of mutexes drafts are hashed onto.
const draftLockStripes = 64

var tracer = otel.Tracer("salonagenda/booking")

type Service struct {
	store    AppointmentStore
	catalog  ServiceCatalog
	drafts   DraftStore
	machine  *Machine
	pricing  *PriceResolver
	clock    Clock
	notifier Notifier
	metrics  *Metrics
	logger   *zap.Logger
	draftTTL time.Duration
	newID    func() string

	// read-modify-write of one draft runs under its stripe
	draftLocks [draftLockStripes]sync.Mutex
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }

func WithMetrics(m *Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

func WithDraftTTL(ttl time.Duration) Option { return func(s *Service) { s.draftTTL = ttl } }

func NewService(
	store AppointmentStore,
	catalog ServiceCatalog,
	drafts DraftStore,
	machine *Machine,
	pricing *PriceResolver,
	clock Clock,
	opts ...Option,
) *Service {
	s := &Service{
		store:    store,
		catalog:  catalog,
		drafts:   drafts,
		machine:  machine,
		pricing:  pricing,
		clock:    clock,
		logger:   zap.NewNop(),
		draftTTL: defaultDraftTTL,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier(s.logger)
	}
	return s
}

// StartBooking opens a new draft for an active service.
func (s *Service) StartBooking(ctx context.Context, serviceID int64) (Draft, error) {
	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		return Draft{}, err
	}
	if svc == nil {
		return Draft{}, ErrServiceNotFound
	}
	if !svc.Active {
		return Draft{}, fmt.Errorf("%w: %d", ErrServiceInactive, serviceID)
	}

	d := NewDraft(s.newID(), *svc, s.clock.Now())
	if err := s.drafts.Save(ctx, d, s.draftTTL); err != nil {
		return Draft{}, err
	}
	s.metrics.ObserveTransition("start", nil)
	s.logger.Debug("draft started", zap.String("draft_id", d.ID), zap.Int64("service_id", svc.ID))
	return d, nil
}

func (s *Service) GetDraft(ctx context.Context, draftID string) (Draft, error) {
	return s.drafts.Get(ctx, draftID)
}

func (s *Service) SelectDate(ctx context.Context, draftID string, date domain.Date) (Draft, error) {
	return s.step(ctx, draftID, "select_date", func(d Draft, now time.Time) (Draft, error) {
		return s.machine.SelectDate(d, date, now)
	})
}

// AvailableSlots lists what the draft's date still offers, without slots
// already held by other appointments.
func (s *Service) AvailableSlots(ctx context.Context, draftID string) ([]domain.TimeSlot, error) {
	d, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.State.Terminal() || d.Date == nil {
		return nil, transitionErr("list slots", d.State)
	}
	return s.AvailableSlotsForDate(ctx, *d.Date)
}

// AvailableSlotsForDate is AvailableSlots without a draft.
func (s *Service) AvailableSlotsForDate(ctx context.Context, date domain.Date) ([]domain.TimeSlot, error) {
	slots := s.machine.Filter().Available(date, s.clock.Now())
	if len(slots) == 0 {
		return slots, nil
	}

	occupied, err := s.store.OccupiedSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	return subtractOccupied(slots, occupied), nil
}

func (s *Service) SelectSlot(ctx context.Context, draftID string, slot domain.TimeSlot) (Draft, error) {
	return s.step(ctx, draftID, "select_slot", func(d Draft, now time.Time) (Draft, error) {
		next, err := s.machine.SelectSlot(d, slot, now)
		if err != nil {
			return d, err
		}
		occupied, err := s.store.OccupiedSlots(ctx, *next.Date)
		if err != nil {
			return d, err
		}
		for _, o := range occupied {
			if o == slot {
				return d, fmt.Errorf("%w: %s %s already booked", ErrSlotUnavailable, next.Date, slot)
			}
		}
		return next, nil
	})
}

func (s *Service) SelectPaymentMethod(ctx context.Context, draftID string, method domain.PaymentMethod) (Draft, error) {
	return s.step(ctx, draftID, "select_payment_method", func(d Draft, _ time.Time) (Draft, error) {
		return s.machine.SelectPaymentMethod(d, method)
	})
}

// Confirm persists the draft as a pending appointment. On ErrSlotUnavailable
// or ErrSlotConflict the returned draft is back in slot selection.
func (s *Service) Confirm(ctx context.Context, draftID string) (*domain.Appointment, Draft, error) {
	ctx, span := tracer.Start(ctx, "booking.Confirm", trace.WithAttributes(attribute.String("draft_id", draftID)))
	appt, d, err := s.confirm(ctx, draftID)
	endSpan(span, err)
	s.metrics.ObserveConfirm(err)
	return appt, d, err
}

func (s *Service) confirm(ctx context.Context, draftID string) (*domain.Appointment, Draft, error) {
	unlock := s.lockDraft(draftID)
	defer unlock()

	d, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, Draft{}, err
	}

	if err := s.machine.CheckConfirmable(d, s.clock.Now()); err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			d, err = s.reopen(ctx, d, err)
		}
		return nil, d, err
	}

	price, err := s.pricing.FinalPrice(d.Service.Price, d.PaymentMethod)
	if err != nil {
		return nil, d, err
	}

	appt, err := s.store.Create(ctx, s.machine.Candidate(d, price))
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			d, err = s.reopen(ctx, d, err)
		}
		return nil, d, err
	}

	d = s.machine.Confirmed(d)
	if err := s.drafts.Save(ctx, d, finishedDraftTTL); err != nil {
		s.logger.Warn("failed to retire confirmed draft", zap.String("draft_id", d.ID), zap.Error(err))
	}
	s.notifier.AppointmentCreated(ctx, *appt)
	return appt, d, nil
}

// reopen must be called with the draft's lock held. The stored copy is
// re-read so a draft finished elsewhere is never moved back.
func (s *Service) reopen(ctx context.Context, d Draft, cause error) (Draft, error) {
	current, err := s.drafts.Get(ctx, d.ID)
	if err != nil {
		return d, errors.Join(cause, err)
	}
	if current.State != StatePaymentSelected {
		return current, cause
	}
	d = current

	s.logger.Warn("slot lost at confirm",
		zap.String("draft_id", d.ID),
		zap.String("date", d.Date.String()),
		zap.String("slot", d.Slot.String()),
		zap.Error(cause),
	)
	d = s.machine.Reopen(d)
	if err := s.drafts.Save(ctx, d, s.draftTTL); err != nil {
		return d, errors.Join(cause, err)
	}
	return d, cause
}

func (s *Service) Cancel(ctx context.Context, draftID string) (Draft, error) {
	unlock := s.lockDraft(draftID)
	defer unlock()

	d, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return Draft{}, err
	}
	next, err := s.machine.Cancel(d)
	s.metrics.ObserveTransition("cancel", err)
	if err != nil {
		return d, err
	}
	if err := s.drafts.Save(ctx, next, finishedDraftTTL); err != nil {
		return next, err
	}
	return next, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return s.store.List(ctx)
}

func (s *Service) RemoveAppointment(ctx context.Context, id int64) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.notifier.AppointmentRemoved(ctx, id)
	return nil
}

// step loads a draft, applies fn and stores the result if fn succeeded.
// On failure the stored draft is left untouched and returned as is.
func (s *Service) step(ctx context.Context, draftID, op string, fn func(Draft, time.Time) (Draft, error)) (Draft, error) {
	unlock := s.lockDraft(draftID)
	defer unlock()

	d, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return Draft{}, err
	}

	next, err := fn(d, s.clock.Now())
	s.metrics.ObserveTransition(op, err)
	if err != nil {
		s.logger.Debug("transition rejected", zap.String("draft_id", draftID), zap.String("op", op), zap.Error(err))
		return d, err
	}
	if err := s.drafts.Save(ctx, next, s.draftTTL); err != nil {
		return d, err
	}
	s.logger.Debug("transition applied", zap.String("draft_id", draftID), zap.String("op", op), zap.String("state", string(next.State)))
	return next, nil
}

// lockDraft serializes transitions of one draft within this process.
func (s *Service) lockDraft(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &s.draftLocks[h.Sum32()%draftLockStripes]
	mu.Lock()
	return mu.Unlock
}

func subtractOccupied(slots, occupied []domain.TimeSlot) []domain.TimeSlot {
	if len(occupied) == 0 {
		return slots
	}
	taken := make(map[domain.TimeSlot]struct{}, len(occupied))
	for _, o := range occupied {
		taken[o] = struct{}{}
	}
	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if _, ok := taken[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
