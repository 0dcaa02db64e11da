package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"armora/models"

	"go.uber.org/zap"
)

// Storage keys for the two persisted records.
const (
	currentBookingKey = "current_booking"
	bookingHistoryKey = "booking_history"
)

const (
	historyLimit           = 50
	arrivalBufferMinutes   = 5
	confirmationPrefix     = "GQ"
	confirmationCodeLength = 8
	defaultPaymentTimeout  = 30 * time.Second
)

const confirmationCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Event types emitted to listeners after each successful transition.
const (
	EventBookingStarted    = "booking_started"
	EventBookingUpdated    = "booking_updated"
	EventRideSelected      = "ride_selected"
	EventOfficerSelected   = "officer_selected"
	EventPaymentMethodSet  = "payment_method_set"
	EventPaymentProcessing = "payment_processing"
	EventBookingConfirmed  = "booking_confirmed"
	EventPaymentFailed     = "payment_failed"
	EventBookingError      = "booking_error"
	EventBookingCancelled  = "booking_cancelled"
	EventBookingCleared    = "booking_cleared"
	EventBookingRestored   = "booking_restored"
)

// Listener receives the event type and a snapshot of the booking involved.
// The snapshot is a copy; mutating it has no effect on coordinator state.
type Listener func(event string, booking *models.Booking)

// ArchiveSink receives terminal bookings for durable archival. Writes are
// best-effort; failures never abort a lifecycle transition.
type ArchiveSink interface {
	Create(ctx context.Context, booking models.Booking) error
}

// Coordinator owns the single active booking, drives its lifecycle state
// machine, persists every mutation write-through, and notifies listeners
// after each successful transition. All mutating operations are serialized.
type Coordinator struct {
	store   Storage
	gateway PaymentGateway
	logger  *zap.Logger

	// Optional collaborators, set before first use.
	Availability   AvailabilityProvider
	Archive        ArchiveSink
	PaymentTimeout time.Duration

	mu      sync.Mutex
	current *models.Booking

	listenerMu     sync.Mutex
	listeners      map[int]Listener
	nextListenerID int

	rng *rand.Rand
	now func() time.Time
}

// NewCoordinator builds a Coordinator with the required capabilities. The
// availability provider defaults to the random stub and the payment timeout
// to 30 seconds.
func NewCoordinator(store Storage, gateway PaymentGateway, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := time.Now().UnixNano()
	return &Coordinator{
		store:          store,
		gateway:        gateway,
		logger:         logger,
		Availability:   NewRandomAvailabilityProvider(seed),
		PaymentTimeout: defaultPaymentTimeout,
		listeners:      make(map[int]Listener),
		rng:            rand.New(rand.NewSource(seed)),
		now:            time.Now,
	}
}

// AddListener registers a callback and returns its unsubscribe function.
func (c *Coordinator) AddListener(fn Listener) func() {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		c.listenerMu.Lock()
		defer c.listenerMu.Unlock()
		delete(c.listeners, id)
	}
}

// notify fans out synchronously in registration order, outside the state lock
// so listeners may call back into the coordinator.
func (c *Coordinator) notify(event string, booking *models.Booking) {
	c.listenerMu.Lock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.listeners[id])
	}
	c.listenerMu.Unlock()

	for _, fn := range fns {
		fn(event, booking.Clone())
	}
}

// StartBooking creates a fresh booking in status service_selected with price
// and duration estimates computed from the route. An existing active booking
// is overwritten without archival.
func (c *Coordinator) StartBooking(ctx context.Context, pickup, destination models.Location, service models.ServiceTier) (*models.Booking, error) {
	if pickup.Coordinates == nil || destination.Coordinates == nil {
		return nil, ErrInvalidLocation
	}

	c.mu.Lock()
	now := c.now()
	booking := &models.Booking{
		ID:                  c.generateBookingID(),
		Status:              models.StatusServiceSelected,
		CreatedAt:           now,
		UpdatedAt:           now,
		PickupLocation:      pickup,
		DestinationLocation: destination,
		SelectedService:     service,
		EstimatedPrice:      EstimatePrice(service, pickup, destination),
		EstimatedDuration:   EstimateDurationMinutes(pickup, destination),
		SpecialRequests:     []string{},
	}
	if err := c.persistCurrent(ctx, booking, "startBooking"); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.current = booking
	snapshot := booking.Clone()
	c.mu.Unlock()

	c.logger.Info("booking started",
		zap.String("bookingId", snapshot.ID),
		zap.String("service", service.Name),
		zap.Float64("estimatedPrice", snapshot.EstimatedPrice))
	c.notify(EventBookingStarted, snapshot)
	return snapshot, nil
}

// SelectRide records the chosen ride class and re-prices the booking by the
// class multiplier.
func (c *Coordinator) SelectRide(ctx context.Context, ride models.RideOption) (*models.Booking, error) {
	return c.transition(ctx, "selectRide", EventRideSelected, func(b *models.Booking) {
		r := ride
		b.SelectedRide = &r
		b.EstimatedPrice = ApplyRideTierMultiplier(b.EstimatedPrice, ride.Tier)
		b.Status = models.StatusRideSelected
	})
}

// SelectOfficer records the chosen close-protection officer. No price effect.
func (c *Coordinator) SelectOfficer(ctx context.Context, officer models.Officer) (*models.Booking, error) {
	return c.transition(ctx, "selectOfficer", EventOfficerSelected, func(b *models.Booking) {
		o := officer
		b.SelectedOfficer = &o
		b.Status = models.StatusOfficerSelected
	})
}

// SetPaymentMethod records the payment instrument to charge at confirmation.
func (c *Coordinator) SetPaymentMethod(ctx context.Context, method models.PaymentMethod) (*models.Booking, error) {
	return c.transition(ctx, "setPaymentMethod", EventPaymentMethodSet, func(b *models.Booking) {
		m := method
		b.PaymentMethod = &m
		b.Status = models.StatusPaymentReady
	})
}

// AddSpecialRequest appends a rider instruction to the booking.
func (c *Coordinator) AddSpecialRequest(ctx context.Context, request string) (*models.Booking, error) {
	return c.transition(ctx, "addSpecialRequest", EventBookingUpdated, func(b *models.Booking) {
		b.SpecialRequests = append(b.SpecialRequests, request)
	})
}

// transition applies a mutation to a copy of the active booking, persists it
// write-through, then swaps it in and notifies. A persistence failure aborts
// the transition with state unchanged.
func (c *Coordinator) transition(ctx context.Context, op, event string, apply func(b *models.Booking)) (*models.Booking, error) {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return nil, ErrNoActiveBooking
	}
	updated := c.current.Clone()
	apply(updated)
	updated.UpdatedAt = c.now()
	if err := c.persistCurrent(ctx, updated, op); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.current = updated
	snapshot := updated.Clone()
	c.mu.Unlock()

	c.logger.Debug("booking transition",
		zap.String("bookingId", snapshot.ID),
		zap.String("op", op),
		zap.String("status", string(snapshot.Status)))
	c.notify(event, snapshot)
	return snapshot, nil
}

// ConfirmBooking charges the booking and settles it as confirmed or
// payment_failed. Observers see the in-flight processing_payment state before
// the gateway is invoked. Requires ride, officer and payment method. A booking
// already in a terminal status cannot be confirmed again, except payment_failed
// which permits a retry.
func (c *Coordinator) ConfirmBooking(ctx context.Context) (*models.Booking, error) {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return nil, ErrNoActiveBooking
	}
	if s := c.current.Status; s.Terminal() && s != models.StatusPaymentFailed {
		c.mu.Unlock()
		return nil, ErrBookingSettled
	}
	if c.current.SelectedRide == nil || c.current.SelectedOfficer == nil || c.current.PaymentMethod == nil {
		c.mu.Unlock()
		return nil, ErrIncompleteBooking
	}

	processing := c.current.Clone()
	processing.Status = models.StatusProcessingPayment
	// A retry after payment_failed starts clean.
	processing.PaymentError = ""
	processing.UpdatedAt = c.now()
	if err := c.persistCurrent(ctx, processing, "confirmBooking"); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.current = processing
	inflight := processing.Clone()
	c.mu.Unlock()

	c.notify(EventPaymentProcessing, inflight)

	result, payErr := c.settlePayment(ctx, inflight)

	c.mu.Lock()
	if c.current == nil || c.current.ID != inflight.ID {
		c.mu.Unlock()
		return nil, fmt.Errorf("booking %s superseded while payment was in flight", inflight.ID)
	}

	settled := c.current.Clone()
	var event string
	switch {
	case payErr != nil && errors.Is(payErr, context.DeadlineExceeded):
		settled.Status = models.StatusPaymentFailed
		settled.PaymentError = "payment timed out"
		event = EventPaymentFailed
	case payErr != nil:
		settled.Status = models.StatusError
		settled.Error = payErr.Error()
		event = EventBookingError
	case !result.Success:
		settled.Status = models.StatusPaymentFailed
		settled.PaymentError = result.Error
		event = EventPaymentFailed
	default:
		settled.Status = models.StatusConfirmed
		settled.ConfirmationDetails = c.buildConfirmation(settled, result.PaymentID)
		event = EventBookingConfirmed
	}
	settled.UpdatedAt = c.now()

	// A failed settle write leaves the record in processing_payment; callers
	// must not lose the charge outcome to a silent state divergence.
	if err := c.persistCurrent(ctx, settled, "confirmBooking"); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.current = settled
	snapshot := settled.Clone()
	c.mu.Unlock()

	switch settled.Status {
	case models.StatusConfirmed:
		c.logger.Info("booking confirmed",
			zap.String("bookingId", snapshot.ID),
			zap.String("confirmation", snapshot.ConfirmationDetails.ConfirmationNumber))
		c.archiveBooking(ctx, snapshot)
	case models.StatusPaymentFailed:
		c.logger.Warn("booking payment failed",
			zap.String("bookingId", snapshot.ID),
			zap.String("reason", snapshot.PaymentError))
	default:
		c.logger.Error("booking confirmation error",
			zap.String("bookingId", snapshot.ID),
			zap.String("error", snapshot.Error))
	}
	c.notify(event, snapshot)
	return snapshot, nil
}

// settlePayment invokes the gateway under the configured timeout, converting
// a gateway panic into an error.
func (c *Coordinator) settlePayment(ctx context.Context, b *models.Booking) (result *models.PaymentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("payment gateway panic: %v", r)
		}
	}()

	timeout := c.PaymentTimeout
	if timeout <= 0 {
		timeout = defaultPaymentTimeout
	}
	payCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := models.PaymentRequest{
		Amount:        b.EstimatedPrice,
		Currency:      "GBP",
		PaymentMethod: *b.PaymentMethod,
		BookingID:     b.ID,
		Description: fmt.Sprintf("%s: %s to %s",
			b.SelectedService.Name, b.PickupLocation.Address, b.DestinationLocation.Address),
	}
	res, gerr := c.gateway.ProcessPayment(payCtx, req)
	if gerr != nil {
		if payCtx.Err() != nil {
			return nil, context.DeadlineExceeded
		}
		return nil, gerr
	}
	return res, nil
}

func (c *Coordinator) buildConfirmation(b *models.Booking, paymentID string) *models.ConfirmationDetails {
	v := b.SelectedOfficer.Vehicle
	return &models.ConfirmationDetails{
		ConfirmationNumber: c.generateConfirmationNumber(),
		PaymentID:          paymentID,
		EstimatedArrival:   c.now().Add(time.Duration(b.EstimatedDuration+arrivalBufferMinutes) * time.Minute),
		OfficerName:        b.SelectedOfficer.Name,
		OfficerPhone:       b.SelectedOfficer.Phone,
		VehicleDescription: fmt.Sprintf("%s %s %s (%s)", v.Color, v.Make, v.Model, v.LicensePlate),
	}
}

// CancelBooking moves the active booking to cancelled, archives it, clears
// the active slot and deletes the persisted record. Returns false when no
// booking is active or the booking has already reached a terminal status;
// settled bookings leave the active slot via ClearCurrentBooking.
func (c *Coordinator) CancelBooking(ctx context.Context, reason string) (bool, error) {
	c.mu.Lock()
	if c.current == nil || c.current.Status.Terminal() {
		c.mu.Unlock()
		return false, nil
	}
	if reason == "" {
		reason = "User cancelled"
	}
	cancelled := c.current.Clone()
	cancelled.Status = models.StatusCancelled
	cancelled.CancellationReason = reason
	cancelled.UpdatedAt = c.now()
	if err := c.store.Remove(ctx, currentBookingKey); err != nil {
		c.mu.Unlock()
		return false, &PersistenceError{Op: "cancelBooking", Err: err}
	}
	c.current = nil
	snapshot := cancelled.Clone()
	c.mu.Unlock()

	c.logger.Info("booking cancelled",
		zap.String("bookingId", snapshot.ID),
		zap.String("reason", reason))
	c.archiveBooking(ctx, snapshot)
	c.notify(EventBookingCancelled, snapshot)
	return true, nil
}

// ClearCurrentBooking archives the active booking whatever its status, clears
// the active slot and deletes the persisted record. No-op when nothing is
// active.
func (c *Coordinator) ClearCurrentBooking(ctx context.Context) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return nil
	}
	cleared := c.current.Clone()
	if err := c.store.Remove(ctx, currentBookingKey); err != nil {
		c.mu.Unlock()
		return &PersistenceError{Op: "clearCurrentBooking", Err: err}
	}
	c.current = nil
	c.mu.Unlock()

	c.archiveBooking(ctx, cleared)
	c.notify(EventBookingCleared, nil)
	return nil
}

// LoadFromStorage rehydrates the active booking after a process restart.
// Returns (nil, nil) when no record is persisted.
func (c *Coordinator) LoadFromStorage(ctx context.Context) (*models.Booking, error) {
	data, err := c.store.Get(ctx, currentBookingKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "loadFromStorage", Err: err}
	}

	var booking models.Booking
	if err := json.Unmarshal([]byte(data), &booking); err != nil {
		return nil, fmt.Errorf("corrupt persisted booking record: %w", err)
	}

	c.mu.Lock()
	c.current = &booking
	snapshot := booking.Clone()
	c.mu.Unlock()

	c.logger.Info("booking restored from storage",
		zap.String("bookingId", snapshot.ID),
		zap.String("status", string(snapshot.Status)))
	c.notify(EventBookingRestored, snapshot)
	return snapshot, nil
}

// GetCurrentBooking returns a snapshot of the active booking, or nil.
func (c *Coordinator) GetCurrentBooking() *models.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Clone()
}

// GetBookingHistory reads the archived history list, most-recent-first. Read
// failures degrade to an empty list.
func (c *Coordinator) GetBookingHistory(ctx context.Context) []models.Booking {
	data, err := c.store.Get(ctx, bookingHistoryKey)
	if errors.Is(err, ErrNotFound) {
		return []models.Booking{}
	}
	if err != nil {
		c.logger.Warn("failed to read booking history", zap.Error(err))
		return []models.Booking{}
	}
	var history []models.Booking
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		c.logger.Warn("corrupt booking history record", zap.Error(err))
		return []models.Booking{}
	}
	return history
}

// CheckServiceAvailability probes the availability provider. Independent of
// the active booking.
func (c *Coordinator) CheckServiceAvailability(ctx context.Context, location models.Location, serviceType string) (*models.AvailabilityReport, error) {
	return c.Availability.CheckAvailability(ctx, location, serviceType)
}

// archiveBooking prepends the booking to the capped history list and mirrors
// it to the durable archive. Both writes are best-effort.
func (c *Coordinator) archiveBooking(ctx context.Context, booking *models.Booking) {
	history := c.GetBookingHistory(ctx)

	// Re-archival of the same booking (confirm then clear) replaces the entry.
	kept := make([]models.Booking, 0, len(history)+1)
	kept = append(kept, *booking)
	for _, h := range history {
		if h.ID != booking.ID {
			kept = append(kept, h)
		}
	}
	if len(kept) > historyLimit {
		kept = kept[:historyLimit]
	}

	data, err := json.Marshal(kept)
	if err != nil {
		c.logger.Warn("failed to marshal booking history", zap.Error(err))
	} else if err := c.store.Set(ctx, bookingHistoryKey, string(data)); err != nil {
		c.logger.Warn("failed to save booking history",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	if c.Archive != nil {
		if err := c.Archive.Create(ctx, *booking); err != nil {
			c.logger.Warn("failed to archive booking",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
}

func (c *Coordinator) persistCurrent(ctx context.Context, booking *models.Booking, op string) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := c.store.Set(ctx, currentBookingKey, string(data)); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (c *Coordinator) generateBookingID() string {
	return fmt.Sprintf("%s%d%03d", confirmationPrefix, c.now().UnixMilli(), c.rng.Intn(1000))
}

func (c *Coordinator) generateConfirmationNumber() string {
	code := make([]byte, confirmationCodeLength)
	for i := range code {
		code[i] = confirmationCharset[c.rng.Intn(len(confirmationCharset))]
	}
	return confirmationPrefix + string(code)
}
