package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"armora/models"
)

// memStore is an in-memory Storage used to simulate durable persistence.
type memStore struct {
	mu         sync.Mutex
	data       map[string]string
	failSet    bool
	failRemove bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *memStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("simulated write failure")
	}
	s.data[key] = value
	return nil
}

func (s *memStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRemove {
		return errors.New("simulated delete failure")
	}
	delete(s.data, key)
	return nil
}

// stubGateway settles every charge with a canned outcome.
type stubGateway struct {
	mu      sync.Mutex
	result  *models.PaymentResult
	err     error
	calls   int
	lastReq models.PaymentRequest
}

func (g *stubGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func (g *stubGateway) setResult(result *models.PaymentResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.result = result
}

// slowGateway blocks until the context is cancelled.
type slowGateway struct{}

func (g *slowGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func successGateway() *stubGateway {
	return &stubGateway{result: &models.PaymentResult{Success: true, PaymentID: "pi_test_123"}}
}

func newTestCoordinator(store Storage, gateway PaymentGateway) *Coordinator {
	c := NewCoordinator(store, gateway, nil)
	// Booking ids embed wall-clock milliseconds; an advancing fake clock keeps
	// them unique across rapid successive starts.
	base := time.Now()
	var ticks int64
	c.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Millisecond)
	}
	return c
}

func testRoute() (models.Location, models.Location) {
	pickup := models.Location{Coordinates: &london, Address: "Trafalgar Square, London"}
	dest := models.Location{Coordinates: &heathrow, Address: "Heathrow Terminal 5"}
	return pickup, dest
}

func testService() models.ServiceTier {
	return models.ServiceTier{ID: "standard", Name: "Standard Protection", BasePrice: 50.00}
}

func testOfficer() models.Officer {
	return models.Officer{
		ID: "officer_001", Name: "Marcus Steel", Phone: "+44 7700 900001", Rating: 4.9,
		Vehicle: models.Vehicle{Make: "BMW", Model: "5 Series", Color: "Black", LicensePlate: "GQ123"},
	}
}

func mustStart(t *testing.T, c *Coordinator) *models.Booking {
	t.Helper()
	pickup, dest := testRoute()
	b, err := c.StartBooking(context.Background(), pickup, dest, testService())
	if err != nil {
		t.Fatalf("StartBooking failed: %v", err)
	}
	return b
}

func completeSelections(t *testing.T, c *Coordinator) {
	t.Helper()
	ctx := context.Background()
	if _, err := c.SelectRide(ctx, models.RideOption{ID: "comfort", Name: "Comfort", Tier: "Comfort"}); err != nil {
		t.Fatalf("SelectRide failed: %v", err)
	}
	if _, err := c.SelectOfficer(ctx, testOfficer()); err != nil {
		t.Fatalf("SelectOfficer failed: %v", err)
	}
	if _, err := c.SetPaymentMethod(ctx, models.PaymentMethod{ID: "pm_1", Type: "card", Label: "Visa **** 4242"}); err != nil {
		t.Fatalf("SetPaymentMethod failed: %v", err)
	}
}

func TestStartBookingSetsEstimates(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	b := mustStart(t, c)

	if b.Status != models.StatusServiceSelected {
		t.Fatalf("status = %s, want %s", b.Status, models.StatusServiceSelected)
	}
	pickup, dest := testRoute()
	if want := EstimatePrice(testService(), pickup, dest); b.EstimatedPrice != want {
		t.Fatalf("estimatedPrice = %v, want %v", b.EstimatedPrice, want)
	}
	if b.EstimatedDuration < 8 {
		t.Fatalf("estimatedDuration = %d, want >= 8", b.EstimatedDuration)
	}
	if !regexp.MustCompile(`^GQ\d+$`).MatchString(b.ID) {
		t.Fatalf("booking id %q does not match GQ<digits>", b.ID)
	}

	current := c.GetCurrentBooking()
	if current == nil || current.ID != b.ID {
		t.Fatalf("GetCurrentBooking did not return the started booking")
	}
}

func TestStartBookingRequiresCoordinates(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	_, dest := testRoute()
	_, err := c.StartBooking(context.Background(), models.Location{Address: "nowhere"}, dest, testService())
	if !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("err = %v, want ErrInvalidLocation", err)
	}
}

func TestStartBookingOverwritesActive(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	first := mustStart(t, c)
	second := mustStart(t, c)

	if first.ID == second.ID {
		t.Fatalf("expected a fresh booking id")
	}
	if got := c.GetCurrentBooking().ID; got != second.ID {
		t.Fatalf("current booking = %s, want %s", got, second.ID)
	}
	// The superseded booking is not archived.
	if history := c.GetBookingHistory(context.Background()); len(history) != 0 {
		t.Fatalf("history length = %d, want 0", len(history))
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	store := newMemStore()
	gateway := successGateway()
	c := newTestCoordinator(store, gateway)

	var events []string
	unsubscribe := c.AddListener(func(event string, _ *models.Booking) {
		events = append(events, event)
	})
	defer unsubscribe()

	b := mustStart(t, c)
	priceAfterStart := b.EstimatedPrice
	completeSelections(t, c)

	confirmed, err := c.ConfirmBooking(context.Background())
	if err != nil {
		t.Fatalf("ConfirmBooking failed: %v", err)
	}

	if confirmed.Status != models.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", confirmed.Status)
	}
	cd := confirmed.ConfirmationDetails
	if cd == nil {
		t.Fatal("confirmationDetails missing on confirmed booking")
	}
	if !regexp.MustCompile(`^GQ[A-Z0-9]{8}$`).MatchString(cd.ConfirmationNumber) {
		t.Fatalf("confirmation number %q does not match GQ + 8 alphanumerics", cd.ConfirmationNumber)
	}
	if cd.PaymentID != "pi_test_123" {
		t.Fatalf("paymentId = %q, want pi_test_123", cd.PaymentID)
	}
	if cd.OfficerName != "Marcus Steel" || cd.OfficerPhone == "" {
		t.Fatalf("officer contact not synthesized: %+v", cd)
	}
	wantArrival := time.Duration(confirmed.EstimatedDuration+5) * time.Minute
	if arrivalIn := time.Until(cd.EstimatedArrival); arrivalIn > wantArrival || arrivalIn < wantArrival-time.Minute {
		t.Fatalf("estimated arrival %v from now, want about %v", arrivalIn, wantArrival)
	}

	// Comfort tier multiplied the start estimate by 1.5.
	if want := ApplyRideTierMultiplier(priceAfterStart, "Comfort"); confirmed.EstimatedPrice != want {
		t.Fatalf("estimatedPrice = %v, want %v", confirmed.EstimatedPrice, want)
	}
	if gateway.lastReq.Amount != confirmed.EstimatedPrice {
		t.Fatalf("gateway charged %v, want %v", gateway.lastReq.Amount, confirmed.EstimatedPrice)
	}
	if gateway.lastReq.BookingID != confirmed.ID {
		t.Fatalf("gateway booking id = %q, want %q", gateway.lastReq.BookingID, confirmed.ID)
	}

	// Confirmed bookings are archived to history.
	history := c.GetBookingHistory(context.Background())
	if len(history) != 1 || history[0].ID != confirmed.ID || history[0].Status != models.StatusConfirmed {
		t.Fatalf("history = %+v, want single confirmed entry", history)
	}

	wantEvents := []string{
		EventBookingStarted, EventRideSelected, EventOfficerSelected,
		EventPaymentMethodSet, EventPaymentProcessing, EventBookingConfirmed,
	}
	if len(events) != len(wantEvents) {
		t.Fatalf("events = %v, want %v", events, wantEvents)
	}
	for i := range wantEvents {
		if events[i] != wantEvents[i] {
			t.Fatalf("event[%d] = %s, want %s", i, events[i], wantEvents[i])
		}
	}
}

func TestConfirmRequiresAllSelections(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	mustStart(t, c)

	if _, err := c.ConfirmBooking(context.Background()); !errors.Is(err, ErrIncompleteBooking) {
		t.Fatalf("confirm after start: err = %v, want ErrIncompleteBooking", err)
	}

	if _, err := c.SelectRide(context.Background(), models.RideOption{Name: "Economy", Tier: "Economy"}); err != nil {
		t.Fatalf("SelectRide failed: %v", err)
	}
	if _, err := c.ConfirmBooking(context.Background()); !errors.Is(err, ErrIncompleteBooking) {
		t.Fatalf("confirm before officer selection: err = %v, want ErrIncompleteBooking", err)
	}
}

func TestConfirmBookingAlreadySettled(t *testing.T) {
	gateway := successGateway()
	c := newTestCoordinator(newMemStore(), gateway)
	mustStart(t, c)
	completeSelections(t, c)

	if _, err := c.ConfirmBooking(context.Background()); err != nil {
		t.Fatalf("ConfirmBooking failed: %v", err)
	}

	// A confirmed booking has no outgoing edge; a second confirm must not
	// charge the gateway again.
	if _, err := c.ConfirmBooking(context.Background()); !errors.Is(err, ErrBookingSettled) {
		t.Fatalf("second confirm err = %v, want ErrBookingSettled", err)
	}
	if gateway.calls != 1 {
		t.Fatalf("gateway charged %d times, want 1", gateway.calls)
	}
	if got := c.GetCurrentBooking().Status; got != models.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", got)
	}
}

func TestCancelAfterConfirmPreservesHistory(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	b := mustStart(t, c)
	completeSelections(t, c)
	if _, err := c.ConfirmBooking(context.Background()); err != nil {
		t.Fatalf("ConfirmBooking failed: %v", err)
	}

	cancelled, err := c.CancelBooking(context.Background(), "changed plans")
	if err != nil || cancelled {
		t.Fatalf("CancelBooking on a confirmed booking = (%v, %v), want (false, nil)", cancelled, err)
	}
	if got := c.GetCurrentBooking().Status; got != models.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed to remain", got)
	}

	// The archived entry stays as it was written at confirmation.
	history := c.GetBookingHistory(context.Background())
	if len(history) != 1 || history[0].ID != b.ID || history[0].Status != models.StatusConfirmed {
		t.Fatalf("history = %+v, want single confirmed entry for %s", history, b.ID)
	}
}

func TestConfirmRetryAfterPaymentFailure(t *testing.T) {
	gateway := &stubGateway{result: &models.PaymentResult{Success: false, Error: "card declined"}}
	c := newTestCoordinator(newMemStore(), gateway)
	mustStart(t, c)
	completeSelections(t, c)

	b, err := c.ConfirmBooking(context.Background())
	if err != nil {
		t.Fatalf("ConfirmBooking failed: %v", err)
	}
	if b.Status != models.StatusPaymentFailed {
		t.Fatalf("status = %s, want payment_failed", b.Status)
	}

	gateway.setResult(&models.PaymentResult{Success: true, PaymentID: "pi_retry_1"})
	retried, err := c.ConfirmBooking(context.Background())
	if err != nil {
		t.Fatalf("retry ConfirmBooking failed: %v", err)
	}
	if retried.Status != models.StatusConfirmed {
		t.Fatalf("retry status = %s, want confirmed", retried.Status)
	}
	if retried.ConfirmationDetails == nil || retried.ConfirmationDetails.PaymentID != "pi_retry_1" {
		t.Fatalf("confirmationDetails = %+v, want the retry payment id", retried.ConfirmationDetails)
	}
	if retried.PaymentError != "" {
		t.Fatalf("paymentError = %q, want cleared after a successful retry", retried.PaymentError)
	}
}

func TestOperationsWithoutActiveBooking(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	ctx := context.Background()

	if _, err := c.SelectRide(ctx, models.RideOption{Tier: "Economy"}); !errors.Is(err, ErrNoActiveBooking) {
		t.Fatalf("SelectRide err = %v, want ErrNoActiveBooking", err)
	}
	if _, err := c.SelectOfficer(ctx, testOfficer()); !errors.Is(err, ErrNoActiveBooking) {
		t.Fatalf("SelectOfficer err = %v, want ErrNoActiveBooking", err)
	}
	if _, err := c.SetPaymentMethod(ctx, models.PaymentMethod{ID: "pm_1"}); !errors.Is(err, ErrNoActiveBooking) {
		t.Fatalf("SetPaymentMethod err = %v, want ErrNoActiveBooking", err)
	}
	if _, err := c.ConfirmBooking(ctx); !errors.Is(err, ErrNoActiveBooking) {
		t.Fatalf("ConfirmBooking err = %v, want ErrNoActiveBooking", err)
	}

	// Cancel and clear tolerate the empty state.
	cancelled, err := c.CancelBooking(ctx, "changed plans")
	if err != nil || cancelled {
		t.Fatalf("CancelBooking = (%v, %v), want (false, nil)", cancelled, err)
	}
	if err := c.ClearCurrentBooking(ctx); err != nil {
		t.Fatalf("ClearCurrentBooking err = %v, want nil", err)
	}
}

func TestCancelBooking(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(store, successGateway())
	b := mustStart(t, c)

	cancelled, err := c.CancelBooking(context.Background(), "client request")
	if err != nil || !cancelled {
		t.Fatalf("CancelBooking = (%v, %v), want (true, nil)", cancelled, err)
	}
	if c.GetCurrentBooking() != nil {
		t.Fatal("current booking should be nil after cancellation")
	}
	if _, err := store.Get(context.Background(), currentBookingKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("persisted current booking should be deleted, got err = %v", err)
	}

	history := c.GetBookingHistory(context.Background())
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].ID != b.ID || history[0].Status != models.StatusCancelled {
		t.Fatalf("history entry = %+v, want cancelled %s", history[0], b.ID)
	}
	if history[0].CancellationReason != "client request" {
		t.Fatalf("cancellationReason = %q", history[0].CancellationReason)
	}
}

func TestPaymentDeclined(t *testing.T) {
	gateway := &stubGateway{result: &models.PaymentResult{Success: false, Error: "card declined"}}
	c := newTestCoordinator(newMemStore(), gateway)
	mustStart(t, c)
	completeSelections(t, c)

	b, err := c.ConfirmBooking(context.Background())
	if err != nil {
		t.Fatalf("ConfirmBooking returned err = %v; declines settle, not error", err)
	}
	if b.Status != models.StatusPaymentFailed {
		t.Fatalf("status = %s, want payment_failed", b.Status)
	}
	if b.PaymentError != "card declined" {
		t.Fatalf("paymentError = %q, want gateway message", b.PaymentError)
	}
	if b.ConfirmationDetails != nil {
		t.Fatal("confirmationDetails must be absent on failed payment")
	}
	// Failed payments stay current for retry and are not archived.
	if c.GetCurrentBooking() == nil {
		t.Fatal("booking should remain current after payment failure")
	}
	if history := c.GetBookingHistory(context.Background()); len(history) != 0 {
		t.Fatalf("history length = %d, want 0", len(history))
	}
}

func TestGatewayErrorSetsErrorStatus(t *testing.T) {
	gateway := &stubGateway{err: errors.New("connection reset")}
	c := newTestCoordinator(newMemStore(), gateway)
	mustStart(t, c)
	completeSelections(t, c)

	b, err := c.ConfirmBooking(context.Background())
	if err != nil {
		t.Fatalf("ConfirmBooking returned err = %v", err)
	}
	if b.Status != models.StatusError {
		t.Fatalf("status = %s, want error", b.Status)
	}
	if b.Error == "" {
		t.Fatal("error field should carry the failure message")
	}
}

func TestPaymentTimeout(t *testing.T) {
	c := newTestCoordinator(newMemStore(), &slowGateway{})
	c.PaymentTimeout = 20 * time.Millisecond
	mustStart(t, c)
	completeSelections(t, c)

	b, err := c.ConfirmBooking(context.Background())
	if err != nil {
		t.Fatalf("ConfirmBooking returned err = %v", err)
	}
	if b.Status != models.StatusPaymentFailed {
		t.Fatalf("status = %s, want payment_failed on timeout", b.Status)
	}
	if b.PaymentError != "payment timed out" {
		t.Fatalf("paymentError = %q", b.PaymentError)
	}
}

func TestPrimaryWriteFailureAbortsOperation(t *testing.T) {
	store := newMemStore()
	store.failSet = true
	c := newTestCoordinator(store, successGateway())

	pickup, dest := testRoute()
	_, err := c.StartBooking(context.Background(), pickup, dest, testService())
	var persistErr *PersistenceError
	if !errors.As(err, &persistErr) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	if c.GetCurrentBooking() != nil {
		t.Fatal("failed start must not leave a current booking")
	}

	// A failing transition leaves the prior state intact.
	store.failSet = false
	mustStart(t, c)
	store.failSet = true
	_, err = c.SelectRide(context.Background(), models.RideOption{Name: "Comfort", Tier: "Comfort"})
	if !errors.As(err, &persistErr) {
		t.Fatalf("SelectRide err = %v, want PersistenceError", err)
	}
	current := c.GetCurrentBooking()
	if current.Status != models.StatusServiceSelected || current.SelectedRide != nil {
		t.Fatalf("state mutated despite write failure: %+v", current)
	}
}

func TestRehydrationAfterRestart(t *testing.T) {
	store := newMemStore()
	c := newTestCoordinator(store, successGateway())
	mustStart(t, c)
	completeSelections(t, c)
	before := c.GetCurrentBooking()

	// Simulated restart: a fresh coordinator over the same storage.
	restarted := newTestCoordinator(store, successGateway())
	restored, err := restarted.LoadFromStorage(context.Background())
	if err != nil {
		t.Fatalf("LoadFromStorage failed: %v", err)
	}
	if restored == nil {
		t.Fatal("expected a restored booking")
	}

	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(restored)
	if string(beforeJSON) != string(afterJSON) {
		t.Fatalf("restored booking differs:\n%s\n%s", beforeJSON, afterJSON)
	}
}

func TestLoadFromStorageEmpty(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	restored, err := c.LoadFromStorage(context.Background())
	if err != nil || restored != nil {
		t.Fatalf("LoadFromStorage on empty store = (%v, %v), want (nil, nil)", restored, err)
	}
}

func TestHistoryCappedAtFifty(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	ctx := context.Background()

	var firstID string
	for i := 0; i < 51; i++ {
		b := mustStart(t, c)
		if i == 0 {
			firstID = b.ID
		}
		if _, err := c.CancelBooking(ctx, fmt.Sprintf("run %d", i)); err != nil {
			t.Fatalf("CancelBooking %d failed: %v", i, err)
		}
	}

	history := c.GetBookingHistory(ctx)
	if len(history) != 50 {
		t.Fatalf("history length = %d, want 50", len(history))
	}
	for _, h := range history {
		if h.ID == firstID {
			t.Fatal("oldest entry should have been evicted")
		}
	}
	if history[0].CancellationReason != "run 50" {
		t.Fatalf("history[0] = %+v, want the most recent archival first", history[0])
	}
}

func TestClearArchivesCurrentBooking(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	b := mustStart(t, c)

	if err := c.ClearCurrentBooking(context.Background()); err != nil {
		t.Fatalf("ClearCurrentBooking failed: %v", err)
	}
	if c.GetCurrentBooking() != nil {
		t.Fatal("current booking should be nil after clear")
	}
	history := c.GetBookingHistory(context.Background())
	if len(history) != 1 || history[0].ID != b.ID {
		t.Fatalf("history = %+v, want the cleared booking", history)
	}
}

func TestConfirmThenClearArchivesOnce(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	b := mustStart(t, c)
	completeSelections(t, c)
	if _, err := c.ConfirmBooking(context.Background()); err != nil {
		t.Fatalf("ConfirmBooking failed: %v", err)
	}
	if err := c.ClearCurrentBooking(context.Background()); err != nil {
		t.Fatalf("ClearCurrentBooking failed: %v", err)
	}

	history := c.GetBookingHistory(context.Background())
	count := 0
	for _, h := range history {
		if h.ID == b.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("booking archived %d times, want exactly once", count)
	}
	if history[0].Status != models.StatusConfirmed {
		t.Fatalf("archived status = %s, want confirmed", history[0].Status)
	}
}

func TestListenerUnsubscribe(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())

	var count int
	unsubscribe := c.AddListener(func(string, *models.Booking) { count++ })

	mustStart(t, c)
	if count != 1 {
		t.Fatalf("listener called %d times, want 1", count)
	}

	unsubscribe()
	mustStart(t, c)
	if count != 1 {
		t.Fatalf("listener called after unsubscribe (count = %d)", count)
	}
}

func TestListenersNotifiedInRegistrationOrder(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())

	var order []string
	for _, tag := range []string{"first", "second", "third"} {
		tag := tag
		c.AddListener(func(string, *models.Booking) { order = append(order, tag) })
	}

	mustStart(t, c)
	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestListenerReceivesSnapshot(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())

	var seen *models.Booking
	c.AddListener(func(_ string, b *models.Booking) { seen = b })

	mustStart(t, c)
	seen.Status = models.StatusCancelled // must not leak into coordinator state

	if got := c.GetCurrentBooking().Status; got != models.StatusServiceSelected {
		t.Fatalf("listener mutation leaked into coordinator state: %s", got)
	}
}

func TestAddSpecialRequest(t *testing.T) {
	c := newTestCoordinator(newMemStore(), successGateway())
	mustStart(t, c)

	if _, err := c.AddSpecialRequest(context.Background(), "female officer preferred"); err != nil {
		t.Fatalf("AddSpecialRequest failed: %v", err)
	}
	b, err := c.AddSpecialRequest(context.Background(), "meet at side entrance")
	if err != nil {
		t.Fatalf("AddSpecialRequest failed: %v", err)
	}
	if len(b.SpecialRequests) != 2 || b.SpecialRequests[0] != "female officer preferred" {
		t.Fatalf("specialRequests = %v", b.SpecialRequests)
	}
}
