package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"armora/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentGateway settles a booking charge. A declined payment is reported in
// the result; an error means the charge outcome is unknown (transport
// failure, timeout).
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error)
}

// StripeGateway charges via Stripe PaymentIntents. stripe.Key must be set
// before use (done at startup from config).
type StripeGateway struct {
	Logger *zap.Logger
}

// NewStripeGateway returns a PaymentGateway backed by Stripe.
func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{Logger: logger}
}

func (g *StripeGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount: %.2f", req.Amount)
	}

	currency := req.Currency
	if currency == "" {
		currency = string(stripe.CurrencyGBP)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(req.PaymentMethod.ID),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(uuid.New().String())
	params.AddMetadata("bookingId", req.BookingID)

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			// Declined or rejected by Stripe: a settled, retryable outcome.
			g.Logger.Warn("Stripe payment declined",
				zap.String("bookingId", req.BookingID),
				zap.String("code", string(stripeErr.Code)))
			return &models.PaymentResult{Success: false, Error: stripeErr.Msg}, nil
		}
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &models.PaymentResult{
			Success: false,
			Error:   fmt.Sprintf("payment intent not settled (status %s)", pi.Status),
		}, nil
	}

	g.Logger.Info("Stripe payment successful",
		zap.String("bookingId", req.BookingID),
		zap.String("paymentIntent", pi.ID))
	return &models.PaymentResult{Success: true, PaymentID: pi.ID}, nil
}

// StaticGateway simulates settlement without an external processor, for
// development environments with no Stripe key configured.
type StaticGateway struct {
	// Decline makes every charge settle as a failure.
	Decline bool
}

func (g *StaticGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount: %.2f", req.Amount)
	}
	if g.Decline {
		return &models.PaymentResult{Success: false, Error: "card declined"}, nil
	}
	return &models.PaymentResult{Success: true, PaymentID: "pi_" + uuid.New().String()}, nil
}
