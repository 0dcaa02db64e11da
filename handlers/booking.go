package handlers

import (
	"errors"
	"net/http"

	"armora/models"
	"armora/services/booking"
	"armora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking coordinator over HTTP.
type BookingHandler struct {
	Coordinator *booking.Coordinator
	Matcher     booking.OfficerMatcher
	Logger      *zap.Logger
}

// NewBookingHandler returns a handler bound to the given coordinator.
func NewBookingHandler(coordinator *booking.Coordinator, matcher booking.OfficerMatcher, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Coordinator: coordinator, Matcher: matcher, Logger: logger}
}

// respondError maps coordinator errors onto HTTP statuses.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var flowErr *booking.FlowError
	var persistErr *booking.PersistenceError
	switch {
	case errors.Is(err, booking.ErrNoActiveBooking):
		utils.JSONError(c, http.StatusNotFound, "no active booking", err.Error())
	case errors.Is(err, booking.ErrIncompleteBooking):
		utils.JSONError(c, http.StatusConflict, "booking incomplete", err.Error())
	case errors.Is(err, booking.ErrBookingSettled):
		utils.JSONError(c, http.StatusConflict, "booking already settled", err.Error())
	case errors.As(err, &flowErr):
		utils.JSONError(c, http.StatusBadRequest, flowErr.Code, flowErr.Message)
	case errors.As(err, &persistErr):
		h.Logger.Error("booking persistence failure", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "persistence failure", "the booking could not be saved")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
	}
}

// StartBooking begins a new booking from pickup, destination and service tier.
func (h *BookingHandler) StartBooking(c *gin.Context) {
	var input struct {
		PickupLocation      models.Location    `json:"pickupLocation" binding:"required"`
		DestinationLocation models.Location    `json:"destinationLocation" binding:"required"`
		SelectedService     models.ServiceTier `json:"selectedService" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Coordinator.StartBooking(c.Request.Context(), input.PickupLocation, input.DestinationLocation, input.SelectedService)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// GetCurrentBooking returns the active booking, if any.
func (h *BookingHandler) GetCurrentBooking(c *gin.Context) {
	b := h.Coordinator.GetCurrentBooking()
	if b == nil {
		utils.JSONError(c, http.StatusNotFound, "no active booking", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// SelectRide records the chosen ride class.
func (h *BookingHandler) SelectRide(c *gin.Context) {
	var input struct {
		Ride models.RideOption `json:"ride" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Coordinator.SelectRide(c.Request.Context(), input.Ride)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// SelectOfficer records the chosen close-protection officer.
func (h *BookingHandler) SelectOfficer(c *gin.Context) {
	var input struct {
		Officer models.Officer `json:"officer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Coordinator.SelectOfficer(c.Request.Context(), input.Officer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// SetPaymentMethod records the payment instrument for confirmation.
func (h *BookingHandler) SetPaymentMethod(c *gin.Context) {
	var input struct {
		PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Coordinator.SetPaymentMethod(c.Request.Context(), input.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// AddSpecialRequest appends a rider instruction to the active booking.
func (h *BookingHandler) AddSpecialRequest(c *gin.Context) {
	var input struct {
		Request string `json:"request" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Coordinator.AddSpecialRequest(c.Request.Context(), input.Request)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ConfirmBooking settles payment for the active booking. A declined payment
// is a 200 with status payment_failed; the client routes the retry.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	b, err := h.Coordinator.ConfirmBooking(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CancelBooking cancels the active booking with an optional reason.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// Body is optional; ignore bind failures on an empty body.
	_ = c.ShouldBindJSON(&input)

	cancelled, err := h.Coordinator.CancelBooking(c.Request.Context(), input.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

// ClearCurrentBooking archives and clears the active booking.
func (h *BookingHandler) ClearCurrentBooking(c *gin.Context) {
	if err := h.Coordinator.ClearCurrentBooking(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetBookingHistory lists archived bookings, most recent first.
func (h *BookingHandler) GetBookingHistory(c *gin.Context) {
	history := h.Coordinator.GetBookingHistory(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// CheckAvailability probes service availability near a point.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var query struct {
		Latitude    float64 `form:"latitude" binding:"required"`
		Longitude   float64 `form:"longitude" binding:"required"`
		ServiceType string  `form:"serviceType"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	location := models.Location{Coordinates: &models.Coordinates{Latitude: query.Latitude, Longitude: query.Longitude}}
	report, err := h.Coordinator.CheckServiceAvailability(c.Request.Context(), location, query.ServiceType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetQuote returns an itemized price estimate without mutating any state.
func (h *BookingHandler) GetQuote(c *gin.Context) {
	var input struct {
		PickupLocation      models.Location    `json:"pickupLocation" binding:"required"`
		DestinationLocation models.Location    `json:"destinationLocation" binding:"required"`
		SelectedService     models.ServiceTier `json:"selectedService" binding:"required"`
		Tier                string             `json:"tier"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	quote := booking.BuildQuote(input.SelectedService, input.Tier, input.PickupLocation, input.DestinationLocation)
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// GetNearbyOfficers returns proximity-ranked officers for a pickup point.
func (h *BookingHandler) GetNearbyOfficers(c *gin.Context) {
	var query struct {
		Latitude  float64 `form:"latitude" binding:"required"`
		Longitude float64 `form:"longitude" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	pickup := models.Location{Coordinates: &models.Coordinates{Latitude: query.Latitude, Longitude: query.Longitude}}
	officers, err := h.Matcher.MatchNearbyOfficers(c.Request.Context(), pickup)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "officer matching failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"officers": officers})
}

// GetAvailableServices returns the service tier catalogue.
func (h *BookingHandler) GetAvailableServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": models.DefaultServiceTiers()})
}
