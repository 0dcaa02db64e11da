package models

import "time"

// BookingStatus is the lifecycle stage of a booking.
type BookingStatus string

const (
	StatusServiceSelected   BookingStatus = "service_selected"
	StatusRideSelected      BookingStatus = "ride_selected"
	StatusOfficerSelected   BookingStatus = "officer_selected"
	StatusPaymentReady      BookingStatus = "payment_ready"
	StatusProcessingPayment BookingStatus = "processing_payment"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusPaymentFailed     BookingStatus = "payment_failed"
	StatusCancelled         BookingStatus = "cancelled"
	StatusError             BookingStatus = "error"
)

// Terminal reports whether the status ends the booking lifecycle.
func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusConfirmed, StatusPaymentFailed, StatusCancelled, StatusError:
		return true
	}
	return false
}

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Location pairs coordinates with a display address.
type Location struct {
	Coordinates *Coordinates `bson:"coordinates" json:"coordinates"`
	Address     string       `bson:"address" json:"address"`
}

// ConfirmationDetails is populated only when payment succeeds.
type ConfirmationDetails struct {
	ConfirmationNumber string    `bson:"confirmationNumber" json:"confirmationNumber"`
	PaymentID          string    `bson:"paymentId" json:"paymentId"`
	EstimatedArrival   time.Time `bson:"estimatedArrival" json:"estimatedArrival"`
	OfficerName        string    `bson:"officerName" json:"officerName"`
	OfficerPhone       string    `bson:"officerPhone" json:"officerPhone"`
	VehicleDescription string    `bson:"vehicleDescription" json:"vehicleDescription"`
}

// Booking is the single stateful record describing one ride request from
// creation through completion or cancellation.
type Booking struct {
	ID                  string               `bson:"id" json:"id"`
	Status              BookingStatus        `bson:"status" json:"status"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
	PickupLocation      Location             `bson:"pickupLocation" json:"pickupLocation"`
	DestinationLocation Location             `bson:"destinationLocation" json:"destinationLocation"`
	SelectedService     ServiceTier          `bson:"selectedService" json:"selectedService"`
	SelectedRide        *RideOption          `bson:"selectedRide,omitempty" json:"selectedRide,omitempty"`
	SelectedOfficer     *Officer             `bson:"selectedOfficer,omitempty" json:"selectedOfficer,omitempty"`
	PaymentMethod       *PaymentMethod       `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	EstimatedPrice      float64              `bson:"estimatedPrice" json:"estimatedPrice"`
	EstimatedDuration   int                  `bson:"estimatedDuration" json:"estimatedDuration"`
	SpecialRequests     []string             `bson:"specialRequests" json:"specialRequests"`
	ConfirmationDetails *ConfirmationDetails `bson:"confirmationDetails,omitempty" json:"confirmationDetails,omitempty"`
	CancellationReason  string               `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	PaymentError        string               `bson:"paymentError,omitempty" json:"paymentError,omitempty"`
	Error               string               `bson:"error,omitempty" json:"error,omitempty"`
}

// Clone returns a deep copy so callers can never mutate coordinator state.
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	cp := *b
	if b.PickupLocation.Coordinates != nil {
		c := *b.PickupLocation.Coordinates
		cp.PickupLocation.Coordinates = &c
	}
	if b.DestinationLocation.Coordinates != nil {
		c := *b.DestinationLocation.Coordinates
		cp.DestinationLocation.Coordinates = &c
	}
	if b.SelectedRide != nil {
		r := *b.SelectedRide
		cp.SelectedRide = &r
	}
	if b.SelectedOfficer != nil {
		o := *b.SelectedOfficer
		if b.SelectedOfficer.Location != nil {
			loc := *b.SelectedOfficer.Location
			o.Location = &loc
		}
		cp.SelectedOfficer = &o
	}
	if b.PaymentMethod != nil {
		pm := *b.PaymentMethod
		cp.PaymentMethod = &pm
	}
	if b.ConfirmationDetails != nil {
		cd := *b.ConfirmationDetails
		cp.ConfirmationDetails = &cd
	}
	if b.SpecialRequests != nil {
		cp.SpecialRequests = append([]string(nil), b.SpecialRequests...)
	}
	return &cp
}
