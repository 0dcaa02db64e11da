package routes

import (
	"armora/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	booking := r.Group("/api/booking")
	{
		booking.POST("/start", bh.StartBooking)
		booking.GET("/current", bh.GetCurrentBooking)
		booking.DELETE("/current", bh.ClearCurrentBooking)
		booking.POST("/ride", bh.SelectRide)
		booking.POST("/officer", bh.SelectOfficer)
		booking.POST("/payment-method", bh.SetPaymentMethod)
		booking.POST("/special-request", bh.AddSpecialRequest)
		booking.POST("/confirm", bh.ConfirmBooking)
		booking.POST("/cancel", bh.CancelBooking)
		booking.GET("/history", bh.GetBookingHistory)
		booking.GET("/availability", bh.CheckAvailability)
		booking.POST("/quote", bh.GetQuote)
		booking.GET("/officers/nearby", bh.GetNearbyOfficers)
		booking.GET("/services", bh.GetAvailableServices)
	}
}
