package handlers

import (
	"errors"
	"net/http"
	"strings"

	"skyward/models"
	"skyward/services/amadeus"
	"skyward/services/booking"
	"skyward/utils"

	"github.com/gin-gonic/gin"
)

// FlightHandler exposes flight search and booking endpoints.
type FlightHandler struct {
	Service booking.BookingService
}

func NewFlightHandler(service booking.BookingService) *FlightHandler {
	return &FlightHandler{Service: service}
}

// SearchFlights handles GET /api/flights/search.
func (h *FlightHandler) SearchFlights(c *gin.Context) {
	var req models.FlightSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid search criteria", err.Error())
		return
	}
	if msg := validateSearchRequest(req); msg != "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid search criteria", msg)
		return
	}

	offers, err := h.Service.SearchFlights(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

// BookFlight handles POST /api/flights/book.
func (h *FlightHandler) BookFlight(c *gin.Context) {
	var req models.BookFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	confirmation, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// GetBooking handles GET /api/flights/:bookingId.
func (h *FlightHandler) GetBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")

	confirmation, err := h.Service.GetBookingDetails(c.Request.Context(), bookingID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if confirmation == nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// CancelBooking handles DELETE /api/flights/:bookingId/cancel.
func (h *FlightHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")

	cancelled, err := h.Service.CancelBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if !cancelled {
		utils.JSONError(c, http.StatusBadRequest, "could not cancel the booking",
			"the provider declined the cancellation")
		return
	}
	c.Status(http.StatusNoContent)
}

// validateSearchRequest checks criteria bounds before the provider is called.
func validateSearchRequest(req models.FlightSearchRequest) string {
	if strings.TrimSpace(req.OriginLocationCode) == "" {
		return "originLocationCode is required"
	}
	if strings.TrimSpace(req.DestinationLocationCode) == "" {
		return "destinationLocationCode is required"
	}
	if strings.TrimSpace(req.DepartureDate) == "" {
		return "departureDate is required"
	}
	if req.Adults < 1 {
		return "at least one adult is required"
	}
	return ""
}

// respondServiceError maps domain errors onto HTTP status codes.
func (h *FlightHandler) respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *booking.ValidationError
		notFoundErr   *booking.NotFoundError
		cancelledErr  *booking.AlreadyCancelledError
		referenceErr  *booking.MissingReferenceError
		offerErr      *amadeus.MalformedOfferError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", validationErr.Message)
	case errors.As(err, &offerErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid flight offer", offerErr.Message)
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "booking not found", notFoundErr.Error())
	case errors.As(err, &cancelledErr):
		utils.JSONError(c, http.StatusBadRequest, "booking already cancelled", cancelledErr.Error())
	case errors.As(err, &referenceErr):
		utils.JSONError(c, http.StatusBadRequest, "booking has no provider reference", referenceErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", err.Error())
	}
}
