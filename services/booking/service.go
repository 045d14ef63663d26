package booking

import (
	"context"
	"strings"

	bookingRepo "skyward/database/repository/booking"
	"skyward/models"
	"skyward/services/amadeus"

	"go.uber.org/zap"
)

// BookingService coordinates provider interaction and the ordered dual-store
// persistence of bookings. The primary store is authoritative: its failures
// fail the operation. The mirror store is advisory: its failures are logged
// and swallowed.
type BookingService interface {
	SearchFlights(ctx context.Context, req models.FlightSearchRequest) ([]models.FlightOffer, error)
	CreateBooking(ctx context.Context, req models.BookFlightRequest) (*models.BookingConfirmation, error)
	GetBookingDetails(ctx context.Context, bookingID string) (*models.BookingConfirmation, error)
	CancelBooking(ctx context.Context, bookingID string) (bool, error)
}

// OfferCache caches search results keyed by criteria. A nil cache and a
// failing cache behave the same: every lookup is a miss.
type OfferCache interface {
	Get(ctx context.Context, req models.FlightSearchRequest) ([]models.FlightOffer, error)
	Set(ctx context.Context, req models.FlightSearchRequest, offers []models.FlightOffer) error
}

// DefaultBookingService is the default implementation.
type DefaultBookingService struct {
	Primary bookingRepo.BookingRepository
	Mirror  bookingRepo.BookingMirrorRepository
	Amadeus amadeus.AmadeusService
	Offers  OfferCache
	Logger  *zap.Logger
}

// SearchFlights serves offers from the cache when possible and falls back to
// the provider. Cache failures never fail a search.
func (s *DefaultBookingService) SearchFlights(ctx context.Context, req models.FlightSearchRequest) ([]models.FlightOffer, error) {
	if s.Offers != nil {
		cached, err := s.Offers.Get(ctx, req)
		if err != nil {
			s.Logger.Warn("Offer cache lookup failed, falling through to provider", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	offers, err := s.Amadeus.SearchFlights(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.Offers != nil {
		if err := s.Offers.Set(ctx, req, offers); err != nil {
			s.Logger.Warn("Offer cache fill failed", zap.Error(err))
		}
	}
	return offers, nil
}

// CreateBooking validates the request, obtains a (simulated) provider
// confirmation, and persists the booking: primary store first, then the
// mirror. A primary failure aborts the operation before the mirror is
// touched; a mirror failure is logged and the caller still gets the
// confirmation.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookFlightRequest) (*models.BookingConfirmation, error) {
	s.Logger.Info("Attempting to create a new flight booking.")

	if strings.TrimSpace(req.FlightOfferJSON) == "" {
		s.Logger.Warn("Flight offer JSON is missing in booking request.")
		return nil, &ValidationError{Message: "flight offer JSON is required"}
	}
	if len(req.Passengers) == 0 {
		s.Logger.Warn("No passengers provided in booking request.")
		return nil, &ValidationError{Message: "at least one passenger is required for booking"}
	}
	if strings.TrimSpace(req.UserID) == "" {
		s.Logger.Warn("User ID is missing in booking request.")
		return nil, &ValidationError{Message: "user ID is required for booking"}
	}

	essentials, err := amadeus.ParseOfferEssentials(req.FlightOfferJSON)
	if err != nil {
		return nil, err
	}

	passengers := make([]models.Passenger, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		passengers = append(passengers, models.Passenger{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			DateOfBirth: p.DateOfBirth,
			Email:       p.Email,
			PhoneNumber: p.PhoneNumber,
		})
	}

	confirmation, err := s.Amadeus.ConfirmBooking(req.FlightOfferJSON, passengers)
	if err != nil {
		return nil, err
	}

	newBooking := &models.Booking{
		ID:                confirmation.BookingID,
		UserID:            req.UserID,
		FlightID:          essentials.ID,
		Passengers:        passengers,
		TotalPrice:        confirmation.TotalPrice,
		BookingDate:       confirmation.BookingDate,
		Status:            confirmation.Status,
		ProviderReference: confirmation.ProviderReference,
	}

	if err := s.Primary.Add(ctx, newBooking); err != nil {
		s.Logger.Error("Critical failure: booking did not persist in the primary store.",
			zap.String("booking_id", newBooking.ID), zap.Error(err))
		return nil, &PrimaryStoreError{Op: "add", Err: err}
	}
	s.Logger.Info("Booking record saved to primary store.", zap.String("booking_id", newBooking.ID))

	if err := s.Mirror.Add(ctx, newBooking); err != nil {
		s.Logger.Warn("Failed to save booking record to mirror store after primary save.",
			zap.String("booking_id", newBooking.ID), zap.Error(err))
	} else {
		s.Logger.Info("Booking record saved to mirror store.", zap.String("booking_id", newBooking.ID))
	}

	return confirmation, nil
}

// GetBookingDetails reads exclusively from the primary store. An unknown id
// yields (nil, nil); the mirror is never consulted for reads.
func (s *DefaultBookingService) GetBookingDetails(ctx context.Context, bookingID string) (*models.BookingConfirmation, error) {
	s.Logger.Info("Retrieving booking details.", zap.String("booking_id", bookingID))

	booking, err := s.Primary.GetByID(ctx, bookingID)
	if err != nil {
		return nil, &PrimaryStoreError{Op: "get", Err: err}
	}
	if booking == nil {
		s.Logger.Warn("Booking not found in primary store.", zap.String("booking_id", bookingID))
		return nil, nil
	}

	return &models.BookingConfirmation{
		BookingID:         booking.ID,
		ProviderReference: booking.ProviderReference,
		Status:            booking.Status,
		TotalPrice:        booking.TotalPrice,
		BookingDate:       booking.BookingDate,
	}, nil
}

// CancelBooking cancels a booking with the provider and then updates both
// stores. The local record is only mutated after the provider confirms; a
// store update failure after that point is logged but does not change the
// outcome reported to the caller.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	s.Logger.Info("Attempting to cancel booking.", zap.String("booking_id", bookingID))

	booking, err := s.Primary.GetByID(ctx, bookingID)
	if err != nil {
		return false, &PrimaryStoreError{Op: "get", Err: err}
	}
	if booking == nil {
		s.Logger.Warn("Attempted to cancel non-existent booking.", zap.String("booking_id", bookingID))
		return false, &NotFoundError{BookingID: bookingID}
	}
	if booking.Status == models.StatusCancelled {
		s.Logger.Info("Booking is already cancelled, no further action needed.",
			zap.String("booking_id", bookingID))
		return false, &AlreadyCancelledError{BookingID: bookingID}
	}
	if strings.TrimSpace(booking.ProviderReference) == "" {
		s.Logger.Error("Booking cannot be cancelled, no provider reference found.",
			zap.String("booking_id", bookingID))
		return false, &MissingReferenceError{BookingID: bookingID}
	}

	cancelled, err := s.Amadeus.CancelBooking(ctx, booking.ProviderReference)
	if err != nil {
		s.Logger.Error("Provider cancellation failed, aborting local status update.",
			zap.String("booking_id", bookingID), zap.Error(err))
		return false, err
	}
	if !cancelled {
		s.Logger.Warn("Provider declined the cancellation.",
			zap.String("booking_id", bookingID), zap.String("reference", booking.ProviderReference))
		return false, nil
	}

	if err := booking.Cancel(); err != nil {
		return false, &AlreadyCancelledError{BookingID: bookingID}
	}

	if err := s.Primary.Update(ctx, booking); err != nil {
		s.Logger.Error("Failed to update booking status in primary store after provider cancellation. Manual intervention may be required.",
			zap.String("booking_id", bookingID), zap.Error(err))
	}
	if err := s.Mirror.Update(ctx, booking); err != nil {
		s.Logger.Warn("Failed to update booking status in mirror store after provider cancellation.",
			zap.String("booking_id", bookingID), zap.Error(err))
	}

	return true, nil
}

var _ BookingService = (*DefaultBookingService)(nil)
