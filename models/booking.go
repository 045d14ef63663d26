package models

import (
	"errors"
	"time"
)

// Booking status values as reported by the provider and stored locally.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusFailed    = "FAILED"
)

// ErrAlreadyCancelled is returned when cancelling a booking twice.
var ErrAlreadyCancelled = errors.New("booking is already cancelled")

// Passenger is an immutable traveller record attached to a booking.
// Contact fields are stored as given; no format validation happens here.
type Passenger struct {
	FirstName   string    `bson:"first_name" json:"firstName"`
	LastName    string    `bson:"last_name" json:"lastName"`
	DateOfBirth time.Time `bson:"date_of_birth" json:"dateOfBirth"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phone_number" json:"phoneNumber"`
}

// Booking is the aggregate persisted to both booking stores. The ID is
// assigned once at creation and never changes.
type Booking struct {
	ID                string      `bson:"id" json:"id"`
	UserID            string      `bson:"user_id" json:"userId"`
	FlightID          string      `bson:"flight_id" json:"flightId"`
	Passengers        []Passenger `bson:"passengers" json:"passengers"`
	TotalPrice        float64     `bson:"total_price" json:"totalPrice"`
	BookingDate       time.Time   `bson:"booking_date" json:"bookingDate"`
	Status            string      `bson:"status" json:"status"`
	ProviderReference string      `bson:"provider_reference" json:"providerReference"`
}

// Cancel moves the booking to CANCELLED. The transition is one-way: a
// cancelled booking cannot be cancelled again or revived.
func (b *Booking) Cancel() error {
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.Status = StatusCancelled
	return nil
}

// BookingConfirmation is the caller-facing projection of a booking.
type BookingConfirmation struct {
	BookingID         string    `json:"bookingId"`
	ProviderReference string    `json:"providerReference"`
	Status            string    `json:"status"`
	TotalPrice        float64   `json:"totalPrice"`
	BookingDate       time.Time `json:"bookingDate"`
}
