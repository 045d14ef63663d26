package models

import "time"

// FlightOffer is the normalized projection of a provider flight offer.
// RawOfferJSON carries the provider payload verbatim so a later booking
// request can hand it back unchanged.
type FlightOffer struct {
	ID                   string    `json:"id"`
	CarrierCode          string    `json:"carrierCode"`
	FlightNumber         string    `json:"flightNumber"`
	DepartureAirportCode string    `json:"departureAirportCode"`
	ArrivalAirportCode   string    `json:"arrivalAirportCode"`
	DepartureTime        time.Time `json:"departureTime"`
	ArrivalTime          time.Time `json:"arrivalTime"`
	Price                float64   `json:"price"`
	Currency             string    `json:"currency"`
	AvailableSeats       int       `json:"availableSeats"`
	RawOfferJSON         string    `json:"rawOfferJson"`
}

// FlightSearchRequest holds the search criteria forwarded to the provider.
// Dates use the provider's yyyy-MM-dd format.
type FlightSearchRequest struct {
	OriginLocationCode      string `form:"originLocationCode" json:"originLocationCode"`
	DestinationLocationCode string `form:"destinationLocationCode" json:"destinationLocationCode"`
	DepartureDate           string `form:"departureDate" json:"departureDate"`
	ReturnDate              string `form:"returnDate" json:"returnDate"`
	Adults                  int    `form:"adults" json:"adults"`
	Children                int    `form:"children" json:"children"`
	Infants                 int    `form:"infants" json:"infants"`
	TravelClass             string `form:"travelClass" json:"travelClass"`
}

// PassengerInput is the inbound passenger DTO carried by a booking request.
type PassengerInput struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
}

// BookFlightRequest is the inbound booking request. FlightOfferJSON is the
// raw offer previously returned by a search.
type BookFlightRequest struct {
	UserID          string           `json:"userId"`
	Passengers      []PassengerInput `json:"passengers"`
	FlightOfferJSON string           `json:"flightOfferJson"`
}
