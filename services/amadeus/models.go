package amadeus

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// flightOffersResponse keeps each offer as raw JSON so the payload can be
// handed back verbatim at booking time.
type flightOffersResponse struct {
	Data []json.RawMessage `json:"data"`
}

type flightOffer struct {
	ID                    string      `json:"id"`
	NumberOfBookableSeats int         `json:"numberOfBookableSeats"`
	Itineraries           []itinerary `json:"itineraries"`
	Price                 *offerPrice `json:"price"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	Departure   airportInfo `json:"departure"`
	Arrival     airportInfo `json:"arrival"`
	CarrierCode string      `json:"carrierCode"`
	Number      string      `json:"number"`
}

type airportInfo struct {
	IataCode string    `json:"iataCode"`
	Terminal string    `json:"terminal"`
	At       time.Time `json:"at"`
}

type offerPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

// firstSegment returns the opening segment of the first itinerary, or nil.
func (o *flightOffer) firstSegment() *segment {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return nil
	}
	return &o.Itineraries[0].Segments[0]
}

// OfferEssentials is the minimal structural parse of a raw offer payload:
// the two fields booking needs, everything else ignored.
type OfferEssentials struct {
	ID         string
	GrandTotal float64
}

// ParseOfferEssentials extracts the offer id and grand total from a raw
// offer payload. A missing or non-numeric field yields MalformedOfferError.
func ParseOfferEssentials(rawOfferJSON string) (*OfferEssentials, error) {
	var shape struct {
		ID    string `json:"id"`
		Price struct {
			GrandTotal string `json:"grandTotal"`
		} `json:"price"`
	}
	if err := json.Unmarshal([]byte(rawOfferJSON), &shape); err != nil {
		return nil, &MalformedOfferError{Message: "flight offer payload is not valid JSON"}
	}
	if strings.TrimSpace(shape.ID) == "" {
		return nil, &MalformedOfferError{Message: "flight offer payload has no id"}
	}
	if strings.TrimSpace(shape.Price.GrandTotal) == "" {
		return nil, &MalformedOfferError{Message: "flight offer payload has no price.grandTotal"}
	}
	total, err := strconv.ParseFloat(shape.Price.GrandTotal, 64)
	if err != nil {
		return nil, &MalformedOfferError{Message: "flight offer price.grandTotal is not numeric"}
	}
	return &OfferEssentials{ID: shape.ID, GrandTotal: total}, nil
}
