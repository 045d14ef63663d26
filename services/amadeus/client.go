package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skyward/config"
	"skyward/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AmadeusService is the provider-facing contract consumed by the booking
// service.
type AmadeusService interface {
	SearchFlights(ctx context.Context, req models.FlightSearchRequest) ([]models.FlightOffer, error)
	ConfirmBooking(rawOfferJSON string, passengers []models.Passenger) (*models.BookingConfirmation, error)
	CancelBooking(ctx context.Context, reference string) (bool, error)
}

// Client talks to the Amadeus API. A single instance is shared by all
// inbound operations; the only mutable state is the token cache.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *zap.Logger
	tokens       tokenCache
}

// NewClient builds a provider client from the application configuration.
func NewClient(logger *zap.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(config.AppConfig.AmadeusBaseURL, "/"),
		clientID:     config.AppConfig.AmadeusClientID,
		clientSecret: config.AppConfig.AmadeusClientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

// SearchFlights queries the provider flight-offers endpoint and projects
// each usable offer into a normalized summary. Offers without a first
// segment or a price block are skipped.
func (c *Client) SearchFlights(ctx context.Context, req models.FlightSearchRequest) ([]models.FlightOffer, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("originLocationCode", req.OriginLocationCode)
	query.Set("destinationLocationCode", req.DestinationLocationCode)
	query.Set("departureDate", req.DepartureDate)
	query.Set("adults", strconv.Itoa(req.Adults))
	if req.ReturnDate != "" {
		query.Set("returnDate", req.ReturnDate)
	}
	if req.Children > 0 {
		query.Set("children", strconv.Itoa(req.Children))
	}
	if req.Infants > 0 {
		query.Set("infants", strconv.Itoa(req.Infants))
	}
	if strings.TrimSpace(req.TravelClass) != "" {
		query.Set("travelClass", strings.ToUpper(req.TravelClass))
	}

	searchURL := c.baseURL + "/v2/shopping/flight-offers?" + query.Encode()
	c.logger.Info("Sending Amadeus flight search request", zap.String("url", searchURL))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, &ProviderError{Op: "search", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Op: "search", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Op: "search", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Amadeus API returned an error",
			zap.Int("status", resp.StatusCode), zap.String("body", string(body)))
		return nil, &ProviderError{Op: "search", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var offersResp flightOffersResponse
	if err := json.Unmarshal(body, &offersResp); err != nil {
		return nil, &ProviderError{Op: "search", Err: fmt.Errorf("decoding search response: %w", err)}
	}

	offers := make([]models.FlightOffer, 0, len(offersResp.Data))
	for _, raw := range offersResp.Data {
		var offer flightOffer
		if err := json.Unmarshal(raw, &offer); err != nil {
			continue
		}
		first := offer.firstSegment()
		if first == nil || offer.Price == nil {
			continue
		}

		price, _ := strconv.ParseFloat(offer.Price.GrandTotal, 64)
		offers = append(offers, models.FlightOffer{
			ID:                   offer.ID,
			CarrierCode:          first.CarrierCode,
			FlightNumber:         first.Number,
			DepartureAirportCode: first.Departure.IataCode,
			ArrivalAirportCode:   first.Arrival.IataCode,
			DepartureTime:        first.Departure.At,
			ArrivalTime:          first.Arrival.At,
			Price:                price,
			Currency:             offer.Price.Currency,
			AvailableSeats:       offer.NumberOfBookableSeats,
			RawOfferJSON:         string(raw),
		})
	}
	return offers, nil
}

// ConfirmBooking simulates a provider booking instead of calling the live
// pricing/booking endpoints. The system runs without provider booking
// credentials while still exercising the full persistence flow, so the
// confirmation is minted locally from the offer payload: a fresh booking id,
// a synthetic 6-character PNR and the offer's grand total.
func (c *Client) ConfirmBooking(rawOfferJSON string, passengers []models.Passenger) (*models.BookingConfirmation, error) {
	c.logger.Info("Bypassing Amadeus booking API; simulating confirmation.")

	essentials, err := ParseOfferEssentials(rawOfferJSON)
	if err != nil {
		return nil, err
	}

	reference := strings.ToUpper(uuid.NewString()[:6])
	c.logger.Info("Successfully simulated Amadeus booking.", zap.String("reference", reference))

	return &models.BookingConfirmation{
		BookingID:         uuid.NewString(),
		ProviderReference: reference,
		Status:            models.StatusConfirmed,
		TotalPrice:        essentials.GrandTotal,
		BookingDate:       time.Now().UTC(),
	}, nil
}

// CancelBooking issues the provider cancellation call for a PNR. Success is
// judged purely by the HTTP status; a single attempt is made.
func (c *Client) CancelBooking(ctx context.Context, reference string) (bool, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return false, err
	}

	cancelURL := c.baseURL + "/v1/booking/flight-orders/" + url.PathEscape(reference)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, cancelURL, nil)
	if err != nil {
		return false, &ProviderError{Op: "cancel", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, &ProviderError{Op: "cancel", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode <= 299, nil
}

var _ AmadeusService = (*Client)(nil)
