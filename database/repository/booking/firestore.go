package bookingRepo

import (
	"context"
	"fmt"
	"math"
	"time"

	"skyward/database"
	"skyward/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const bookingCollection = "bookings"

// FirestoreBookingRepo implements BookingRepository on Firestore.
type FirestoreBookingRepo struct {
	client *firestore.Client
}

// NewFirestoreBookingRepo creates the primary booking repository.
func NewFirestoreBookingRepo() BookingRepository {
	return &FirestoreBookingRepo{client: database.FirestoreClient}
}

// Add writes a new booking document keyed by the booking id.
func (r *FirestoreBookingRepo) Add(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := r.client.Collection(bookingCollection).Doc(booking.ID)
	if _, err := doc.Set(ctx, encodeBooking(booking)); err != nil {
		return fmt.Errorf("error adding booking %s to Firestore: %w", booking.ID, err)
	}
	return nil
}

// GetByID retrieves a booking by id. A missing document is (nil, nil).
func (r *FirestoreBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.client.Collection(bookingCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting booking %s from Firestore: %w", id, err)
	}
	return decodeBooking(snap.Ref.ID, snap.Data()), nil
}

// Update rewrites the mutable fields of an existing booking document.
// Writing the same booking twice leaves the document unchanged.
func (r *FirestoreBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := r.client.Collection(bookingCollection).Doc(booking.ID)
	_, err := doc.Update(ctx, []firestore.Update{
		{Path: "status", Value: booking.Status},
		{Path: "provider_reference", Value: booking.ProviderReference},
		{Path: "total_price_cents", Value: priceToCents(booking.TotalPrice)},
	})
	if err != nil {
		return fmt.Errorf("error updating booking %s in Firestore: %w", booking.ID, err)
	}
	return nil
}

// Delete removes a booking document.
func (r *FirestoreBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.client.Collection(bookingCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("error deleting booking %s from Firestore: %w", id, err)
	}
	return nil
}

// priceToCents scales a monetary amount to integer cents, rounding half
// away from zero. The inverse is centsToPrice; the pair must stay symmetric.
func priceToCents(price float64) int64 {
	if price >= 0 {
		return int64(math.Floor(price*100 + 0.5))
	}
	return int64(math.Ceil(price*100 - 0.5))
}

func centsToPrice(cents int64) float64 {
	return float64(cents) / 100
}

// encodeBooking maps a booking onto the Firestore document shape. The price
// is stored as scaled cents, timestamps as Firestore timestamps.
func encodeBooking(b *models.Booking) map[string]interface{} {
	passengers := make([]map[string]interface{}, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		passengers = append(passengers, map[string]interface{}{
			"first_name":    p.FirstName,
			"last_name":     p.LastName,
			"date_of_birth": p.DateOfBirth.UTC(),
			"email":         p.Email,
			"phone_number":  p.PhoneNumber,
		})
	}

	return map[string]interface{}{
		"id":                 b.ID,
		"user_id":            b.UserID,
		"flight_id":          b.FlightID,
		"passengers":         passengers,
		"total_price_cents":  priceToCents(b.TotalPrice),
		"booking_date":       b.BookingDate.UTC(),
		"status":             b.Status,
		"provider_reference": b.ProviderReference,
	}
}

// decodeBooking rebuilds a booking from a Firestore document snapshot.
func decodeBooking(id string, data map[string]interface{}) *models.Booking {
	booking := &models.Booking{
		ID:                id,
		UserID:            asString(data["user_id"]),
		FlightID:          asString(data["flight_id"]),
		TotalPrice:        centsToPrice(asInt64(data["total_price_cents"])),
		BookingDate:       asTime(data["booking_date"]),
		Status:            asString(data["status"]),
		ProviderReference: asString(data["provider_reference"]),
	}

	for _, fields := range passengerMaps(data["passengers"]) {
		booking.Passengers = append(booking.Passengers, models.Passenger{
			FirstName:   asString(fields["first_name"]),
			LastName:    asString(fields["last_name"]),
			DateOfBirth: asTime(fields["date_of_birth"]),
			Email:       asString(fields["email"]),
			PhoneNumber: asString(fields["phone_number"]),
		})
	}
	return booking
}

// passengerMaps normalizes the passengers field, which arrives as
// []interface{} from a Firestore snapshot and as []map[string]interface{}
// from encodeBooking.
func passengerMaps(v interface{}) []map[string]interface{} {
	switch items := v.(type) {
	case []map[string]interface{}:
		return items
	case []interface{}:
		maps := make([]map[string]interface{}, 0, len(items))
		for _, item := range items {
			if fields, ok := item.(map[string]interface{}); ok {
				maps = append(maps, fields)
			}
		}
		return maps
	}
	return nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asTime(v interface{}) time.Time {
	t, _ := v.(time.Time)
	return t
}
