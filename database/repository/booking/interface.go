package bookingRepo

import (
	"context"

	"skyward/models"
)

// BookingRepository is the contract of the authoritative booking store.
// GetByID returns (nil, nil) when no booking exists under the id; an error
// always means a real store failure, never absence.
type BookingRepository interface {
	Add(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id string) error
}

// BookingMirrorRepository is the contract of the best-effort mirror store.
// The mirror is write-only from the service's point of view.
type BookingMirrorRepository interface {
	Add(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
}
