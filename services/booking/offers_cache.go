package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skyward/models"

	"github.com/go-redis/redis/v8"
)

// RedisOfferCache caches flight search results in redis keyed by the full
// search criteria. Entries expire after TTL so stale offers age out.
type RedisOfferCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// Get returns the cached offers for the criteria, or nil on a miss.
func (c *RedisOfferCache) Get(ctx context.Context, req models.FlightSearchRequest) ([]models.FlightOffer, error) {
	data, err := c.Client.Get(ctx, offersKey(req)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var offers []models.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// Set stores the offers for the criteria.
func (c *RedisOfferCache) Set(ctx context.Context, req models.FlightSearchRequest, offers []models.FlightOffer) error {
	payload, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, offersKey(req), payload, c.TTL).Err()
}

func offersKey(req models.FlightSearchRequest) string {
	return fmt.Sprintf("offers:%s:%s:%s:%s:%d:%d:%d:%s",
		req.OriginLocationCode, req.DestinationLocationCode,
		req.DepartureDate, req.ReturnDate,
		req.Adults, req.Children, req.Infants, req.TravelClass)
}

var _ OfferCache = (*RedisOfferCache)(nil)
