package amadeus

import "fmt"

// ConfigurationError reports missing provider credentials or connection
// settings. It is fatal for the calling operation and never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ProviderError reports a failed call to the Amadeus API: either a transport
// failure (Err set) or a non-success HTTP response (StatusCode and Body set).
type ProviderError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("amadeus %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("amadeus %s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// MalformedOfferError reports a raw flight offer payload missing the fields
// a booking needs (offer id, price.grandTotal).
type MalformedOfferError struct {
	Message string
}

func (e *MalformedOfferError) Error() string {
	return e.Message
}
