package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// tokenExpirySkew is the safety margin before the reported expiry at which a
// cached token stops being reused.
const tokenExpirySkew = 5 * time.Minute

// tokenCache holds the shared access token and its expiry. Both fields are
// read and written only under mu so concurrent callers never observe a
// half-updated pair or trigger duplicate refreshes.
type tokenCache struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
}

// bearerToken returns a valid access token, refreshing it through the
// client-credentials grant when the cached one is missing or expires within
// the skew window. The refresh happens inside the critical section, so under
// N concurrent callers exactly one token request goes out.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.tokens.mu.Lock()
	defer c.tokens.mu.Unlock()

	if c.tokens.token != "" && time.Until(c.tokens.expiry) > tokenExpirySkew {
		return c.tokens.token, nil
	}

	c.logger.Info("Amadeus access token is missing or expired, refreshing...")
	if c.clientID == "" || c.clientSecret == "" {
		return "", &ConfigurationError{Message: "Amadeus client id or client secret is not configured"}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &ProviderError{Op: "token", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Op: "token", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Op: "token", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{Op: "token", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", &ProviderError{Op: "token", Err: fmt.Errorf("decoding token response: %w", err)}
	}

	c.tokens.token = token.AccessToken
	c.tokens.expiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	c.logger.Info("Amadeus access token refreshed successfully.",
		zap.Time("expiry", c.tokens.expiry))
	return c.tokens.token, nil
}
