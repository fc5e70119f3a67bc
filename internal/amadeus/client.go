// Package amadeus talks to the Amadeus self-service test API: a
// client-credentials token exchange and the flight-offers search.
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
)

const (
	DefaultTokenURL  = "https://test.api.amadeus.com/v1/security/oauth2/token"
	DefaultSearchURL = "https://test.api.amadeus.com/v2/shopping/flight-offers"
)

type Client struct {
	APIKey     string
	APISecret  string
	TokenURL   string
	SearchURL  string
	HTTPClient *http.Client
	Timeout    time.Duration
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type searchResponse struct {
	Data []Offer `json:"data"`
}

// Token exchanges the client id/secret pair for a short-lived bearer token.
// Tokens are not cached: each poll cycle re-authenticates.
func (c *Client) Token(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.APIKey)
	form.Set("client_secret", c.APISecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token endpoint returned %s: %s", ErrAuth, resp.Status, readBody(resp.Body))
	}
	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", ErrAuth, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuth)
	}
	return tok.AccessToken, nil
}

// SearchOffers runs one authenticated flight-offers search. It returns
// ErrNoOffers when the search succeeds but the result list is empty.
func (c *Client) SearchOffers(ctx context.Context, token string, q SearchQuery) ([]Offer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, buildSearchURL(c.searchURL(), q), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: search returned %s: %s", ErrQuery, resp.Status, readBody(resp.Body))
	}
	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", ErrQuery, err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("%w: %s -> %s on %s", ErrNoOffers, q.Origin, q.Destination, q.DepartureDate)
	}
	return payload.Data, nil
}

func buildSearchURL(base string, q SearchQuery) string {
	v := url.Values{}
	v.Set("originLocationCode", q.Origin)
	v.Set("destinationLocationCode", q.Destination)
	v.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		v.Set("returnDate", q.ReturnDate)
	}
	v.Set("adults", strconv.Itoa(maxInt(q.Adults, 1)))
	v.Set("currencyCode", firstOr(q.Currency, "USD"))
	v.Set("max", strconv.Itoa(maxInt(q.Max, 5)))
	return base + "?" + v.Encode()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.resolvedTimeout()}
}

func (c *Client) resolvedTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 20 * time.Second
}

func (c *Client) tokenURL() string {
	if c.TokenURL != "" {
		return c.TokenURL
	}
	return DefaultTokenURL
}

func (c *Client) searchURL() string {
	if c.SearchURL != "" {
		return c.SearchURL
	}
	return DefaultSearchURL
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 2048))
	return strings.TrimSpace(string(b))
}

func firstOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func maxInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
