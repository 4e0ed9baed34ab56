package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// dateFormat is the calendar-date key used in rate lookups and cache keys.
const dateFormat = "2006-01-02"

// Client fetches historical exchange rates from a frankfurter-style HTTP API:
// GET {base}/{YYYY-MM-DD}?from=EUR&to=USD returning {"rates":{"USD":1.08}}.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Ensure Client implements RateSource
var _ RateSource = (*Client)(nil)

// NewClient creates a rate client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Rate resolves the from→to rate for the given calendar date. Any transport
// or API failure surfaces as ErrRateUnavailable; there is no fallback rate.
func (c *Client) Rate(ctx context.Context, date time.Time, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}

	url := fmt.Sprintf("%s/%s?from=%s&to=%s", c.baseURL, date.Format(dateFormat), from, to)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %s/%s on %s: status %d",
			ErrRateUnavailable, from, to, date.Format(dateFormat), resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("%w: decoding response: %v", ErrRateUnavailable, err)
	}

	rate, ok := parsed.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: no %s rate for %s on %s",
			ErrRateUnavailable, to, from, date.Format(dateFormat))
	}
	return rate, nil
}
