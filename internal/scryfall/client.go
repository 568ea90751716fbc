// Package scryfall provides a rate-limited Scryfall API client used as the
// external card database for deck validation.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the production Scryfall API endpoint.
	DefaultBaseURL = "https://api.scryfall.com"

	rateLimitDelay = 100 * time.Millisecond // 100ms between requests (10 req/sec)
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client represents a Scryfall API client with rate limiting.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a new Scryfall API client.
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// Rate limiter: 1 request per 100ms = 10 req/sec
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "deckcheck/1.0",
	}
}

// SetBaseURL overrides the API endpoint. Used by tests and mirrors.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// SetUserAgent overrides the User-Agent header sent with each request.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// GetSets retrieves the full set directory in Scryfall's listing order.
func (c *Client) GetSets(ctx context.Context) (*SetList, error) {
	var sets SetList
	if err := c.doRequest(ctx, c.baseURL+"/sets", &sets); err != nil {
		return nil, fmt.Errorf("failed to get sets: %w", err)
	}

	return &sets, nil
}

// GetCardByName retrieves a card by its exact name.
func (c *Client) GetCardByName(ctx context.Context, name string) (*Card, error) {
	reqURL := fmt.Sprintf("%s/cards/named?exact=%s", c.baseURL, url.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, reqURL, &card); err != nil {
		return nil, fmt.Errorf("failed to get card named %q: %w", name, err)
	}

	return &card, nil
}

// doRequest performs a GET request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, reqURL string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)

			// Retry on network errors
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		retry, err := c.handleResponse(resp, result, &backoff)
		if err != nil {
			if retry && attempt < maxRetries {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// handleResponse consumes one HTTP response. It returns retry=true for
// transient statuses (429, 503) after sleeping the backoff interval.
func (c *Client) handleResponse(resp *http.Response, result interface{}, backoff *time.Duration) (retry bool, err error) {
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false, fmt.Errorf("failed to read response body: %w", err)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return false, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return false, nil

	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		// Rate limited or server busy - exponential backoff, honoring
		// Retry-After when present.
		retryAfter := resp.Header.Get("Retry-After")
		if duration, parseErr := time.ParseDuration(retryAfter + "s"); retryAfter != "" && parseErr == nil {
			time.Sleep(duration)
		} else {
			time.Sleep(*backoff)
		}
		*backoff = minDuration(*backoff*2, maxBackoff)
		return true, fmt.Errorf("transient error (HTTP %d)", resp.StatusCode)

	case http.StatusNotFound:
		return false, &NotFoundError{URL: resp.Request.URL.String()}

	default:
		body, _ := io.ReadAll(resp.Body)

		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
			return false, &apiErr
		}
		return false, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
}

// minDuration returns the minimum of two time.Duration values.
func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
