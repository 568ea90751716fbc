package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBatchSize is the maximum number of identifiers per batch request
// (Scryfall limit is 75).
const MaxBatchSize = 75

// CardIdentifier represents a card identifier for the /cards/collection
// endpoint. Populate exactly one identifier shape per entry.
type CardIdentifier struct {
	ID              string `json:"id,omitempty"`               // Scryfall ID
	Name            string `json:"name,omitempty"`             // Card name
	Set             string `json:"set,omitempty"`              // Set code
	CollectorNumber string `json:"collector_number,omitempty"` // Requires set
}

// CollectionRequest is the request body for /cards/collection.
type CollectionRequest struct {
	Identifiers []CardIdentifier `json:"identifiers"`
}

// CollectionResponse is the response from /cards/collection.
type CollectionResponse struct {
	Object   string           `json:"object"`
	NotFound []CardIdentifier `json:"not_found"`
	Data     []Card           `json:"data"`
}

// GetCardsByIdentifiers fetches cards using a mixed batch of identifiers.
// Each identifier can use a different lookup shape (id, set+number,
// name+set, name). The caller must keep batches within MaxBatchSize; the
// returned records carry no positional correspondence to the input.
func (c *Client) GetCardsByIdentifiers(ctx context.Context, identifiers []CardIdentifier) ([]Card, []CardIdentifier, error) {
	if len(identifiers) == 0 {
		return []Card{}, nil, nil
	}
	if len(identifiers) > MaxBatchSize {
		return nil, nil, fmt.Errorf("batch of %d identifiers exceeds limit of %d", len(identifiers), MaxBatchSize)
	}

	reqBody := CollectionRequest{Identifiers: identifiers}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cards/collection", bytes.NewReader(jsonBody))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to fetch cards from Scryfall: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return nil, nil, lastErr
		}

		cards, notFound, retry, err := parseCollectionResponse(resp)
		if err != nil {
			if retry && attempt < maxRetries {
				lastErr = err
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return nil, nil, err
		}
		return cards, notFound, nil
	}

	return nil, nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// parseCollectionResponse consumes one /cards/collection response.
func parseCollectionResponse(resp *http.Response) (cards []Card, notFound []CardIdentifier, retry bool, err error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		return nil, nil, true, fmt.Errorf("transient error (HTTP %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, nil, false, fmt.Errorf("scryfall API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to read response body: %w", err)
	}

	var collectionResp CollectionResponse
	if err := json.Unmarshal(body, &collectionResp); err != nil {
		return nil, nil, false, fmt.Errorf("failed to parse Scryfall response: %w", err)
	}

	// A response without the data array violates the collection endpoint
	// contract; callers must abort rather than treat it as "nothing found".
	if collectionResp.Data == nil {
		return nil, nil, false, fmt.Errorf("unexpected Scryfall response format for collection endpoint")
	}

	return collectionResp.Data, collectionResp.NotFound, false, nil
}
