package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"avatar-progression/progression"
	"avatar-progression/utils"
)

// ErrIndexerUnavailable is returned when holdings cannot be fetched at all,
// as opposed to a holding that fails verification.
var ErrIndexerUnavailable = errors.New("holdings indexer unavailable")

// IndexerClient reads token holdings from the chain indexer. It implements
// progression.HoldingSource.
type IndexerClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewIndexerClient(baseURL, token string) *IndexerClient {
	return &IndexerClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: utils.NewHTTPClient(10 * time.Second),
	}
}

// Holding returns what holder holds of mint. A holder with no account for
// the mint comes back as a zero-amount holding, not an error.
func (c *IndexerClient) Holding(ctx context.Context, mint, holder string) (progression.Holding, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/v1/holdings/%s", c.BaseURL, url.PathEscape(mint)))
	if err != nil {
		return progression.Holding{}, fmt.Errorf("failed to parse indexer URL: %w", err)
	}
	q := u.Query()
	q.Set("holder", holder)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return progression.Holding{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return progression.Holding{}, fmt.Errorf("%w: %v", ErrIndexerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return progression.Holding{Mint: mint, Holder: holder}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return progression.Holding{}, fmt.Errorf("%w: status %d: %s", ErrIndexerUnavailable, resp.StatusCode, string(body))
	}

	var h progression.Holding
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return progression.Holding{}, fmt.Errorf("failed to decode indexer response: %w", err)
	}
	return h, nil
}

// NewIndexerVerifier wires the indexer into the core ownership checks.
func NewIndexerVerifier(client *IndexerClient, collections progression.Collections) *progression.HoldingVerifier {
	return &progression.HoldingVerifier{Source: client, Collections: collections}
}
