// avatar-progression/services/token_service_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"avatar-progression/utils"
)

// TokenServiceClient is the HTTP TokenGateway backed by the token service.
type TokenServiceClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewTokenServiceClient(baseURL, token string) *TokenServiceClient {
	return &TokenServiceClient{
		BaseURL: baseURL,
		Token:   token,
		Client:  utils.NewHTTPClient(30 * time.Second),
	}
}

func (c *TokenServiceClient) Mint(ctx context.Context, order MintOrder) error {
	return c.post(ctx, "/api/v1/tokens/mint", order)
}

func (c *TokenServiceClient) Burn(ctx context.Context, order BurnOrder) error {
	return c.post(ctx, "/api/v1/tokens/burn", order)
}

func (c *TokenServiceClient) UpdateMetadata(ctx context.Context, avatarMint, uri string) error {
	return c.post(ctx, "/api/v1/metadata/update", map[string]string{
		"mint": avatarMint,
		"uri":  uri,
	})
}

func (c *TokenServiceClient) post(ctx context.Context, path string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[TOKEN_SERVICE] %s returned %d: %s", path, resp.StatusCode, string(body))
		return fmt.Errorf("%w: %s returned %d", ErrGatewayFailed, path, resp.StatusCode)
	}
	return nil
}
