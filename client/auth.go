package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"princegaming/models"
)

// Login posts the credentials. The answer is not wrapped in an envelope.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, "/users/login", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var resp models.LoginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &resp, nil
}

// Verify checks the stored token against the API
func (c *Client) Verify(ctx context.Context) (*models.VerifyResponse, error) {
	raw, err := c.do(ctx, http.MethodGet, "/users/verify", nil, "")
	if err != nil {
		return nil, err
	}
	var resp models.VerifyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}
	return &resp, nil
}
