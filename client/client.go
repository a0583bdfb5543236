package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"princegaming/models"
)

// Session is the part of the session store the client needs: the bearer token
// to attach, and a way to drop the session when the API rejects it.
type Session interface {
	Token() (string, bool)
	Clear(ctx context.Context) error
}

// Config configures a Client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// BreakerFailures is the number of consecutive connection or server failures
	// that open the circuit. Zero means 5.
	BreakerFailures uint32
	// BreakerCooldown is how long the circuit stays open. Zero means 10s.
	BreakerCooldown time.Duration
	HTTPClient      *http.Client
}

// Client talks to the remote inventory API
type Client struct {
	baseURL string
	http    *http.Client
	session Session
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// New creates a Client. session may be nil for anonymous use.
func New(cfg Config, session Session) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		}
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := cfg.BreakerCooldown
	if cooldown == 0 {
		cooldown = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "inventory-api",
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// only outages trip the breaker; 4xx answers are the caller's problem
		IsSuccessful: func(err error) bool {
			return err == nil || !(IsClass(err, ClassConnection) || IsClass(err, ClassServer))
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.S().Warnf("⚠️  %s circuit: %s -> %s", name, from, to)
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		session: session,
		breaker: breaker,
	}
}

// do sends one request through the interceptor chain and returns the raw body of a 2xx answer
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	payload, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, method, path, body, contentType)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, newTransportError(method, path, 0, err)
	}
	return payload, err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != nil {
		if token, ok := c.session.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		zap.S().Errorf("❌ %s %s: %v", method, path, err)
		return nil, newTransportError(method, path, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(method, path, 0, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode == http.StatusUnauthorized && c.session != nil {
		zap.S().Warnf("⚠️  %s %s: 401, clearing session", method, path)
		if err := c.session.Clear(ctx); err != nil {
			zap.S().Errorf("❌ failed to clear session after 401: %v", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newTransportError(method, path, resp.StatusCode, nil)
	}
	return raw, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any) ([]byte, error) {
	if in == nil {
		return c.do(ctx, method, path, nil, "")
	}
	encoded, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(encoded), "application/json")
}

// decodeEnvelope decodes a standard envelope and turns allOK=false into an APIError
func decodeEnvelope[T any](path string, raw []byte) (T, error) {
	var env models.Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	if !env.AllOK {
		return env.Data, &APIError{Path: path, Message: env.Message}
	}
	return env.Data, nil
}
