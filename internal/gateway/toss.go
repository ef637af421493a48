// Package gateway implements the payment provider's confirmation API. The
// confirm call is the only point where this service talks to the provider;
// authorization uses the server-held secret key as an HTTP Basic credential
// with an empty password.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/babo072/my-shopping-mall/internal/service"
)

const confirmPath = "/v1/payments/confirm"

// ErrNotConfigured is returned when no secret key was provided at startup.
var ErrNotConfigured = errors.New("payment gateway secret key is not configured")

// Client calls the payment gateway's confirm endpoint.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a gateway client. The timeout bounds the whole confirm
// call; a hung gateway fails the request instead of hanging the handler.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// Confirm asks the gateway to confirm the payment identified by paymentKey.
// On a non-2xx response the gateway's error payload is returned verbatim
// inside a *service.GatewayError.
func (c *Client) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (json.RawMessage, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(confirmRequest{PaymentKey: paymentKey, OrderID: orderID, Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("encode confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+confirmPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build confirm request: %w", err)
	}
	req.Header.Set("Authorization", basicAuth(c.secretKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &service.GatewayError{StatusCode: resp.StatusCode, Payload: payload}
	}
	return payload, nil
}

// basicAuth encodes the secret key as "secret:" per the gateway's API docs.
func basicAuth(secretKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":"))
}
