package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a minimal HTTP client for a WhatsApp message gateway. Sends are
// plain text messages to a single configured recipient, typically the store
// owner's order intake number.
type Client struct {
	httpClient *http.Client
	gatewayURL string
	apiKey     string
	recipient  string
}

// NewClient constructs a new gateway client. An empty gatewayURL disables
// sending entirely; Send becomes a no-op so environments without a gateway
// still check out normally.
func NewClient(gatewayURL, apiKey, recipient string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		recipient:  recipient,
	}
}

// Enabled reports whether a gateway is configured.
func (c *Client) Enabled() bool {
	return c.gatewayURL != ""
}

type sendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Send posts a text message to the gateway.
func (c *Client) Send(ctx context.Context, text string) error {
	if !c.Enabled() {
		return nil
	}

	payload, err := json.Marshal(sendRequest{To: c.recipient, Message: text})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, respBody)
	}

	var result sendResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("gateway rejected message: %s", result.Error)
	}
	return nil
}
