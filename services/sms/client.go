package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"glowtheory/config"
	"glowtheory/utils"

	"go.uber.org/zap"
)

// Sender dispatches a text message to a normalized phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Client talks to the SMS gateway's HTTP API. Without an API token the
// client runs in degraded mode: every send is logged and skipped, and the
// caller proceeds as if dispatch succeeded.
type Client struct {
	apiURL   string
	token    string
	senderID string
	http     *http.Client
}

// NewClient builds a Client from the loaded configuration.
func NewClient() *Client {
	return &Client{
		apiURL:   config.AppConfig.SMSAPIURL,
		token:    config.AppConfig.SMSAPIToken,
		senderID: config.AppConfig.SMSSenderID,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	Recipient string `json:"recipient"`
	SenderID  string `json:"sender_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
}

type sendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Send dispatches one message through the gateway.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if c.token == "" {
		utils.GetLogger().Warn("SMS gateway not configured; skipping dispatch",
			zap.String("phone", phone))
		return nil
	}

	payload, err := json.Marshal(sendRequest{
		Recipient: phone,
		SenderID:  c.senderID,
		Type:      "plain",
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/sms/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	var body sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode sms gateway response: %w", err)
	}
	if body.Status != "success" {
		return fmt.Errorf("sms gateway rejected message: %s", body.Message)
	}

	utils.GetLogger().Sugar().Infof("Sent SMS to %s via %s", phone, c.senderID)
	return nil
}
