// Package mailer is the HTTP client for the message transport service. The
// same contract serves the mail gateway and the SMS gateway; the two differ
// only in base URL and in which message fields they use.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client calls a message gateway over HTTP. It implements
// ports.MessageSender.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a transport client for the given gateway base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// Send submits one message to the gateway. Acceptance by the gateway is the
// only delivery signal this client reports.
func (c *Client) Send(ctx context.Context, msg ports.Message) error {
	body, err := json.Marshal(sendRequest{
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling message gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("message gateway returned %s: %s",
			resp.Status, bytes.TrimSpace(snippet))
	}

	return nil
}
