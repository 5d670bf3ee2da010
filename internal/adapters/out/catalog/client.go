// Package catalog is the HTTP client for the catalog/inventory service.
// The orchestrator only needs one capability from it: reversing the
// inventory reservations of a cancelled order.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client calls the catalog service over HTTP. It implements
// ports.StockRestorer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type restoreStockRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type restoreStockResponse struct {
	Success           bool `json:"success"`
	RestoredItemCount int  `json:"restoredItemCount"`
}

// RestoreStock asks the catalog service to release the reservations held
// for an order.
func (c *Client) RestoreStock(ctx context.Context, orderID kernel.UUID, reason string) (ports.StockRestoreResult, error) {
	body, err := json.Marshal(restoreStockRequest{OrderID: orderID.String(), Reason: reason})
	if err != nil {
		return ports.StockRestoreResult{}, fmt.Errorf("encoding stock restore request: %w", err)
	}

	url := c.baseURL + "/api/v1/stock/restore"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ports.StockRestoreResult{}, fmt.Errorf("building stock restore request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.StockRestoreResult{}, fmt.Errorf("calling catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.StockRestoreResult{}, fmt.Errorf("catalog service returned %s: %s",
			resp.Status, readErrorBody(resp.Body))
	}

	var decoded restoreStockResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.StockRestoreResult{}, fmt.Errorf("decoding stock restore response: %w", err)
	}

	return ports.StockRestoreResult{
		Success:           decoded.Success,
		RestoredItemCount: decoded.RestoredItemCount,
	}, nil
}

// readErrorBody returns a short prefix of an error response body for
// inclusion in error messages.
func readErrorBody(r io.Reader) string {
	snippet, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(bytes.TrimSpace(snippet))
}
