// Package carrier is the HTTP client for the shipping aggregator service:
// label creation when an order ships and the tracking poll surface used by
// the shipment tracking job.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client calls the shipping aggregator over HTTP. It implements
// ports.Carrier.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a carrier client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type createLabelRequest struct {
	OrderID     string `json:"orderId"`
	Carrier     string `json:"carrier"`
	Service     string `json:"service"`
	WeightGrams int    `json:"weightGrams,omitempty"`
}

type createLabelResponse struct {
	TrackingNumber    string     `json:"trackingNumber"`
	LabelURL          string     `json:"labelUrl"`
	CostPence         int64      `json:"costPence"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

type trackingResponse struct {
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	Description    string    `json:"description"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// CreateLabel books a shipping label for a consignment.
func (c *Client) CreateLabel(ctx context.Context, labelReq ports.LabelRequest) (ports.Label, error) {
	body, err := json.Marshal(createLabelRequest{
		OrderID:     labelReq.OrderID.String(),
		Carrier:     labelReq.Carrier,
		Service:     labelReq.Service,
		WeightGrams: labelReq.Weight,
	})
	if err != nil {
		return ports.Label{}, fmt.Errorf("encoding label request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/labels", bytes.NewReader(body))
	if err != nil {
		return ports.Label{}, fmt.Errorf("building label request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Label{}, fmt.Errorf("calling carrier service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return ports.Label{}, fmt.Errorf("carrier service returned %s: %s",
			resp.Status, readErrorBody(resp.Body))
	}

	var decoded createLabelResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.Label{}, fmt.Errorf("decoding label response: %w", err)
	}

	cost, err := kernel.NewMoney(decoded.CostPence)
	if err != nil {
		return ports.Label{}, fmt.Errorf("carrier returned invalid label cost: %w", err)
	}

	return ports.Label{
		TrackingNumber:    decoded.TrackingNumber,
		LabelURL:          decoded.LabelURL,
		Cost:              cost,
		EstimatedDelivery: decoded.EstimatedDelivery,
	}, nil
}

// Track fetches the latest tracking milestone for a consignment.
func (c *Client) Track(ctx context.Context, trackingNumber, carrierName string) (ports.TrackingUpdate, error) {
	trackURL := fmt.Sprintf("%s/api/v1/tracking/%s/%s",
		c.baseURL, url.PathEscape(carrierName), url.PathEscape(trackingNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return ports.TrackingUpdate{}, fmt.Errorf("building tracking request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.TrackingUpdate{}, fmt.Errorf("calling carrier service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.TrackingUpdate{}, fmt.Errorf("carrier service returned %s: %s",
			resp.Status, readErrorBody(resp.Body))
	}

	var decoded trackingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.TrackingUpdate{}, fmt.Errorf("decoding tracking response: %w", err)
	}

	return ports.TrackingUpdate{
		TrackingNumber: decoded.TrackingNumber,
		Status:         decoded.Status,
		Description:    decoded.Description,
		OccurredAt:     decoded.OccurredAt,
	}, nil
}

func readErrorBody(r io.Reader) string {
	snippet, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(bytes.TrimSpace(snippet))
}
