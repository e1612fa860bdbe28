package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dwikikusuma/order-notify/internal/notify/domain"
	"github.com/dwikikusuma/order-notify/pkg/metrics"
)

const maxResponseBody = 16 << 10

// PublishError is returned for any failed publish attempt. Status is the HTTP
// status from the ingestion endpoint, or 0 when the request never completed.
type PublishError struct {
	Status int
	Body   string
	Err    error
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publish request failed: %v", e.Err)
	}
	return fmt.Sprintf("publish rejected with status %d: %s", e.Status, e.Body)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Client publishes notifications to the hosted ingestion endpoint. Retries
// are the upstream gateway's job, not ours.
type Client struct {
	url     string
	apiKey  string
	httpc   *http.Client
	metrics *metrics.Registry
}

func NewClient(url, apiKey string, m *metrics.Registry) *Client {
	return &Client{
		url:     url,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		metrics: m,
	}
}

type publishRequest struct {
	Data domain.NotificationRecord `json:"data"`
}

func (c *Client) Publish(ctx context.Context, channel string, rec domain.NotificationRecord) (domain.PublishReceipt, error) {
	body, err := json.Marshal(publishRequest{Data: rec})
	if err != nil {
		return domain.PublishReceipt{}, fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.PublishReceipt{}, fmt.Errorf("build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Publish-Source", channel)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.metrics.PublishFailed.Inc()
		return domain.PublishReceipt{}, &PublishError{Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.PublishFailed.Inc()
		return domain.PublishReceipt{}, &PublishError{Status: resp.StatusCode, Body: string(respBody)}
	}

	c.metrics.PublishLatencySec.Observe(time.Since(start).Seconds())

	var receipt domain.PublishReceipt
	if err := json.Unmarshal(respBody, &receipt); err != nil {
		return domain.PublishReceipt{}, fmt.Errorf("decode publish response: %w", err)
	}

	return receipt, nil
}
