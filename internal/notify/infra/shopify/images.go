package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dwikikusuma/order-notify/pkg/metrics"
)

const apiVersion = "2024-01"

// ImageClient looks up product display images through the storefront Admin
// REST API. One attempt per product; callers treat any error as "no image".
type ImageClient struct {
	baseURL string
	token   string
	httpc   *http.Client
	metrics *metrics.Registry
}

func NewImageClient(baseURL, token string, m *metrics.Registry) *ImageClient {
	return &ImageClient{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 5 * time.Second},
		metrics: m,
	}
}

type productResponse struct {
	Product struct {
		Image struct {
			Src string `json:"src"`
		} `json:"image"`
	} `json:"product"`
}

// ProductImage returns the product's primary image URL. An empty URL with a
// nil error means the product has no image, which is not a failure.
func (c *ImageClient) ProductImage(ctx context.Context, productID int64) (string, error) {
	url := fmt.Sprintf("%s/admin/api/%s/products/%d.json", c.baseURL, apiVersion, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build product request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.metrics.ImageLookupFailed.Inc()
		return "", fmt.Errorf("product %d request: %w", productID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ImageLookupFailed.Inc()
		return "", fmt.Errorf("product %d lookup returned status %d", productID, resp.StatusCode)
	}

	var pr productResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		c.metrics.ImageLookupFailed.Inc()
		return "", fmt.Errorf("decode product %d response: %w", productID, err)
	}

	return pr.Product.Image.Src, nil
}
