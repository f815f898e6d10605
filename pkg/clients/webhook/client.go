package webhook

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/mbaye/vsphere-inventory/internal/config"
	"github.com/mbaye/vsphere-inventory/internal/domain/models"
)

// Client delivers inventory snapshots to a downstream consumer endpoint
// over HTTP.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client from the provided configuration.
func NewClient(cfg config.WebhookConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		httpClient: restyClient,
		url:        cfg.URL,
	}
}

// Name identifies this exporter in logs.
func (c *Client) Name() string {
	return "webhook"
}

// Export POSTs the snapshot as a JSON document. Any non-2xx response is an
// error.
func (c *Client) Export(ctx context.Context, snapshot models.InventorySnapshot) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(snapshot).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post snapshot to webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook rejected snapshot: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
