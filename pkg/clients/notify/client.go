package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Summary is the condensed forecast payload pushed to the webhook after a
// scheduled run.
type Summary struct {
	ReportID        string    `json:"reportId"`
	FacilityID      string    `json:"facilityId"`
	HorizonDays     int       `json:"horizonDays"`
	GeneratedAt     time.Time `json:"generatedAt"`
	TotalBatchesMax int       `json:"totalBatchesMax"`
	Findings        int       `json:"findings"`
	TopFinding      string    `json:"topFinding,omitempty"`
}

// Client exposes the outbound notification operation used by the scheduler.
type Client interface {
	PushSummary(ctx context.Context, summary Summary) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewWebhookClient builds a webhook notifier for the given target URL.
func NewWebhookClient(webhookURL string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

// PushSummary posts the summary payload to the configured webhook.
func (c *WebhookClient) PushSummary(ctx context.Context, summary Summary) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(summary).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("push forecast summary: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("push forecast summary: webhook returned status %d", resp.StatusCode())
	}

	return nil
}
