package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"spacetact/metrics"
	"spacetact/models"

	"go.uber.org/zap"
)

// WebhookForwarder posts each lead as JSON to an n8n webhook.
type WebhookForwarder struct {
	URL    string
	HTTP   *http.Client
	logger *zap.Logger

	wg sync.WaitGroup
}

// NewWebhookForwarder creates a forwarder with its own client timeout.
func NewWebhookForwarder(url string, timeout time.Duration, logger *zap.Logger) *WebhookForwarder {
	return &WebhookForwarder{
		URL:    url,
		HTTP:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Forward dispatches delivery on its own goroutine and returns immediately.
func (f *WebhookForwarder) Forward(record models.LeadRecord) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		if err := f.deliver(context.Background(), record); err != nil {
			metrics.LeadForwards.WithLabelValues("failed").Inc()
			f.logger.Error("Lead webhook delivery failed",
				zap.String("email", record.Email),
				zap.String("url", f.URL),
				zap.Error(err),
			)
			return
		}
		metrics.LeadForwards.WithLabelValues("ok").Inc()
	}()
}

func (f *WebhookForwarder) deliver(ctx context.Context, record models.LeadRecord) error {
	if f.URL == "" {
		return fmt.Errorf("no lead webhook configured")
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	f.logger.Info("Sending lead to webhook", zap.String("url", f.URL), zap.String("email", record.Email))
	resp, err := f.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("post lead: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Drain waits for in-flight deliveries, or until ctx is done. It is meant for
// graceful shutdown only; turns never wait on it.
func (f *WebhookForwarder) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
