// Package hrmssync pushes subscription snapshots to the downstream HRMS so it
// can enable or disable modules for a tenant.
package hrmssync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/orris-inc/backoffice/internal/shared/config"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

const headerAPIKey = "X-API-Key"

// Snapshot is the webhook payload.
type Snapshot struct {
	Event          string          `json:"event"`
	ClientID       uint            `json:"client_id"`
	SubscriptionID uint            `json:"subscription_id"`
	PlanID         uint            `json:"plan_id"`
	Status         string          `json:"subscription_status"`
	PaymentStatus  string          `json:"payment_status"`
	NumUsers       int             `json:"num_users"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	ModuleAccess   map[string]bool `json:"module_access,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

type Client struct {
	url            string
	apiKey         string
	httpClient     *http.Client
	maxRetries     uint
	maxElapsedTime time.Duration
	initialBackoff time.Duration
	logger         logger.Interface
}

func NewClient(cfg config.HRMSConfig, log logger.Interface) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:            cfg.WebhookURL,
		apiKey:         cfg.APIKey,
		httpClient:     &http.Client{Timeout: timeout},
		maxRetries:     cfg.MaxRetries,
		maxElapsedTime: cfg.MaxElapsedTime,
		initialBackoff: 500 * time.Millisecond,
		logger:         log,
	}
}

// Push delivers s, retrying transport errors, 429 and 5xx responses with
// exponential backoff. Other 4xx responses are not retried.
func (c *Client) Push(ctx context.Context, s Snapshot) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.initialBackoff

	opts := []backoff.RetryOption{backoff.WithBackOff(expBackoff)}
	if c.maxRetries > 0 {
		opts = append(opts, backoff.WithMaxTries(c.maxRetries))
	}
	if c.maxElapsedTime > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(c.maxElapsedTime))
	}

	attempt := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := c.post(ctx, body)
		if err != nil {
			c.logger.Warnw("hrms sync attempt failed",
				"attempt", attempt,
				"subscription_id", s.SubscriptionID,
				"event", s.Event,
				"error", err,
			)
		}
		return struct{}{}, err
	}, opts...)
	if err != nil {
		return fmt.Errorf("hrms sync failed after %d attempts: %w", attempt, err)
	}

	c.logger.Debugw("hrms sync delivered", "subscription_id", s.SubscriptionID, "event", s.Event, "attempts", attempt)
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			return backoff.RetryAfter(secs)
		}
		return fmt.Errorf("hrms returned status %d", resp.StatusCode)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return backoff.Permanent(fmt.Errorf("hrms rejected snapshot with status %d", resp.StatusCode))
	default:
		return fmt.Errorf("hrms returned status %d", resp.StatusCode)
	}
}
