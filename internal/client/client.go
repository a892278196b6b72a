package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	acceptJSON = "application/json; charset=utf-8"
	acceptCSV  = "text/csv; header=present; charset=utf-8"

	maxErrorBody = 512
)

// APIError is returned when the platform answers with a non-2xx status.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d error for url %s: %s", e.StatusCode, e.URL, e.Body)
}

// Client talks to the monitoring platform's config and metrics APIs.
type Client interface {
	// FetchDashboard returns the raw dashboard JSON document.
	FetchDashboard(ctx context.Context, dashboardID string) ([]byte, error)

	// QueryMetricCSV returns the metrics v2 query result as CSV text.
	QueryMetricCSV(ctx context.Context, selector, resolution string) (string, error)
}

// Options configures the API client.
type Options struct {
	DashboardEndpoint string
	MetricsQueryURL   string
	APIToken          string
	Timeout           time.Duration
}

type apiClient struct {
	opts Options
}

// New returns a Client issuing one attempt per request.
func New(opts Options) Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &apiClient{opts: opts}
}

func (c *apiClient) FetchDashboard(ctx context.Context, dashboardID string) ([]byte, error) {
	return c.get(ctx, c.opts.DashboardEndpoint+url.PathEscape(dashboardID), "", acceptJSON)
}

func (c *apiClient) QueryMetricCSV(ctx context.Context, selector, resolution string) (string, error) {
	params := url.Values{}
	params.Set("metricSelector", selector)
	params.Set("resolution", resolution)

	body, err := c.get(ctx, c.opts.MetricsQueryURL, params.Encode(), acceptCSV)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *apiClient) get(ctx context.Context, target, query, accept string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.Get(target)
	agent.Set(fiber.HeaderAccept, accept)
	agent.Set(fiber.HeaderAuthorization, "Api-Token "+c.opts.APIToken)
	agent.Timeout(c.opts.Timeout)
	if query != "" {
		agent.QueryString(query)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("request %s: %w", target, errors.Join(errs...))
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, &APIError{StatusCode: code, URL: target, Body: truncate(string(body), maxErrorBody)}
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
