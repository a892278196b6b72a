package mockclient

import (
	"context"

	"dashboard-csv-exporter/internal/client"

	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

var _ client.Client = &Client{}

func (m *Client) FetchDashboard(ctx context.Context, dashboardID string) ([]byte, error) {
	args := m.Called(ctx, dashboardID)
	if v := args.Get(0); v != nil {
		return v.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) QueryMetricCSV(ctx context.Context, selector, resolution string) (string, error) {
	args := m.Called(ctx, selector, resolution)
	return args.String(0), args.Error(1)
}
