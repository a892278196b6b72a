package model

import "time"

// MetricFetchTask is one metric to fetch, derived from a query or a legacy expression.
type MetricFetchTask struct {
	TileName   string
	Selector   string
	Resolution string
}

// MetricResult is one fetched series. Body is the CSV payload exactly as returned.
type MetricResult struct {
	TileName   string
	MetricName string
	Selector   string
	Resolution string
	Body       string
}

// ExportRecord is one row of the export ledger.
type ExportRecord struct {
	RunID         string
	Tenant        string
	DashboardID   string
	DashboardName string
	Index         int
	TileName      string
	MetricName    string
	Selector      string
	Resolution    string
	FilePath      string
	Bytes         int
	Lines         int
	Checksum      uint64
	ExportedAt    time.Time
}

// RunSummary describes a finished export run.
type RunSummary struct {
	RunID         string    `json:"run_id"`
	DashboardID   string    `json:"dashboard_id"`
	DashboardName string    `json:"dashboard_name"`
	MetricsFound  int       `json:"metrics_found"`
	FilesWritten  []string  `json:"files_written"`
	FinishedAt    time.Time `json:"finished_at"`
}
