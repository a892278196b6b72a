package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"

	"dashboard-csv-exporter/internal/client"
	"dashboard-csv-exporter/internal/extract"
	"dashboard-csv-exporter/internal/model"
	"dashboard-csv-exporter/internal/output"
	"dashboard-csv-exporter/internal/render"
	"dashboard-csv-exporter/internal/repository"
)

// ValidationError represents invalid run input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RunRequest selects the dashboard to export.
type RunRequest struct {
	DashboardID string
	// DumpJSON also writes the raw dashboard document to Options.DashboardJSONPath.
	DumpJSON bool
}

// Options are the run settings that do not change between dashboards.
type Options struct {
	Tenant            string
	OutputDir         string
	DefaultResolution string
	DashboardJSONPath string
}

type ExportService interface {
	Run(ctx context.Context, req RunRequest) (model.RunSummary, error)
}

// exportService fetches one dashboard, its metric series, and writes them to disk.
// Everything runs sequentially and the first failure aborts the run.
type exportService struct {
	client    client.Client
	repo      repository.ExportRepository
	printer   *render.Printer
	extractor *extract.Extractor
	opts      Options

	now       func() time.Time
	newRunID  func() string
	newWriter func(*output.Namer) output.Writer
}

// NewExportService constructs an exportService.
func NewExportService(c client.Client, repo repository.ExportRepository, printer *render.Printer, opts Options) ExportService {
	if opts.DashboardJSONPath == "" {
		opts.DashboardJSONPath = "dashboard.json"
	}
	return &exportService{
		client:    c,
		repo:      repo,
		printer:   printer,
		extractor: extract.NewExtractor(opts.DefaultResolution),
		opts:      opts,
		now:       time.Now,
		newRunID:  func() string { return uuid.NewV4().String() },
		newWriter: output.NewFileWriter,
	}
}

// Run exports every metric of the requested dashboard.
func (s *exportService) Run(ctx context.Context, req RunRequest) (model.RunSummary, error) {
	if strings.TrimSpace(req.DashboardID) == "" {
		return model.RunSummary{}, &ValidationError{Message: "dashboard id is required"}
	}

	runID := s.newRunID()
	logger := log.With().Str("run_id", runID).Str("dashboard_id", req.DashboardID).Logger()

	raw, err := s.client.FetchDashboard(ctx, req.DashboardID)
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("fetch dashboard %s: %w", req.DashboardID, err)
	}

	if req.DumpJSON {
		if err := output.WriteDashboardJSON(s.opts.DashboardJSONPath, raw); err != nil {
			return model.RunSummary{}, err
		}
		logger.Info().Str("path", s.opts.DashboardJSONPath).Msg("dashboard json written")
	}

	dashboard, err := model.ParseDashboard(raw)
	if err != nil {
		return model.RunSummary{}, err
	}

	s.printer.Section("Dashboard shared properties")
	s.printer.Dashboard(dashboard)
	for _, tile := range dashboard.Tiles {
		s.printer.Tile(tile, extract.HasFilter)
	}

	tasks := s.extractor.Extract(dashboard)
	logger.Info().Int("metrics", len(tasks)).Int("tiles", len(dashboard.Tiles)).Msg("metrics found")

	s.printer.Section("Metric List")
	s.printer.MetricList(tasks)

	s.printer.Section("Gathering metric data from the API")
	results, err := s.fetchAll(ctx, tasks)
	if err != nil {
		return model.RunSummary{}, err
	}

	s.printer.Section("Exporting to CSV")
	records, err := s.writeAll(runID, dashboard, results)
	if err != nil {
		return model.RunSummary{}, err
	}

	if err := s.repo.CreateBatch(ctx, records); err != nil {
		logger.Error().Err(err).Int("records", len(records)).Msg("failed to record exports in ledger")
	}

	summary := model.RunSummary{
		RunID:         runID,
		DashboardID:   dashboard.ID,
		DashboardName: dashboard.Name,
		MetricsFound:  len(tasks),
		FilesWritten:  make([]string, 0, len(records)),
		FinishedAt:    s.now().UTC(),
	}
	for _, rec := range records {
		summary.FilesWritten = append(summary.FilesWritten, rec.FilePath)
	}

	logger.Info().Int("files", len(summary.FilesWritten)).Msg("export finished")
	return summary, nil
}

// fetchAll queries the tasks in discovery order and stops at the first failure.
func (s *exportService) fetchAll(ctx context.Context, tasks []model.MetricFetchTask) ([]model.MetricResult, error) {
	results := make([]model.MetricResult, 0, len(tasks))
	for i, task := range tasks {
		index := i + 1

		body, err := s.client.QueryMetricCSV(ctx, task.Selector, task.Resolution)
		if err != nil {
			return nil, fmt.Errorf("fetch metric %d %q: %w", index, task.Selector, err)
		}

		name := extract.DeriveMetricName(task.Selector)
		lines := strings.Count(body, "\n")
		s.printer.Fetched(index, name, lines)
		log.Debug().Int("index", index).Str("metric", name).Int("lines", lines).Msg("metric fetched")

		results = append(results, model.MetricResult{
			TileName:   task.TileName,
			MetricName: name,
			Selector:   task.Selector,
			Resolution: task.Resolution,
			Body:       body,
		})
	}
	return results, nil
}

func (s *exportService) writeAll(runID string, dashboard model.Dashboard, results []model.MetricResult) ([]model.ExportRecord, error) {
	namer := output.NewNamer(s.opts.OutputDir, s.opts.Tenant, dashboard.Name)
	writer := s.newWriter(namer)

	log.Info().Str("tenant", s.opts.Tenant).Str("dir", namer.Dir()).Msg("writing csv files")
	if err := writer.Prepare(); err != nil {
		return nil, err
	}

	records := make([]model.ExportRecord, 0, len(results))
	for i, result := range results {
		index := i + 1

		path, err := writer.Write(index, result)
		if err != nil {
			return nil, err
		}
		s.printer.Writing(index, path)

		records = append(records, model.ExportRecord{
			RunID:         runID,
			Tenant:        s.opts.Tenant,
			DashboardID:   dashboard.ID,
			DashboardName: dashboard.Name,
			Index:         index,
			TileName:      result.TileName,
			MetricName:    result.MetricName,
			Selector:      result.Selector,
			Resolution:    result.Resolution,
			FilePath:      path,
			Bytes:         len(result.Body),
			Lines:         strings.Count(result.Body, "\n"),
			Checksum:      xxhash.Sum64String(result.Body),
			ExportedAt:    s.now().UTC(),
		})
	}
	return records, nil
}
