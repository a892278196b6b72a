package repository

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"dashboard-csv-exporter/internal/model"
)

// ExportRepository records written CSV files in the export ledger.
type ExportRepository interface {
	// CreateBatch inserts the records of one run in a single batch.
	CreateBatch(ctx context.Context, records []model.ExportRecord) error
}

type exportRepository struct {
	conn clickhouse.Conn
}

// NewExportRepository creates an ExportRepository backed by ClickHouse.
func NewExportRepository(conn clickhouse.Conn) ExportRepository {
	return &exportRepository{conn: conn}
}

const insertExportQuery = `INSERT INTO dashboard_exports (run_id, tenant, dashboard_id, dashboard_name, idx, tile_name, metric_name, metric_selector, resolution, file_path, bytes, lines, checksum, exported_at)`

func (r *exportRepository) CreateBatch(ctx context.Context, records []model.ExportRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertExportQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, rec := range records {
		err := batch.Append(
			rec.RunID,
			rec.Tenant,
			rec.DashboardID,
			rec.DashboardName,
			uint32(rec.Index),
			rec.TileName,
			rec.MetricName,
			rec.Selector,
			rec.Resolution,
			rec.FilePath,
			uint64(rec.Bytes),
			uint64(rec.Lines),
			rec.Checksum,
			rec.ExportedAt,
		)
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

type noopExportRepository struct{}

// NewNoopExportRepository returns an ExportRepository that discards records.
// It is used when no ClickHouse address is configured.
func NewNoopExportRepository() ExportRepository {
	return noopExportRepository{}
}

func (noopExportRepository) CreateBatch(context.Context, []model.ExportRecord) error {
	return nil
}
