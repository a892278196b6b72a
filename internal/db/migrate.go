package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const createExportsTable = `
CREATE TABLE IF NOT EXISTS dashboard_exports
(
	run_id          String,
	tenant          String,
	dashboard_id    String,
	dashboard_name  String,
	idx             UInt32,
	tile_name       String,
	metric_name     String,
	metric_selector String,
	resolution      String,
	file_path       String,
	bytes           UInt64,
	lines           UInt64,
	checksum        UInt64,
	exported_at     DateTime64(3, 'UTC')
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(exported_at)
ORDER BY (tenant, dashboard_id, exported_at, idx)
`

// RunMigrations ensures the export ledger table exists.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	if err := conn.Exec(ctx, createExportsTable); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
