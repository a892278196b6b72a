package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"dashboard-csv-exporter/internal/model"
)

// Writer persists fetched series under a Namer's directory.
type Writer interface {
	// Prepare creates the output directory.
	Prepare() error

	// Write stores one result body verbatim and returns the file path.
	Write(index int, result model.MetricResult) (string, error)
}

type fileWriter struct {
	namer *Namer
}

// NewFileWriter returns a Writer backed by the local filesystem.
func NewFileWriter(namer *Namer) Writer {
	return &fileWriter{namer: namer}
}

func (w *fileWriter) Prepare() error {
	return w.namer.EnsureDir()
}

func (w *fileWriter) Write(index int, result model.MetricResult) (string, error) {
	path := w.namer.Path(index, result.TileName, result.MetricName)
	if err := os.WriteFile(path, []byte(result.Body), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteDashboardJSON pretty prints the raw dashboard document to path.
func WriteDashboardJSON(path string, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return fmt.Errorf("indent dashboard json: %w", err)
	}
	buf.WriteByte('\n')

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
