package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Namer builds output paths for one dashboard:
// <root>/<tenant>/<dashboard>/<index>_[<tile>]_<metric>.csv
// The 1-based index keeps names unique when tile and metric labels collide.
type Namer struct {
	root      string
	tenant    string
	dashboard string
}

// NewNamer returns a Namer rooted at root.
func NewNamer(root, tenant, dashboardName string) *Namer {
	return &Namer{
		root:      root,
		tenant:    tenant,
		dashboard: SanitizeDashboardName(dashboardName),
	}
}

// Dir is the directory all files of the dashboard are written to.
func (n *Namer) Dir() string {
	return filepath.Join(n.root, n.tenant, n.dashboard)
}

// EnsureDir creates Dir and its parents. An existing directory is not an error.
func (n *Namer) EnsureDir() error {
	if err := os.MkdirAll(n.Dir(), 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", n.Dir(), err)
	}
	return nil
}

// Path returns the file path for the index-th result.
func (n *Namer) Path(index int, tileName, metricName string) string {
	return filepath.Join(n.Dir(), FileName(index, tileName, metricName))
}

// FileName returns the base name for the index-th result.
func FileName(index int, tileName, metricName string) string {
	return fmt.Sprintf("%d_[%s]_%s.csv", index, SanitizeTileName(tileName), SanitizeMetricName(metricName))
}

func SanitizeDashboardName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

func SanitizeTileName(name string) string {
	return strings.NewReplacer(" ", "_", "/", "_").Replace(name)
}

func SanitizeMetricName(name string) string {
	return strings.ReplaceAll(name, ":", "_")
}
