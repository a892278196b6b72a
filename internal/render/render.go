package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"dashboard-csv-exporter/internal/model"
)

const defaultWidth = 80

// Printer writes the human readable view of an export run. It only formats;
// nothing it prints is parsed back.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter returns a Printer sized to the terminal behind out, or 80 columns
// when out is not a terminal.
func NewPrinter(out io.Writer) *Printer {
	return NewPrinterWidth(out, terminalWidth(out))
}

// NewPrinterWidth returns a Printer with a fixed line width.
func NewPrinterWidth(out io.Writer, width int) *Printer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Printer{out: out, width: width}
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return defaultWidth
	}
	return cols
}

// Width is the line width the printer wraps to.
func (p *Printer) Width() int {
	return p.width
}

// Section prints a full-width rule followed by a title.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, strings.Repeat("=", p.width))
	fmt.Fprintln(p.out, title)
}

// Dashboard prints the shared dashboard properties.
func (p *Printer) Dashboard(d model.Dashboard) {
	fmt.Fprintf(p.out, "Id: %s\nDashboard: %s\nTime frame: %s\nManagement Zone: %s\nTotal Tiles: %d\n",
		d.ID, d.Name, d.Timeframe, d.ManagementZone, len(d.Tiles))
}

// Tile prints one tile and its structured queries. hasFilter reports whether a
// query's filterBy is populated.
func (p *Printer) Tile(t model.Tile, hasFilter func(model.Query) bool) {
	fmt.Fprintln(p.out, strings.Repeat("=", p.width))

	expr := ""
	if first := t.FirstExpression(); first != "" {
		expr = Wrap(first, p.width-22, 22)
	}
	filter := "None"
	if len(t.TileFilter) > 0 {
		filter = string(t.TileFilter)
	}

	fmt.Fprintf(p.out, "Tile: %s\n", t.Name)
	fmt.Fprintf(p.out, "   Type:              %s\n", t.TileType)
	fmt.Fprintf(p.out, "   Filter:            %s\n", filter)
	fmt.Fprintf(p.out, "   Queries:           %d\n", len(t.Queries))
	fmt.Fprintf(p.out, "   Metric Expression: %s\n", strings.TrimSuffix(expr, "\n"))

	for _, q := range t.Queries {
		p.query(q, hasFilter(q))
	}
}

func (p *Printer) query(q model.Query, hasFilter bool) {
	filterBy := "None"
	if hasFilter {
		filterBy = strings.TrimSuffix(Wrap(string(q.FilterBy), p.width-25, 25), "\n")
	}
	limit := "None"
	if q.Limit != nil {
		limit = fmt.Sprint(*q.Limit)
	}
	enabled := "None"
	if q.Enabled != nil {
		enabled = fmt.Sprint(*q.Enabled)
	}

	fmt.Fprintf(p.out, "ID: %s\n", q.ID)
	fmt.Fprintf(p.out, "   Metric: %s\n", q.Metric)
	fmt.Fprintf(p.out, "     Space Agg:          %s\n", q.SpaceAggregation)
	fmt.Fprintf(p.out, "     Time agg:           %s\n", q.TimeAggregation)
	fmt.Fprintf(p.out, "     SplitBy:            %v\n", q.SplitBy)
	fmt.Fprintf(p.out, "     SortBy:             %s\n", q.SortBy)
	fmt.Fprintf(p.out, "     FilterBy:           %s\n", filterBy)
	fmt.Fprintf(p.out, "     Limit:              %s\n", limit)
	fmt.Fprintf(p.out, "     MetricSelector:     %s\n", q.MetricSelector)
	fmt.Fprintf(p.out, "     foldTransformation: %s\n", q.FoldTransformation)
	fmt.Fprintf(p.out, "     enabled:            %s\n", enabled)
}

// MetricList prints the numbered selectors about to be fetched.
func (p *Printer) MetricList(tasks []model.MetricFetchTask) {
	for i, task := range tasks {
		fmt.Fprintf(p.out, "%d: %s", i+1, Wrap(task.Selector, p.width-4, 4))
	}
}

// Fetched prints the status line of one fetched series.
func (p *Printer) Fetched(index int, metricName string, lines int) {
	fmt.Fprintf(p.out, "%d: %-60s ✅ (%d lines)\n", index, metricName, lines)
}

// Writing prints the destination of one CSV file.
func (p *Printer) Writing(index int, path string) {
	fmt.Fprintf(p.out, "%d: Writing to %s\n", index, path)
}
