package extract

import (
	"github.com/rs/zerolog/log"

	"dashboard-csv-exporter/internal/model"
)

// TileKind tags how a tile carries its metrics.
type TileKind int

const (
	KindUnsupported TileKind = iota
	KindStructured
	KindLegacy
)

func (k TileKind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindLegacy:
		return "legacy"
	default:
		return "unsupported"
	}
}

// Classification is the result of inspecting one tile. Queries is set for
// KindStructured, Expression for KindLegacy.
type Classification struct {
	Kind       TileKind
	Queries    []model.Query
	Expression string
}

// Classify decides whether a tile yields structured queries, a legacy
// expression or nothing. Queries win when a tile has both.
func Classify(tile model.Tile) Classification {
	if tile.TileType != model.TileTypeDataExplorer {
		return Classification{Kind: KindUnsupported}
	}
	if len(tile.Queries) > 0 {
		return Classification{Kind: KindStructured, Queries: tile.Queries}
	}
	if expr := tile.FirstExpression(); expr != "" {
		return Classification{Kind: KindLegacy, Expression: expr}
	}
	return Classification{Kind: KindUnsupported}
}

// Extractor turns dashboard tiles into metric fetch tasks.
type Extractor struct {
	defaultResolution string
}

// NewExtractor returns an Extractor. An empty resolution falls back to DefaultResolution.
func NewExtractor(defaultResolution string) *Extractor {
	if defaultResolution == "" {
		defaultResolution = DefaultResolution
	}
	return &Extractor{defaultResolution: defaultResolution}
}

// Extract walks the tiles in order and returns one task per structured query
// or parsable legacy expression.
func (e *Extractor) Extract(dashboard model.Dashboard) []model.MetricFetchTask {
	var tasks []model.MetricFetchTask
	for _, tile := range dashboard.Tiles {
		tasks = append(tasks, e.ExtractTile(tile)...)
	}
	return tasks
}

// ExtractTile returns the fetch tasks of a single tile.
func (e *Extractor) ExtractTile(tile model.Tile) []model.MetricFetchTask {
	c := Classify(tile)
	switch c.Kind {
	case KindStructured:
		tasks := make([]model.MetricFetchTask, 0, len(c.Queries))
		for _, q := range c.Queries {
			tasks = append(tasks, e.NormalizeQuery(tile.Name, q))
		}
		return tasks
	case KindLegacy:
		parsed, ok := ParseExpression(c.Expression)
		if !ok {
			log.Debug().Str("tile", tile.Name).Str("expression", c.Expression).Msg("metric expression not recognised, skipping tile")
			return nil
		}
		return []model.MetricFetchTask{{
			TileName:   tile.Name,
			Selector:   parsed.Selector,
			Resolution: e.resolution(parsed.Resolution),
		}}
	default:
		return nil
	}
}

func (e *Extractor) resolution(token string) string {
	if token == "" || token == "null" {
		if e.defaultResolution == "" {
			return DefaultResolution
		}
		return e.defaultResolution
	}
	return token
}
