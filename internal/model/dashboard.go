package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// TileTypeDataExplorer is the only tile type that carries metric queries.
	TileTypeDataExplorer = "DATA_EXPLORER"

	DefaultTimeframe      = "-2h"
	DefaultManagementZone = "all"
)

// Dashboard is the parsed dashboard document. It is not modified after parsing.
type Dashboard struct {
	ID             string
	Name           string
	Timeframe      string
	ManagementZone string
	Tiles          []Tile
}

// Tile is one visual element of a dashboard.
type Tile struct {
	Name              string          `json:"name"`
	TileType          string          `json:"tileType"`
	TileFilter        json.RawMessage `json:"tileFilter,omitempty"`
	MetricExpressions ExpressionList  `json:"metricExpressions,omitempty"`
	Queries           []Query         `json:"queries,omitempty"`
}

// FirstExpression returns the legacy metric expression of the tile. Only the
// first entry is ever used.
func (t Tile) FirstExpression() string {
	if len(t.MetricExpressions) == 0 {
		return ""
	}
	return t.MetricExpressions[0]
}

// Query is one structured metric request of a data explorer tile.
type Query struct {
	ID                 string          `json:"id"`
	Metric             string          `json:"metric"`
	SpaceAggregation   string          `json:"spaceAggregation"`
	TimeAggregation    string          `json:"timeAggregation"`
	SplitBy            []string        `json:"splitBy"`
	SortBy             string          `json:"sortBy"`
	FilterBy           json.RawMessage `json:"filterBy,omitempty"`
	Limit              *int            `json:"limit"`
	MetricSelector     string          `json:"metricSelector"`
	FoldTransformation string          `json:"foldTransformation"`
	Enabled            *bool           `json:"enabled"`
}

// ExpressionList holds metric expressions. Some dashboard revisions store a
// single string, others a list of strings.
type ExpressionList []string

// UnmarshalJSON accepts a string, a list of strings or null.
func (e *ExpressionList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*e = nil
		return nil
	}

	if trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return fmt.Errorf("decode metric expression: %w", err)
		}
		*e = ExpressionList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return fmt.Errorf("decode metric expressions: %w", err)
	}
	*e = list
	return nil
}

type dashboardDocument struct {
	ID                string `json:"id"`
	DashboardMetadata struct {
		Name string `json:"name"`
	} `json:"dashboardMetadata"`
	DashboardFilter *struct {
		Timeframe      string          `json:"timeframe"`
		ManagementZone json.RawMessage `json:"managementZone"`
	} `json:"dashboardFilter"`
	Tiles []Tile `json:"tiles"`
}

// ParseDashboard decodes the raw dashboard JSON returned by the config API.
func ParseDashboard(data []byte) (Dashboard, error) {
	var doc dashboardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Dashboard{}, fmt.Errorf("decode dashboard: %w", err)
	}

	dashboard := Dashboard{
		ID:             doc.ID,
		Name:           doc.DashboardMetadata.Name,
		Timeframe:      DefaultTimeframe,
		ManagementZone: DefaultManagementZone,
		Tiles:          doc.Tiles,
	}

	if doc.DashboardFilter != nil {
		if doc.DashboardFilter.Timeframe != "" {
			dashboard.Timeframe = doc.DashboardFilter.Timeframe
		}
		if zone := managementZoneName(doc.DashboardFilter.ManagementZone); zone != "" {
			dashboard.ManagementZone = zone
		}
	}

	return dashboard, nil
}

// managementZoneName accepts either a plain string or a {"id","name"} object.
func managementZoneName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}

	var zone struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &zone); err != nil {
		return ""
	}
	if zone.Name != "" {
		return zone.Name
	}
	return zone.ID
}
