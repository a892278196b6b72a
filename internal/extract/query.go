package extract

import (
	"encoding/json"
	"reflect"

	"dashboard-csv-exporter/internal/model"
)

// DefaultResolution is used when a source carries no usable resolution.
const DefaultResolution = "120"

// emptyFilterBy is the shape the dashboard editor stores for a query without a filter.
var emptyFilterBy = map[string]any{
	"filter":          nil,
	"globalEntity":    nil,
	"filterType":      nil,
	"filterOperator":  nil,
	"entityAttribute": nil,
	"relationship":    nil,
	"nestedFilters":   []any{},
	"criteria":        []any{},
}

// HasFilter reports whether the query's filterBy differs from the empty sentinel.
// The comparison is structural: a missing key or any non-null leaf counts as a filter.
// An absent or null filterBy is treated as no filter.
func HasFilter(q model.Query) bool {
	if len(q.FilterBy) == 0 {
		return false
	}

	var filter any
	if err := json.Unmarshal(q.FilterBy, &filter); err != nil {
		return true
	}
	if filter == nil {
		return false
	}
	return !reflect.DeepEqual(filter, emptyFilterBy)
}

// NormalizeQuery turns a structured query into a fetch task. The precomputed
// metricSelector is used as-is.
func (e *Extractor) NormalizeQuery(tileName string, q model.Query) model.MetricFetchTask {
	return model.MetricFetchTask{
		TileName:   tileName,
		Selector:   q.MetricSelector,
		Resolution: e.resolution(""),
	}
}
