package extract

import "regexp"

// Labels returned by DeriveMetricName when a selector is not a single metric.
const (
	CalcMetrics     = "calc_metrics"
	MultipleMetrics = "multiple_metrics"
	EmptyMetric     = "empty"
)

var (
	// ")" then an arithmetic operator then "(" or a number
	calcOperatorRe = regexp.MustCompile(`\)\s*[-+/*]\s*(\(|\s*\d)`)

	metricRefRe = regexp.MustCompile(`(?:\()([a-z]+?:[^:]+|com[^:]+|iis[^:]+)`)
)

// DeriveMetricName returns a short label for a metric selector: calc_metrics for
// arithmetic between expressions, multiple_metrics when more than one metric is
// referenced, the metric key when exactly one is, and empty otherwise.
// The label is not sanitized for file names.
func DeriveMetricName(selector string) string {
	if calcOperatorRe.MatchString(selector) {
		return CalcMetrics
	}

	matches := metricRefRe.FindAllStringSubmatch(selector, -1)
	switch {
	case len(matches) > 1:
		return MultipleMetrics
	case len(matches) == 1:
		return matches[0][1]
	default:
		return EmptyMetric
	}
}
