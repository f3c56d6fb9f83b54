package models

import (
	"errors"
	"fmt"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Metric is one of the aggregate fields ZIP codes can be ranked by.
type Metric string

const (
	MetricLatestPrice  Metric = "avg_latestPrice"
	MetricPricePerSqft Metric = "avg_price_per_sqft"
	MetricHouseAge     Metric = "avg_house_age"
	MetricSchoolRating Metric = "avg_school_rating"

	DefaultMetric = MetricLatestPrice
)

// Metrics lists the rankable metrics in selector order.
var Metrics = []Metric{
	MetricLatestPrice,
	MetricPricePerSqft,
	MetricHouseAge,
	MetricSchoolRating,
}

// ParseMetric converts a selector value into a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
	return m, nil
}

func (m Metric) Valid() bool {
	switch m {
	case MetricLatestPrice, MetricPricePerSqft, MetricHouseAge, MetricSchoolRating:
		return true
	default:
		return false
	}
}

// Value returns the record's value for the metric. Unknown metrics yield 0.
func (m Metric) Value(r *AggregateRecord) float64 {
	switch m {
	case MetricLatestPrice:
		return r.AvgLatestPrice
	case MetricPricePerSqft:
		return r.AvgPricePerSqft
	case MetricHouseAge:
		return r.AvgHouseAge
	case MetricSchoolRating:
		return r.AvgSchoolRating
	default:
		return 0
	}
}

func (m Metric) String() string {
	return string(m)
}

// SelectionState is what the user currently has selected in the dashboard.
type SelectionState struct {
	ActiveZipcode Zipcode `json:"active_zipcode"`
	ActiveMetric  Metric  `json:"active_metric"`
}
