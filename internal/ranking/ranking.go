package ranking

import (
	"austinhousing/server/internal/format"
	"austinhousing/server/internal/models"
	"fmt"
	"sort"
	"strings"
)

// DefaultTopN is how many ZIP codes the bar chart shows.
const DefaultTopN = 10

// Entry is one ranked ZIP code.
type Entry struct {
	Zipcode models.Zipcode          `json:"zipcode"`
	Value   float64                 `json:"value"`
	Record  *models.AggregateRecord `json:"-"`
}

// Rank orders records by the metric, highest first, and keeps the first n.
// Equal values are ordered by ZIP code ascending. The input is not modified.
func Rank(records []models.AggregateRecord, metric models.Metric, n int) ([]Entry, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownMetric, string(metric))
	}
	if n <= 0 {
		n = DefaultTopN
	}

	entries := make([]Entry, len(records))
	for i := range records {
		entries[i] = Entry{
			Zipcode: records[i].Zipcode,
			Value:   metric.Value(&records[i]),
			Record:  &records[i],
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Zipcode < entries[j].Zipcode
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// metricLines formats the active metric's hover line.
var metricLines = map[models.Metric]func(v float64) string{
	models.MetricLatestPrice: func(v float64) string {
		return "Total Price: $" + format.Thousands(v) + "K USD"
	},
	models.MetricPricePerSqft: func(v float64) string {
		return "Price per square foot: $" + format.Number(v) + " USD"
	},
	models.MetricHouseAge: func(v float64) string {
		return "Average House Age: " + format.Number(v) + " years"
	},
	models.MetricSchoolRating: func(v float64) string {
		return "School Rating: " + format.Number(v)
	},
}

// HoverText builds the tooltip of one bar: the active metric first, then
// the four companion fields, which are shown whatever the metric is.
// The active line keeps the unit of its metric; only prices are shown in
// thousands, so a house age of 20 reads "20 years" and never "0.0K USD".
func HoverText(r *models.AggregateRecord, metric models.Metric) string {
	lines := make([]string, 0, 5)
	if line, ok := metricLines[metric]; ok {
		lines = append(lines, line(metric.Value(r)))
	}
	lines = append(lines,
		"Average House Age: "+format.Number(r.AvgHouseAge)+" years",
		"Price per square foot: $"+format.Number(r.AvgPricePerSqft)+" USD",
		"School Rating: "+format.Number(r.AvgSchoolRating),
		"School Size: "+format.Number(r.AvgSchoolSize)+" students",
	)
	return strings.Join(lines, "<br>")
}
