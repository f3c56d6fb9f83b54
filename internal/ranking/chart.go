package ranking

import (
	"austinhousing/server/internal/models"
	"fmt"
)

// BarTrace is the single trace of the ranking chart, in the shape the
// charting library on the page consumes.
type BarTrace struct {
	Y           []string  `json:"y"`
	X           []float64 `json:"x"`
	Text        []string  `json:"text"`
	Type        string    `json:"type"`
	Orientation string    `json:"orientation"`
	HoverInfo   string    `json:"hoverinfo"`
}

type AxisTitle struct {
	Title string `json:"title"`
}

type Margin struct {
	T int `json:"t"`
}

type Layout struct {
	Title  string    `json:"title"`
	XAxis  AxisTitle `json:"xaxis"`
	Margin Margin    `json:"margin"`
}

// BarChart is a complete chart: rendering it replaces the previous one.
type BarChart struct {
	Metric  models.Metric `json:"metric"`
	Ranking []Entry       `json:"ranking"`
	Data    []BarTrace    `json:"data"`
	Layout  Layout        `json:"layout"`
}

// BuildBarChart ranks the records by the metric and lays the top n out as
// a horizontal bar chart. Bars are listed smallest first because the chart
// draws the first category at the bottom, which puts the largest on top.
func BuildBarChart(records []models.AggregateRecord, metric models.Metric, label string, n int) (*BarChart, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked, err := Rank(records, metric, n)
	if err != nil {
		return nil, err
	}
	if label == "" {
		label = string(metric)
	}

	trace := BarTrace{
		Y:           make([]string, len(ranked)),
		X:           make([]float64, len(ranked)),
		Text:        make([]string, len(ranked)),
		Type:        "bar",
		Orientation: "h",
		HoverInfo:   "text",
	}
	for i, e := range ranked {
		j := len(ranked) - 1 - i
		trace.Y[j] = "ZIP " + e.Zipcode.String()
		trace.X[j] = e.Value
		trace.Text[j] = HoverText(e.Record, metric)
	}

	return &BarChart{
		Metric:  metric,
		Ranking: ranked,
		Data:    []BarTrace{trace},
		Layout: Layout{
			Title:  fmt.Sprintf("Top %d Zipcodes by %s", n, label),
			XAxis:  AxisTitle{Title: label + " ($)"},
			Margin: Margin{T: 30},
		},
	}, nil
}
