package dashboard

import (
	"austinhousing/server/internal/mapview"
	"austinhousing/server/internal/metadata"
	"austinhousing/server/internal/models"
	"austinhousing/server/internal/ranking"
	"context"
)

// InitResult is what a page load produces. The aggregate side (options,
// chart, panel) and the map fail independently of each other.
type InitResult struct {
	Zipcodes  []models.Zipcode      `json:"zipcodes"`
	Selection models.SelectionState `json:"selection"`
	Chart     *ranking.BarChart     `json:"chart,omitempty"`
	Panel     *metadata.Panel       `json:"panel,omitempty"`
	Map       *mapview.MapView      `json:"map,omitempty"`

	AggregateErr error `json:"-"`
	MapErr       error `json:"-"`
}

// Session follows one user's selection and the views currently on screen.
// It is driven by a single event loop and is not safe for concurrent use.
type Session struct {
	dash      *Dashboard
	selection models.SelectionState
	chart     *ranking.BarChart
	panel     *metadata.Panel
	mapView   *mapview.MapView
}

func (d *Dashboard) NewSession() *Session {
	return &Session{
		dash:      d,
		selection: models.SelectionState{ActiveMetric: d.opts.DefaultMetric},
	}
}

// Init loads the datasets when the store has none yet, then populates the
// ZIP code options, selects the first ZIP code and renders all views.
func (s *Session) Init(ctx context.Context) InitResult {
	if _, err := s.dash.store.Aggregates(); err != nil {
		s.dash.store.Load(ctx)
	} else if _, err := s.dash.store.Details(); err != nil {
		s.dash.store.Load(ctx)
	}

	var result InitResult
	result.Zipcodes, result.AggregateErr = s.dash.Zipcodes()
	if result.AggregateErr == nil {
		selection, _ := s.dash.InitialSelection()
		s.selection = selection

		s.chart, result.AggregateErr = s.dash.Ranking(selection.ActiveMetric)
		if result.AggregateErr == nil && selection.ActiveZipcode != "" {
			s.panel, result.AggregateErr = s.dash.Metadata(selection.ActiveZipcode.String())
		}
	}

	s.mapView, result.MapErr = s.dash.Map()

	result.Selection = s.selection
	result.Chart = s.chart
	result.Panel = s.panel
	result.Map = s.mapView
	return result
}

// MetricChanged re-renders only the ranking chart. On error the previous
// chart and selection stay in place.
func (s *Session) MetricChanged(metric models.Metric) (*ranking.BarChart, error) {
	chart, err := s.dash.Ranking(metric)
	if err != nil {
		return s.chart, err
	}
	s.selection.ActiveMetric = metric
	s.chart = chart
	return chart, nil
}

// ZipcodeChanged re-renders only the metadata panel. The ranking chart is
// driven by the metric and is left alone. When the ZIP code is unknown the
// panel and selection keep their previous state.
func (s *Session) ZipcodeChanged(zipcode string) (*metadata.Panel, error) {
	panel, err := s.dash.Metadata(zipcode)
	if err != nil {
		return s.panel, err
	}
	s.selection.ActiveZipcode = panel.Zipcode
	s.panel = panel
	return panel, nil
}

func (s *Session) Selection() models.SelectionState {
	return s.selection
}

func (s *Session) Chart() *ranking.BarChart {
	return s.chart
}

func (s *Session) Panel() *metadata.Panel {
	return s.panel
}

func (s *Session) Map() *mapview.MapView {
	return s.mapView
}
