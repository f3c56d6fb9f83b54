package dashboard

import (
	"austinhousing/server/config"
	"austinhousing/server/internal/dataset"
	"austinhousing/server/internal/mapview"
	"austinhousing/server/internal/metadata"
	"austinhousing/server/internal/models"
	"austinhousing/server/internal/observability"
	"austinhousing/server/internal/ranking"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// Options tune the views. Zero values fall back to the defaults.
type Options struct {
	DefaultMetric models.Metric
	TopN          int
	CacheSize     int
	SessionLimit  int
	Viewport      config.Viewport
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DefaultMetric: models.Metric(cfg.Dashboard.DefaultMetric),
		TopN:          cfg.Dashboard.TopN,
		CacheSize:     cfg.Dashboard.CacheSize,
		SessionLimit:  cfg.Dashboard.SessionLimit,
		Viewport:      cfg.Viewport(),
	}
}

type chartKey struct {
	metric     models.Metric
	generation uint64
}

// Dashboard renders the three views from the store. Every view is a pure
// function of the loaded data and the selection passed in.
type Dashboard struct {
	store  *dataset.Store
	logger *logrus.Logger
	opts   Options
	charts *lru.Cache[chartKey, *ranking.BarChart]

	sessions *Sessions
}

func New(store *dataset.Store, opts Options, logger *logrus.Logger) *Dashboard {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if !opts.DefaultMetric.Valid() {
		opts.DefaultMetric = models.DefaultMetric
	}
	if opts.TopN <= 0 {
		opts.TopN = ranking.DefaultTopN
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 16
	}
	if opts.SessionLimit <= 0 {
		opts.SessionLimit = 1024
	}
	if len(opts.Viewport.Center) != 2 {
		opts.Viewport = config.DefaultViewport
	}

	charts, _ := lru.New[chartKey, *ranking.BarChart](opts.CacheSize)
	d := &Dashboard{
		store:  store,
		logger: logger,
		opts:   opts,
		charts: charts,
	}
	d.sessions = newSessions(d, opts.SessionLimit)
	return d
}

// Sessions returns the registry of open browser sessions.
func (d *Dashboard) Sessions() *Sessions {
	return d.sessions
}

func (d *Dashboard) DefaultMetric() models.Metric {
	return d.opts.DefaultMetric
}

// Zipcodes returns the ZIP code selector options in dataset order.
func (d *Dashboard) Zipcodes() ([]models.Zipcode, error) {
	return d.store.Zipcodes()
}

// InitialSelection selects the first ZIP code of the dataset and the
// default metric.
func (d *Dashboard) InitialSelection() (models.SelectionState, error) {
	zipcodes, err := d.store.Zipcodes()
	if err != nil {
		return models.SelectionState{}, err
	}
	state := models.SelectionState{ActiveMetric: d.opts.DefaultMetric}
	if len(zipcodes) > 0 {
		state.ActiveZipcode = zipcodes[0]
	}
	return state, nil
}

// Ranking renders the bar chart for a metric.
func (d *Dashboard) Ranking(metric models.Metric) (*ranking.BarChart, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownMetric, string(metric))
	}

	records, generation, err := d.store.AggregatesSnapshot()
	if err != nil {
		return nil, err
	}

	key := chartKey{metric: metric, generation: generation}
	if chart, ok := d.charts.Get(key); ok {
		observability.ObserveRenderCache(true)
		return chart, nil
	}
	observability.ObserveRenderCache(false)

	chart, err := ranking.BuildBarChart(records, metric, config.MetricLabel(string(metric)), d.opts.TopN)
	if err != nil {
		return nil, err
	}
	d.charts.Add(key, chart)
	return chart, nil
}

// Metadata renders the panel for a ZIP code. A missing ZIP code is logged
// and returned as metadata.ErrZipcodeNotFound.
func (d *Dashboard) Metadata(zipcode string) (*metadata.Panel, error) {
	records, err := d.store.Aggregates()
	if err != nil {
		d.logger.WithError(err).WithField("zipcode", zipcode).Error("Grouped data unavailable for metadata")
		return nil, err
	}

	panel, err := metadata.Lookup(records, zipcode)
	if err != nil {
		observability.IncLookupMiss()
		d.logger.WithField("zipcode", zipcode).Error("Zipcode not found in grouped data")
		return nil, err
	}
	return panel, nil
}

// Map renders the property map.
func (d *Dashboard) Map() (*mapview.MapView, error) {
	details, err := d.store.Details()
	if err != nil {
		return nil, err
	}
	return mapview.Build(details, d.opts.Viewport), nil
}

// PurgeCache drops every memoized chart.
func (d *Dashboard) PurgeCache() {
	d.charts.Purge()
}
