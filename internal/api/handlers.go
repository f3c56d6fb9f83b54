package api

import (
	"austinhousing/server/config"
	"austinhousing/server/internal/dashboard"
	"austinhousing/server/internal/dataset"
	"austinhousing/server/internal/mapview"
	"austinhousing/server/internal/metadata"
	"austinhousing/server/internal/models"
	"austinhousing/server/internal/ranking"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	store     *dataset.Store
	dashboard *dashboard.Dashboard
	logger    *logrus.Logger
}

func NewHandler(store *dataset.Store, dash *dashboard.Dashboard, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		store:     store,
		dashboard: dash,
		logger:    logger,
	}
}

// dashboardState is the initial page state: the selector options, the
// selection and the two aggregate-driven views.
type dashboardState struct {
	Session   string                `json:"session,omitempty"`
	Zipcodes  []models.Zipcode      `json:"zipcodes"`
	Metrics   []config.MetricOption `json:"metrics"`
	Selection models.SelectionState `json:"selection"`
	Chart     *ranking.BarChart     `json:"chart"`
	Panel     *metadata.Panel       `json:"panel"`
	Map       *mapview.MapView      `json:"map,omitempty"`
}

func sessionState(id string, result dashboard.InitResult) dashboardState {
	return dashboardState{
		Session:   id,
		Zipcodes:  result.Zipcodes,
		Metrics:   config.MetricOptions,
		Selection: result.Selection,
		Chart:     result.Chart,
		Panel:     result.Panel,
		Map:       result.Map,
	}
}

// GetDashboard runs a page load and applies the optional metric and
// zipcode query parameters as selection events.
func (h *Handler) GetDashboard(c *gin.Context) {
	var metric models.Metric
	if m := c.Query("metric"); m != "" {
		parsed, err := models.ParseMetric(m)
		if err != nil {
			h.respondError(c, err, "Invalid metric")
			return
		}
		metric = parsed
	}

	session := h.dashboard.NewSession()
	result := session.Init(c.Request.Context())
	if result.AggregateErr != nil {
		h.respondError(c, result.AggregateErr, "Failed to get dashboard")
		return
	}

	if metric != "" {
		if _, err := session.MetricChanged(metric); err != nil {
			h.respondError(c, err, "Failed to build ranking")
			return
		}
	}
	if z := c.Query("zipcode"); z != "" {
		if _, err := session.ZipcodeChanged(z); err != nil && !errors.Is(err, metadata.ErrZipcodeNotFound) {
			h.respondError(c, err, "Failed to build metadata")
			return
		}
	}

	c.JSON(http.StatusOK, dashboardState{
		Zipcodes:  result.Zipcodes,
		Metrics:   config.MetricOptions,
		Selection: session.Selection(),
		Chart:     session.Chart(),
		Panel:     session.Panel(),
	})
}

// StartSession opens a session, runs its page load and returns the full
// initial state including the map. A failed map load is reported in
// mapError while the aggregate views are still returned.
func (h *Handler) StartSession(c *gin.Context) {
	id, result := h.dashboard.Sessions().Start(c.Request.Context())
	if result.AggregateErr != nil {
		h.dashboard.Sessions().Close(id)
		h.respondError(c, result.AggregateErr, "Failed to start session")
		return
	}

	response := gin.H{"state": sessionState(id, result)}
	if result.MapErr != nil {
		h.logger.WithError(result.MapErr).WithField("session", id).Warn("Session started without map")
		response["mapError"] = result.MapErr.Error()
	}
	c.JSON(http.StatusCreated, response)
}

type metricEvent struct {
	Metric string `json:"metric" binding:"required"`
}

type zipcodeEvent struct {
	Zipcode models.Zipcode `json:"zipcode" binding:"required"`
}

// SelectMetric re-renders the session's ranking for a new metric.
func (h *Handler) SelectMetric(c *gin.Context) {
	var event metricEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	chart, selection, err := h.dashboard.Sessions().MetricChanged(c.Param("id"), models.Metric(event.Metric))
	if err != nil {
		h.respondError(c, err, "Failed to change metric")
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": selection, "chart": chart})
}

// SelectZipcode re-renders the session's metadata panel for a new ZIP code.
func (h *Handler) SelectZipcode(c *gin.Context) {
	var event zipcodeEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	panel, selection, err := h.dashboard.Sessions().ZipcodeChanged(c.Param("id"), event.Zipcode.String())
	if err != nil {
		h.respondError(c, err, "Failed to change zipcode")
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": selection, "panel": panel})
}

func (h *Handler) CloseSession(c *gin.Context) {
	if !h.dashboard.Sessions().Close(c.Param("id")) {
		h.respondError(c, dashboard.ErrSessionNotFound, "Failed to close session")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetZipcodes(c *gin.Context) {
	zipcodes, err := h.dashboard.Zipcodes()
	if err != nil {
		h.respondError(c, err, "Failed to get zipcodes")
		return
	}
	c.JSON(http.StatusOK, zipcodes)
}

func (h *Handler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, config.MetricOptions)
}

func (h *Handler) GetRanking(c *gin.Context) {
	metric := h.dashboard.DefaultMetric()
	if m := c.Query("metric"); m != "" {
		parsed, err := models.ParseMetric(m)
		if err != nil {
			h.respondError(c, err, "Invalid metric")
			return
		}
		metric = parsed
	}

	chart, err := h.dashboard.Ranking(metric)
	if err != nil {
		h.respondError(c, err, "Failed to build ranking")
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (h *Handler) GetMetadata(c *gin.Context) {
	zipcode := c.Param("zipcode")
	panel, err := h.dashboard.Metadata(zipcode)
	if err != nil {
		h.respondError(c, err, "Failed to get metadata")
		return
	}
	c.JSON(http.StatusOK, panel)
}

func (h *Handler) GetMap(c *gin.Context) {
	view, err := h.dashboard.Map()
	if err != nil {
		h.respondError(c, err, "Failed to build map")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ReloadDatasets(c *gin.Context) {
	result := h.store.Reload(c.Request.Context())
	h.dashboard.PurgeCache()

	response := gin.H{"datasets": h.store.Status()}
	if !result.OK() {
		response["status"] = "Reload finished with errors"
		c.JSON(http.StatusBadGateway, response)
		return
	}
	response["status"] = "Datasets reloaded successfully"
	c.JSON(http.StatusOK, response)
}

func (h *Handler) Health(c *gin.Context) {
	status := h.store.Status()
	code := http.StatusOK
	for _, st := range status {
		if !st.Loaded {
			code = http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{"datasets": status})
}

// respondError maps view errors onto HTTP statuses. Not-found and bad
// metric errors are the caller's; an unloaded dataset is a 503.
func (h *Handler) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, models.ErrUnknownMetric):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, metadata.ErrZipcodeNotFound), errors.Is(err, dashboard.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, dataset.ErrNotLoaded):
		h.logger.WithError(err).Error(message)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dataset not loaded"})
	default:
		h.logger.WithError(err).Error(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
