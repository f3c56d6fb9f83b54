package api

import (
	"austinhousing/server/internal/observability"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	AllowedOrigins []string

	// Directory holding index.html and its statics/ folder
	StaticDir string
}

func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), observability.Middleware(), corsMiddleware(opts.AllowedOrigins))

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", observability.Handler())

	SetupRoutes(router, handler)

	if opts.StaticDir != "" {
		router.StaticFile("/", filepath.Join(opts.StaticDir, "index.html"))
		router.Static("/statics", filepath.Join(opts.StaticDir, "statics"))
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	api.Use(ETag())
	{
		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/zipcodes", handler.GetZipcodes)
		api.GET("/metrics", handler.GetMetrics)
		api.GET("/ranking", handler.GetRanking)
		api.GET("/metadata/:zipcode", handler.GetMetadata)
		api.GET("/map", handler.GetMap)
		api.POST("/reload", handler.ReloadDatasets)

		api.POST("/sessions", handler.StartSession)
		api.POST("/sessions/:id/metric", handler.SelectMetric)
		api.POST("/sessions/:id/zipcode", handler.SelectZipcode)
		api.DELETE("/sessions/:id", handler.CloseSession)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "If-None-Match"}
	cfg.ExposeHeaders = []string{"ETag"}

	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			allowed = append(allowed, t)
		}
	}
	if len(allowed) == 0 || contains(allowed, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowed
	}
	return cors.New(cfg)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
