package main

import (
	"austinhousing/server/config"
	"austinhousing/server/internal/api"
	"austinhousing/server/internal/dashboard"
	"austinhousing/server/internal/dataset"
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.Log.Level).Warn("Unknown log level, using info")
	}
	gin.SetMode(cfg.Server.GinMode)

	// Pick the dataset source
	var source dataset.Source
	if cfg.Datasets.SQLitePath != "" {
		sqliteSource, err := dataset.NewSQLiteSource(cfg.Datasets.SQLitePath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open SQLite dataset")
		}
		defer sqliteSource.Close()
		source = sqliteSource
		logger.Infof("Reading datasets from SQLite: %s", cfg.Datasets.SQLitePath)
	} else {
		source = dataset.NewJSONSource(cfg.Datasets.Grouped, cfg.Datasets.Details, cfg.FetchTimeout())
		logger.WithFields(logrus.Fields{
			"grouped": cfg.Datasets.Grouped,
			"details": cfg.Datasets.Details,
		}).Info("Reading datasets from JSON")
	}

	// Load both datasets once; a failure leaves that view unavailable
	// until a reload succeeds
	store := dataset.NewStore(source, logger)
	if result := store.Load(context.Background()); !result.OK() {
		logger.Warn("Starting with incomplete datasets, use POST /api/reload to retry")
	}

	dash := dashboard.New(store, dashboard.OptionsFromConfig(cfg), logger)
	handler := api.NewHandler(store, dash, logger)
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StaticDir:      cfg.Server.StaticDir,
	})

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
