package dataset

import (
	"austinhousing/server/internal/models"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ptr(v float64) *float64 {
	return &v
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "housing.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AggregateRecord{}, &models.DetailRecord{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSQLiteSource(t *testing.T) {
	db := setupTestDB(t)

	grouped := []models.AggregateRecord{
		{Zipcode: "78745", AvgLatestPrice: 390000, AvgHouseAge: 38},
		{Zipcode: "78701", AvgLatestPrice: 720000, AvgHouseAge: 12},
	}
	details := []models.DetailRecord{
		{Latitude: ptr(30.2), Longitude: ptr(-97.8), LatestPrice: 390000, YearBuilt: 1985},
		{LatestPrice: 150000, YearBuilt: 1970},
	}
	require.NoError(t, db.Create(&grouped).Error)
	require.NoError(t, db.Create(&details).Error)

	src := NewSQLiteSourceFromDB(db)

	aggregates, err := src.LoadAggregates(context.Background())
	require.NoError(t, err)
	require.Len(t, aggregates, 2)
	assert.Equal(t, models.Zipcode("78745"), aggregates[0].Zipcode, "rows keep insertion order")
	assert.Equal(t, 720000.0, aggregates[1].AvgLatestPrice)

	loaded, err := src.LoadDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.True(t, loaded[0].HasCoordinates())
	assert.False(t, loaded[1].HasCoordinates())
}

func TestSQLiteSourceMissingTable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "empty.db")), &gorm.Config{})
	require.NoError(t, err)

	src := NewSQLiteSourceFromDB(db)
	_, err = src.LoadAggregates(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
	assert.NoError(t, src.Close())
}

func TestSQLiteSourceNumericZipcodes(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "numeric.db")), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, db.Exec(`CREATE TABLE housing_data_grouped (
		zipcode INTEGER,
		avg_latestPrice REAL,
		avg_price_per_sqft REAL,
		avg_house_age REAL,
		avg_school_rating REAL,
		avg_school_size REAL
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO housing_data_grouped VALUES (78701, 720000, 410, 12, 8, 1100)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO housing_data_grouped VALUES (78745.0, 390000, 250, 38, 6, 1400)`).Error)

	aggregates, err := NewSQLiteSourceFromDB(db).LoadAggregates(context.Background())
	require.NoError(t, err)
	require.Len(t, aggregates, 2)
	assert.Equal(t, models.Zipcode("78701"), aggregates[0].Zipcode)
	assert.Equal(t, models.Zipcode("78745"), aggregates[1].Zipcode)
	assert.Equal(t, 720000.0, aggregates[0].AvgLatestPrice)
}
