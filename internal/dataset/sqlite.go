package dataset

import (
	"austinhousing/server/internal/models"
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteSource reads both datasets from the housing_data_grouped and
// housing_data_details tables of a SQLite file. It never writes.
type SQLiteSource struct {
	db *gorm.DB
}

func NewSQLiteSource(path string) (*SQLiteSource, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite dataset %s: %w", path, err)
	}
	return &SQLiteSource{db: db}, nil
}

func NewSQLiteSourceFromDB(db *gorm.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

func (s *SQLiteSource) LoadAggregates(ctx context.Context) ([]models.AggregateRecord, error) {
	var records []models.AggregateRecord
	if err := s.db.WithContext(ctx).Order("rowid").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, models.AggregateRecord{}.TableName(), err)
	}
	return records, nil
}

func (s *SQLiteSource) LoadDetails(ctx context.Context) ([]models.DetailRecord, error) {
	var records []models.DetailRecord
	if err := s.db.WithContext(ctx).Order("rowid").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, models.DetailRecord{}.TableName(), err)
	}
	return records, nil
}

func (s *SQLiteSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
