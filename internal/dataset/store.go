package dataset

import (
	"austinhousing/server/internal/models"
	"austinhousing/server/internal/observability"
	"context"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	NameGrouped = "grouped"
	NameDetails = "details"
)

// Status describes the load state of one dataset.
type Status struct {
	Loaded  bool   `json:"loaded"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// LoadResult carries the per-dataset errors of one Load. Either may be set
// independently of the other.
type LoadResult struct {
	GroupedErr error
	DetailsErr error
}

func (r LoadResult) OK() bool {
	return r.GroupedErr == nil && r.DetailsErr == nil
}

// Store owns the loaded datasets. It is filled by Load and read by the
// views; a failed load leaves the previously loaded data in place.
type Store struct {
	source Source
	logger *logrus.Logger

	mu         sync.RWMutex
	aggregates []models.AggregateRecord
	details    []models.DetailRecord
	groupedSt  Status
	detailsSt  Status
	generation uint64
}

func NewStore(source Source, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Store{
		source: source,
		logger: logger,
	}
}

// Load fetches both datasets concurrently. Their failures are isolated:
// a failed detail load does not prevent the aggregate data from being used.
func (s *Store) Load(ctx context.Context) LoadResult {
	var (
		wg         sync.WaitGroup
		aggregates []models.AggregateRecord
		details    []models.DetailRecord
		result     LoadResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		aggregates, result.GroupedErr = s.source.LoadAggregates(ctx)
	}()
	go func() {
		defer wg.Done()
		details, result.DetailsErr = s.source.LoadDetails(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if result.GroupedErr != nil {
		s.logger.WithError(result.GroupedErr).Error("Error loading grouped data")
		s.groupedSt.Error = result.GroupedErr.Error()
	} else {
		s.setAggregates(aggregates)
		s.logger.WithField("records", len(aggregates)).Info("Grouped data loaded")
	}
	observability.ObserveDatasetLoad(NameGrouped, len(aggregates), result.GroupedErr)

	if result.DetailsErr != nil {
		s.logger.WithError(result.DetailsErr).Error("Error loading detailed data")
		s.detailsSt.Error = result.DetailsErr.Error()
	} else {
		s.details = details
		s.detailsSt = Status{Loaded: true, Records: len(details)}
		s.logger.WithField("records", len(details)).Info("Detailed data loaded")
	}
	observability.ObserveDatasetLoad(NameDetails, len(details), result.DetailsErr)

	if result.GroupedErr == nil || result.DetailsErr == nil {
		s.generation++
	}
	return result
}

// Reload replaces the loaded datasets with a fresh copy from the source.
func (s *Store) Reload(ctx context.Context) LoadResult {
	s.logger.Info("Reloading datasets")
	return s.Load(ctx)
}

// setAggregates must be called with mu held.
func (s *Store) setAggregates(records []models.AggregateRecord) {
	seen := make(map[models.Zipcode]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.Zipcode]; dup {
			s.logger.WithField("zipcode", r.Zipcode).Warn("Duplicate zipcode in grouped data, lookups use the first")
			continue
		}
		seen[r.Zipcode] = struct{}{}
	}
	s.aggregates = records
	s.groupedSt = Status{Loaded: true, Records: len(records)}
}

// Aggregates returns the loaded aggregate records. The slice must not be
// modified by the caller.
func (s *Store) Aggregates() ([]models.AggregateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.groupedSt.Loaded {
		return nil, ErrNotLoaded
	}
	return s.aggregates, nil
}

// AggregatesSnapshot returns the loaded aggregate records together with the
// generation they belong to, read under a single lock.
func (s *Store) AggregatesSnapshot() ([]models.AggregateRecord, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.groupedSt.Loaded {
		return nil, s.generation, ErrNotLoaded
	}
	return s.aggregates, s.generation, nil
}

// Details returns the loaded detail records. The slice must not be modified
// by the caller.
func (s *Store) Details() ([]models.DetailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.detailsSt.Loaded {
		return nil, ErrNotLoaded
	}
	return s.details, nil
}

// Zipcodes returns one selector option per ZIP code in dataset order.
func (s *Store) Zipcodes() ([]models.Zipcode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.groupedSt.Loaded {
		return nil, ErrNotLoaded
	}
	zipcodes := make([]models.Zipcode, len(s.aggregates))
	for i, r := range s.aggregates {
		zipcodes[i] = r.Zipcode
	}
	return zipcodes, nil
}

// Generation changes every time a load replaces data.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store) Status() map[string]Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]Status{
		NameGrouped: s.groupedSt,
		NameDetails: s.detailsSt,
	}
}
