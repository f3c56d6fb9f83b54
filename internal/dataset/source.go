package dataset

import (
	"austinhousing/server/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	ErrFetch     = errors.New("dataset fetch failed")
	ErrParse     = errors.New("dataset parse failed")
	ErrNotLoaded = errors.New("dataset not loaded")
)

// Source provides the two dashboard datasets.
type Source interface {
	LoadAggregates(ctx context.Context) ([]models.AggregateRecord, error)
	LoadDetails(ctx context.Context) ([]models.DetailRecord, error)
}

// JSONSource reads each dataset as a JSON array from a file path or an
// http(s) URL.
type JSONSource struct {
	GroupedLocation string
	DetailsLocation string
	client          *http.Client
}

func NewJSONSource(grouped, details string, timeout time.Duration) *JSONSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &JSONSource{
		GroupedLocation: grouped,
		DetailsLocation: details,
		client:          &http.Client{Timeout: timeout},
	}
}

func (s *JSONSource) LoadAggregates(ctx context.Context) ([]models.AggregateRecord, error) {
	var records []models.AggregateRecord
	if err := s.fetchArray(ctx, s.GroupedLocation, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *JSONSource) LoadDetails(ctx context.Context) ([]models.DetailRecord, error) {
	var records []models.DetailRecord
	if err := s.fetchArray(ctx, s.DetailsLocation, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *JSONSource) fetchArray(ctx context.Context, location string, out interface{}) error {
	data, err := s.fetch(ctx, location)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFetch, location, err)
	}

	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "[") {
		return fmt.Errorf("%w: %s: expected a JSON array", ErrParse, location)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, location, err)
	}
	return nil
}

func (s *JSONSource) fetch(ctx context.Context, location string) ([]byte, error) {
	if !isRemote(location) {
		return os.ReadFile(location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
