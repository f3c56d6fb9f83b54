package dataset

import (
	"austinhousing/server/internal/models"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupedJSON = `[
  {"zipcode": 78701, "avg_latestPrice": 450000, "avg_price_per_sqft": 310.5, "avg_house_age": 22, "avg_school_rating": 7.5, "avg_school_size": 1200},
  {"zipcode": "78702", "avg_latestPrice": 380000, "avg_price_per_sqft": 260, "avg_house_age": 45, "avg_school_rating": 5, "avg_school_size": 900}
]`

const detailsJSON = `[
  {"latitude": 30.27, "longitude": -97.74, "latestPrice": 240000, "numOfBedrooms": 3, "numOfBathrooms": 2, "yearBuilt": 1999},
  {"latitude": null, "longitude": null, "latestPrice": 510000, "numOfBedrooms": 4, "numOfBathrooms": 2.5, "yearBuilt": 2005}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestJSONSourceFromFiles(t *testing.T) {
	src := NewJSONSource(
		writeFile(t, "grouped.json", groupedJSON),
		writeFile(t, "details.json", detailsJSON),
		time.Second,
	)

	aggregates, err := src.LoadAggregates(context.Background())
	require.NoError(t, err)
	require.Len(t, aggregates, 2)
	assert.Equal(t, models.Zipcode("78701"), aggregates[0].Zipcode)
	assert.Equal(t, models.Zipcode("78702"), aggregates[1].Zipcode)
	assert.Equal(t, 310.5, aggregates[0].AvgPricePerSqft)

	details, err := src.LoadDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.True(t, details[0].HasCoordinates())
	assert.False(t, details[1].HasCoordinates())
	assert.Equal(t, 2.5, details[1].NumOfBathrooms)
}

func TestJSONSourceFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/grouped.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(groupedJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src := NewJSONSource(server.URL+"/grouped.json", server.URL+"/missing.json", time.Second)

	aggregates, err := src.LoadAggregates(context.Background())
	require.NoError(t, err)
	assert.Len(t, aggregates, 2)

	_, err = src.LoadDetails(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestJSONSourceErrors(t *testing.T) {
	tests := []struct {
		name        string
		location    func(t *testing.T) string
		expectedErr error
	}{
		{
			name:        "Missing file",
			location:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			expectedErr: ErrFetch,
		},
		{
			name:        "Malformed JSON",
			location:    func(t *testing.T) string { return writeFile(t, "bad.json", `[{"zipcode": 78701,`) },
			expectedErr: ErrParse,
		},
		{
			name:        "Object instead of array",
			location:    func(t *testing.T) string { return writeFile(t, "obj.json", `{"zipcode": 78701}`) },
			expectedErr: ErrParse,
		},
		{
			name:        "Wrong field type",
			location:    func(t *testing.T) string { return writeFile(t, "type.json", `[{"avg_latestPrice": "lots"}]`) },
			expectedErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewJSONSource(tt.location(t), "", time.Second)
			records, err := src.LoadAggregates(context.Background())
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, records)
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, isRemote("http://example.com/a.json"))
	assert.True(t, isRemote("HTTPS://example.com/a.json"))
	assert.False(t, isRemote("./statics/data/housing_data_grouped.json"))
	assert.False(t, isRemote("/srv/http/data.json"))
}
