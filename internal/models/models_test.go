package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipcodeUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Zipcode
		wantErr  bool
	}{
		{name: "Number", input: `78701`, expected: "78701"},
		{name: "String", input: `"78701"`, expected: "78701"},
		{name: "String with spaces", input: `" 78701 "`, expected: "78701"},
		{name: "Null", input: `null`, expected: ""},
		{name: "Boolean", input: `true`, wantErr: true},
		{name: "Object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var z Zipcode
			err := json.Unmarshal([]byte(tt.input), &z)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, z)
		})
	}
}

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics {
		parsed, err := ParseMetric(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMetric("avg_school_size")
	assert.ErrorIs(t, err, ErrUnknownMetric)
	_, err = ParseMetric("")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestMetricValue(t *testing.T) {
	r := &AggregateRecord{
		AvgLatestPrice:  450000,
		AvgPricePerSqft: 310,
		AvgHouseAge:     22,
		AvgSchoolRating: 7.5,
		AvgSchoolSize:   1200,
	}

	assert.Equal(t, 450000.0, MetricLatestPrice.Value(r))
	assert.Equal(t, 310.0, MetricPricePerSqft.Value(r))
	assert.Equal(t, 22.0, MetricHouseAge.Value(r))
	assert.Equal(t, 7.5, MetricSchoolRating.Value(r))
	assert.Equal(t, 0.0, Metric("avg_school_size").Value(r))
}

func TestDetailRecordHasCoordinates(t *testing.T) {
	lat, lng := 30.27, -97.74

	assert.True(t, (&DetailRecord{Latitude: &lat, Longitude: &lng}).HasCoordinates())
	assert.False(t, (&DetailRecord{Latitude: &lat}).HasCoordinates())
	assert.False(t, (&DetailRecord{Longitude: &lng}).HasCoordinates())

	var d DetailRecord
	require.NoError(t, json.Unmarshal([]byte(`{"latitude": null, "longitude": null, "latestPrice": 1}`), &d))
	assert.False(t, d.HasCoordinates())
}

func TestZipcodeScan(t *testing.T) {
	tests := []struct {
		name     string
		src      interface{}
		expected Zipcode
		wantErr  bool
	}{
		{name: "Integer", src: int64(78701), expected: "78701"},
		{name: "Whole float", src: float64(78701), expected: "78701"},
		{name: "Text", src: "78701", expected: "78701"},
		{name: "Bytes", src: []byte(" 78701 "), expected: "78701"},
		{name: "Null", src: nil, expected: ""},
		{name: "Boolean", src: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var z Zipcode
			err := z.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, z)
		})
	}

	v, err := Zipcode("78701").Value()
	require.NoError(t, err)
	assert.Equal(t, "78701", v)
}
