package ranking

import (
	"austinhousing/server/internal/models"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(n int) []models.AggregateRecord {
	records := make([]models.AggregateRecord, n)
	for i := range records {
		records[i] = models.AggregateRecord{
			Zipcode:         models.Zipcode(fmt.Sprintf("787%02d", i)),
			AvgLatestPrice:  float64(200000 + (i*37%n)*10000),
			AvgPricePerSqft: float64(150 + (i*13)%n),
			AvgHouseAge:     float64((i * 7) % 50),
			AvgSchoolRating: float64(i%10) / 2,
			AvgSchoolSize:   float64(500 + i*10),
		}
	}
	return records
}

func TestRankLengthAndOrder(t *testing.T) {
	for _, size := range []int{0, 1, 3, 10, 25} {
		for _, metric := range models.Metrics {
			t.Run(fmt.Sprintf("%s/%d", metric, size), func(t *testing.T) {
				records := fixture(size)
				ranked, err := Rank(records, metric, DefaultTopN)
				require.NoError(t, err)

				expectedLen := size
				if expectedLen > 10 {
					expectedLen = 10
				}
				assert.Len(t, ranked, expectedLen)
				assert.True(t, sort.SliceIsSorted(ranked, func(i, j int) bool {
					return ranked[i].Value > ranked[j].Value
				}), "ranking must be descending")
			})
		}
	}
}

func TestRankKeepsTheLargestValues(t *testing.T) {
	records := fixture(25)
	ranked, err := Rank(records, models.MetricLatestPrice, 10)
	require.NoError(t, err)

	all := make([]float64, len(records))
	for i := range records {
		all[i] = records[i].AvgLatestPrice
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(all)))
	for i, e := range ranked {
		assert.Equal(t, all[i], e.Value)
	}
}

func TestRankTieBreakByZipcode(t *testing.T) {
	records := []models.AggregateRecord{
		{Zipcode: "78705", AvgSchoolRating: 8},
		{Zipcode: "78702", AvgSchoolRating: 9},
		{Zipcode: "78703", AvgSchoolRating: 8},
		{Zipcode: "78701", AvgSchoolRating: 8},
	}

	ranked, err := Rank(records, models.MetricSchoolRating, 10)
	require.NoError(t, err)

	zips := make([]models.Zipcode, len(ranked))
	for i, e := range ranked {
		zips[i] = e.Zipcode
	}
	assert.Equal(t, []models.Zipcode{"78702", "78701", "78703", "78705"}, zips)
	assert.Equal(t, models.Zipcode("78705"), records[0].Zipcode, "input must not be reordered")
}

func TestRankUnknownMetric(t *testing.T) {
	_, err := Rank(fixture(3), models.Metric("avg_school_size"), 10)
	assert.ErrorIs(t, err, models.ErrUnknownMetric)
}

func TestHoverText(t *testing.T) {
	r := &models.AggregateRecord{
		Zipcode:         "78701",
		AvgLatestPrice:  450000,
		AvgPricePerSqft: 310.5,
		AvgHouseAge:     22,
		AvgSchoolRating: 7.5,
		AvgSchoolSize:   1200,
	}
	companions := "Average House Age: 22 years<br>" +
		"Price per square foot: $310.5 USD<br>" +
		"School Rating: 7.5<br>" +
		"School Size: 1200 students"

	tests := []struct {
		metric   models.Metric
		expected string
	}{
		{models.MetricLatestPrice, "Total Price: $450.0K USD<br>" + companions},
		{models.MetricPricePerSqft, "Price per square foot: $310.5 USD<br>" + companions},
		{models.MetricHouseAge, "Average House Age: 22 years<br>" + companions},
		{models.MetricSchoolRating, "School Rating: 7.5<br>" + companions},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			assert.Equal(t, tt.expected, HoverText(r, tt.metric))
		})
	}
}

func TestHoverTextKeepsMetricUnit(t *testing.T) {
	r := &models.AggregateRecord{Zipcode: "78701", AvgHouseAge: 20, AvgLatestPrice: 450000}

	text := HoverText(r, models.MetricHouseAge)
	assert.True(t, strings.HasPrefix(text, "Average House Age: 20 years<br>"))
	assert.NotContains(t, text, "K USD")
}
