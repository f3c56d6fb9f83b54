package config

// MetricOption is one entry of the metric selector
type MetricOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// MetricOptions is the static option set of the metric selector, in display order
var MetricOptions = []MetricOption{
	{Key: "avg_latestPrice", Label: "Average Price"},
	{Key: "avg_price_per_sqft", Label: "Price per Square Foot"},
	{Key: "avg_house_age", Label: "Average House Age"},
	{Key: "avg_school_rating", Label: "School Rating"},
}

// GetMetricKeys returns the selector values in display order
func GetMetricKeys() []string {
	keys := make([]string, len(MetricOptions))
	for i, opt := range MetricOptions {
		keys[i] = opt.Key
	}
	return keys
}

// GetMetricOption returns the option for a selector value, or nil
func GetMetricOption(key string) *MetricOption {
	for _, opt := range MetricOptions {
		if opt.Key == key {
			return &opt
		}
	}
	return nil
}

// MetricLabel returns the display label for a selector value, falling back to the key
func MetricLabel(key string) string {
	if opt := GetMetricOption(key); opt != nil {
		return opt.Label
	}
	return key
}
