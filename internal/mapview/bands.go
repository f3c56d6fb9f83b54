package mapview

// PriceBand is a price range with the color its markers are drawn in.
// Lower is inclusive, Upper exclusive; the top band has Upper == 0.
type PriceBand struct {
	Label string  `json:"label"`
	Color string  `json:"color"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper,omitempty"`
}

// PriceBands partition [0, ∞), cheapest first.
var PriceBands = []PriceBand{
	{Label: "< 250K", Color: "blue", Lower: 0, Upper: 250000},
	{Label: "250K-500K", Color: "green", Lower: 250000, Upper: 500000},
	{Label: "500K-750K", Color: "yellow", Lower: 500000, Upper: 750000},
	{Label: "750K-1M", Color: "red", Lower: 750000, Upper: 1000000},
	{Label: "> 1M", Color: "purple", Lower: 1000000},
}

// BandFor returns the band a price falls into. Prices below zero fall into
// the cheapest band.
func BandFor(price float64) PriceBand {
	for _, b := range PriceBands {
		if b.Upper == 0 || price < b.Upper {
			return b
		}
	}
	return PriceBands[len(PriceBands)-1]
}

// GetColor returns the marker color for a price.
func GetColor(price float64) string {
	return BandFor(price).Color
}
