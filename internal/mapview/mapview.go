package mapview

import (
	"austinhousing/server/config"
	"austinhousing/server/internal/format"
	"austinhousing/server/internal/models"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Marker style shared by every property marker. Stroke color matches the
// fill color.
const (
	MarkerRadius      = 2
	MarkerWeight      = 1
	MarkerOpacity     = 1.0
	MarkerFillOpacity = 0.7
)

// MapView is everything the map widget needs: a fixed viewport, the
// property markers and the legend.
type MapView struct {
	Viewport config.Viewport           `json:"viewport"`
	Markers  *geojson.FeatureCollection `json:"markers"`
	Legend   Legend                     `json:"legend"`
}

// BuildMarkers places one point feature per property that has both
// coordinates. Properties without coordinates are skipped.
func BuildMarkers(details []models.DetailRecord) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range details {
		d := &details[i]
		if !d.HasCoordinates() {
			continue
		}

		band := BandFor(d.LatestPrice)
		feature := geojson.NewFeature(orb.Point{*d.Longitude, *d.Latitude})
		feature.Properties = geojson.Properties{
			"price":        d.LatestPrice,
			"band":         band.Label,
			"radius":       MarkerRadius,
			"fillColor":    band.Color,
			"color":        band.Color,
			"weight":       MarkerWeight,
			"opacity":      MarkerOpacity,
			"fillOpacity":  MarkerFillOpacity,
			"popupContent": Popup(d),
		}
		fc.Append(feature)
	}
	return fc
}

// Popup renders the HTML shown when a marker is clicked.
func Popup(d *models.DetailRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h5>Price: $%sK</h5>", format.Thousands(d.LatestPrice))
	fmt.Fprintf(&b, "<p>Bedrooms: %s</p>", format.Number(d.NumOfBedrooms))
	fmt.Fprintf(&b, "<p>Bathrooms: %s</p>", format.Number(d.NumOfBathrooms))
	fmt.Fprintf(&b, "<p>Year Built: %s</p>", format.Number(d.YearBuilt))
	return b.String()
}

// Build assembles the map for the given viewport. The viewport is used as
// is and never fitted to the data.
func Build(details []models.DetailRecord, viewport config.Viewport) *MapView {
	return &MapView{
		Viewport: viewport,
		Markers:  BuildMarkers(details),
		Legend:   NewLegend(),
	}
}
