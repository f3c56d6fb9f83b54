package mapview

import "strings"

type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend is the static price range legend in the map's bottom-right corner.
type Legend struct {
	Position string        `json:"position"`
	Title    string        `json:"title"`
	Entries  []LegendEntry `json:"entries"`
	HTML     string        `json:"html"`
}

// NewLegend lists the price bands most expensive first.
func NewLegend() Legend {
	entries := make([]LegendEntry, 0, len(PriceBands))
	for i := len(PriceBands) - 1; i >= 0; i-- {
		entries = append(entries, LegendEntry{Label: PriceBands[i].Label, Color: PriceBands[i].Color})
	}

	l := Legend{
		Position: "bottomright",
		Title:    "Price Range",
		Entries:  entries,
	}
	l.HTML = l.render()
	return l
}

func (l Legend) render() string {
	var b strings.Builder
	b.WriteString(`<div class="info legend"><h6>` + l.Title + `</h6>`)
	for _, e := range l.Entries {
		b.WriteString(`<i style="background:` + e.Color + `; width: 18px; height: 18px; display: inline-block;"></i> `)
		b.WriteString(e.Label + "<br>")
	}
	b.WriteString("</div>")
	return b.String()
}
