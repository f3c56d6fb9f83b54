package metadata

import (
	"austinhousing/server/internal/format"
	"austinhousing/server/internal/models"
	"errors"
	"fmt"
	"strings"
)

var ErrZipcodeNotFound = errors.New("zipcode not found in grouped data")

// Field is one line of the metadata panel.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (f Field) String() string {
	return f.Key + ": " + f.Value
}

// Panel is the full content of the metadata panel for one ZIP code.
type Panel struct {
	Zipcode models.Zipcode `json:"zipcode"`
	Fields  []Field        `json:"fields"`
}

// Lines returns the panel rows as displayed, "Key: value".
func (p *Panel) Lines() []string {
	lines := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		lines[i] = f.String()
	}
	return lines
}

// Find returns the first record whose ZIP code equals zipcode once both are
// compared as strings.
func Find(records []models.AggregateRecord, zipcode string) (*models.AggregateRecord, error) {
	want := strings.TrimSpace(zipcode)
	for i := range records {
		if records[i].Zipcode.String() == want {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrZipcodeNotFound, want)
}

// BuildPanel formats the five summary fields of a record.
func BuildPanel(r *models.AggregateRecord) *Panel {
	return &Panel{
		Zipcode: r.Zipcode,
		Fields: []Field{
			{Key: "Total Price", Value: format.Thousands(r.AvgLatestPrice) + "K USD"},
			{Key: "Price per square foot", Value: format.Number(r.AvgPricePerSqft) + " USD"},
			{Key: "Average House Age", Value: format.Number(r.AvgHouseAge) + " years"},
			{Key: "School Rating", Value: format.Number(r.AvgSchoolRating)},
			{Key: "School Size", Value: format.Number(r.AvgSchoolSize) + " students"},
		},
	}
}

// Lookup finds the ZIP code and builds its panel.
func Lookup(records []models.AggregateRecord, zipcode string) (*Panel, error) {
	r, err := Find(records, zipcode)
	if err != nil {
		return nil, err
	}
	return BuildPanel(r), nil
}
