package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Zipcode identifies a postal area. The datasets carry it either as a JSON
// string or as a JSON number; both decode to the same string form.
type Zipcode string

func (z *Zipcode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*z = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid zipcode: %w", err)
		}
		*z = Zipcode(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid zipcode %s: %w", string(data), err)
	}
	*z = Zipcode(n.String())
	return nil
}

// Scan reads a zipcode column stored either as text or as a number.
func (z *Zipcode) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*z = ""
	case string:
		*z = Zipcode(strings.TrimSpace(v))
	case []byte:
		*z = Zipcode(strings.TrimSpace(string(v)))
	case int64:
		*z = Zipcode(strconv.FormatInt(v, 10))
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			*z = Zipcode(strconv.FormatFloat(v, 'f', 0, 64))
		} else {
			*z = Zipcode(strconv.FormatFloat(v, 'f', -1, 64))
		}
	default:
		return fmt.Errorf("invalid zipcode column type %T", src)
	}
	return nil
}

func (z Zipcode) Value() (driver.Value, error) {
	return string(z), nil
}

func (z Zipcode) String() string {
	return string(z)
}

// AggregateRecord holds the averaged metrics of one ZIP code.
type AggregateRecord struct {
	Zipcode         Zipcode `json:"zipcode" gorm:"column:zipcode"`
	AvgLatestPrice  float64 `json:"avg_latestPrice" gorm:"column:avg_latestPrice"`
	AvgPricePerSqft float64 `json:"avg_price_per_sqft" gorm:"column:avg_price_per_sqft"`
	AvgHouseAge     float64 `json:"avg_house_age" gorm:"column:avg_house_age"`
	AvgSchoolRating float64 `json:"avg_school_rating" gorm:"column:avg_school_rating"`
	AvgSchoolSize   float64 `json:"avg_school_size" gorm:"column:avg_school_size"`
}

func (AggregateRecord) TableName() string {
	return "housing_data_grouped"
}
