package models

// DetailRecord is a single property from the detail dataset.
// Latitude and Longitude are nil when the property could not be geocoded.
type DetailRecord struct {
	Latitude       *float64 `json:"latitude" gorm:"column:latitude"`
	Longitude      *float64 `json:"longitude" gorm:"column:longitude"`
	LatestPrice    float64  `json:"latestPrice" gorm:"column:latestPrice"`
	NumOfBedrooms  float64  `json:"numOfBedrooms" gorm:"column:numOfBedrooms"`
	NumOfBathrooms float64  `json:"numOfBathrooms" gorm:"column:numOfBathrooms"`
	YearBuilt      float64  `json:"yearBuilt" gorm:"column:yearBuilt"`
}

func (DetailRecord) TableName() string {
	return "housing_data_details"
}

// HasCoordinates reports whether both coordinates are present.
func (r *DetailRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
