package models

// Airport represents one entry of the airport reference set
type Airport struct {
	Code     string  `json:"code"`               // 3-letter IATA code, unique
	City     string  `json:"city"`               // City served
	Country  string  `json:"country"`            // 2-letter country code
	Lat      float64 `json:"lat"`                // Latitude in degrees
	Lng      float64 `json:"lng"`                // Longitude in degrees
	Timezone string  `json:"timezone,omitempty"` // IANA timezone, optional
}

// Airline is used as decoration on synthesized deals and quotes
type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
