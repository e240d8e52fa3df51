package models

import "time"

// Endpoint is one side of a flight deal
type Endpoint struct {
	Code    string `json:"code"`
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// FlightDeal is a synthesized round-trip offer. Deals are generated fresh on
// every request and never persisted.
type FlightDeal struct {
	ID              string
	Origin          Endpoint
	Destination     Endpoint
	Airline         Airline
	OriginalPrice   int       // Price before discount, whole currency units
	SalePrice       int       // round(OriginalPrice * (1 - DiscountPercent/100))
	DiscountPercent int       // 0-100
	DepartDate      time.Time // Calendar date, midnight local time
	ReturnDate      time.Time // Always after DepartDate
	SeatsLeft       int
	IsHot           bool
	Image           string // Destination image URL
}

// VacationPackage is an entry of the static package catalog
type VacationPackage struct {
	ID              string
	Title           string
	Subtitle        string
	Destination     string
	Image           string
	Features        []string
	OriginalPrice   int
	Price           int
	DiscountPercent int
	Rating          float64
	Reviews         int
	Featured        bool
	Tag             string // Promotional tag, empty when none
}

// Quote is a single price estimate for an origin-destination-date triple
type Quote struct {
	ID              string
	Origin          Airport
	Destination     Airport
	OriginalPrice   int
	SalePrice       int
	DiscountPercent int
	DepartDate      string // As supplied by the caller
	ReturnDate      string // Optional, passed through untouched
	DaysFromNow     int    // May be negative for dates in the past
	Airline         Airline
}
