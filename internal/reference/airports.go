// Package reference holds the built-in airport, airline and destination image
// tables. The tables are never modified after package initialization, and the
// accessors hand out copies.
package reference

import (
	"slices"

	"cheapflyer/internal/models"
)

var airports = []models.Airport{
	{Code: "JFK", City: "New York", Country: "US", Lat: 40.6413, Lng: -73.7781, Timezone: "America/New_York"},
	{Code: "LAX", City: "Los Angeles", Country: "US", Lat: 33.9425, Lng: -118.4081, Timezone: "America/Los_Angeles"},
	{Code: "ORD", City: "Chicago", Country: "US", Lat: 41.9742, Lng: -87.9073, Timezone: "America/Chicago"},
	{Code: "DFW", City: "Dallas", Country: "US", Lat: 32.8998, Lng: -97.0403, Timezone: "America/Chicago"},
	{Code: "DEN", City: "Denver", Country: "US", Lat: 39.8561, Lng: -104.6737, Timezone: "America/Denver"},
	{Code: "SFO", City: "San Francisco", Country: "US", Lat: 37.6213, Lng: -122.3790, Timezone: "America/Los_Angeles"},
	{Code: "SEA", City: "Seattle", Country: "US", Lat: 47.4502, Lng: -122.3088, Timezone: "America/Los_Angeles"},
	{Code: "MIA", City: "Miami", Country: "US", Lat: 25.7959, Lng: -80.2870, Timezone: "America/New_York"},
	{Code: "BOS", City: "Boston", Country: "US", Lat: 42.3656, Lng: -71.0096, Timezone: "America/New_York"},
	{Code: "ATL", City: "Atlanta", Country: "US", Lat: 33.6407, Lng: -84.4277, Timezone: "America/New_York"},
	{Code: "LHR", City: "London", Country: "UK", Lat: 51.4700, Lng: -0.4543, Timezone: "Europe/London"},
	{Code: "CDG", City: "Paris", Country: "FR", Lat: 49.0097, Lng: 2.5479, Timezone: "Europe/Paris"},
	{Code: "FRA", City: "Frankfurt", Country: "DE", Lat: 50.0379, Lng: 8.5622, Timezone: "Europe/Berlin"},
	{Code: "AMS", City: "Amsterdam", Country: "NL", Lat: 52.3105, Lng: 4.7683, Timezone: "Europe/Amsterdam"},
	{Code: "DXB", City: "Dubai", Country: "AE", Lat: 25.2532, Lng: 55.3657, Timezone: "Asia/Dubai"},
	{Code: "SIN", City: "Singapore", Country: "SG", Lat: 1.3644, Lng: 103.9915, Timezone: "Asia/Singapore"},
	{Code: "HKG", City: "Hong Kong", Country: "HK", Lat: 22.3080, Lng: 113.9185, Timezone: "Asia/Hong_Kong"},
	{Code: "NRT", City: "Tokyo", Country: "JP", Lat: 35.7720, Lng: 140.3929, Timezone: "Asia/Tokyo"},
	{Code: "IST", City: "Istanbul", Country: "TR", Lat: 41.2753, Lng: 28.7519, Timezone: "Europe/Istanbul"},
	{Code: "BCN", City: "Barcelona", Country: "ES", Lat: 41.2974, Lng: 2.0833, Timezone: "Europe/Madrid"},
	{Code: "FCO", City: "Rome", Country: "IT", Lat: 41.8003, Lng: 12.2389, Timezone: "Europe/Rome"},
	{Code: "SYD", City: "Sydney", Country: "AU", Lat: -33.9399, Lng: 151.1753, Timezone: "Australia/Sydney"},
	{Code: "YYZ", City: "Toronto", Country: "CA", Lat: 43.6777, Lng: -79.6248, Timezone: "America/Toronto"},
	{Code: "MEX", City: "Mexico City", Country: "MX", Lat: 19.4361, Lng: -99.0719, Timezone: "America/Mexico_City"},
	{Code: "GRU", City: "Sao Paulo", Country: "BR", Lat: -23.4356, Lng: -46.4731, Timezone: "America/Sao_Paulo"},
	{Code: "BKK", City: "Bangkok", Country: "TH", Lat: 13.6900, Lng: 100.7501, Timezone: "Asia/Bangkok"},
	{Code: "ICN", City: "Seoul", Country: "KR", Lat: 37.4602, Lng: 126.4407, Timezone: "Asia/Seoul"},
}

var airlines = []models.Airline{
	{Code: "AA", Name: "American Airlines"},
	{Code: "UA", Name: "United Airlines"},
	{Code: "DL", Name: "Delta Air Lines"},
	{Code: "BA", Name: "British Airways"},
	{Code: "LH", Name: "Lufthansa"},
	{Code: "AF", Name: "Air France"},
	{Code: "EK", Name: "Emirates"},
	{Code: "SQ", Name: "Singapore Airlines"},
	{Code: "QF", Name: "Qantas"},
	{Code: "TK", Name: "Turkish Airlines"},
}

// DefaultOrigin is used when a caller has no resolved airport yet
var DefaultOrigin = models.Airport{Code: "JFK", City: "New York", Country: "US", Lat: 40.6413, Lng: -73.7781, Timezone: "America/New_York"}

// Airports returns the built-in airport table in lookup order
func Airports() []models.Airport {
	return slices.Clone(airports)
}

// Airlines returns the built-in airline table
func Airlines() []models.Airline {
	return slices.Clone(airlines)
}
