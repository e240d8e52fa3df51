package models

import "time"

// QuoteLogEntry records one search request for later analysis
type QuoteLogEntry struct {
	ID              string
	Timestamp       time.Time
	FromQuery       string // Raw origin text
	ToQuery         string // Raw destination text
	OriginCode      string // Empty when the origin did not resolve
	DestinationCode string // Empty when the destination did not resolve
	Found           bool
	SalePrice       int
}
