package api

import (
	"time"

	"cheapflyer/internal/models"
)

const (
	isoDate           = "2006-01-02"
	shortDisplayDate  = "Jan 2"
	longDisplayDate   = "Jan 2, 2006"
	defaultRecentSize = 20
	maxRecentSize     = 100
)

type nearestResponse struct {
	Airport    models.Airport `json:"airport"`
	DistanceKm int            `json:"distance_km"`
}

type dealResponse struct {
	ID              string          `json:"id"`
	Origin          models.Endpoint `json:"origin"`
	Destination     models.Endpoint `json:"destination"`
	Airline         models.Airline  `json:"airline"`
	OriginalPrice   int             `json:"original_price"`
	SalePrice       int             `json:"sale_price"`
	DiscountPercent int             `json:"discount_percent"`
	DepartDate      string          `json:"depart_date"`
	ReturnDate      string          `json:"return_date"`
	DepartDisplay   string          `json:"depart_display"`
	ReturnDisplay   string          `json:"return_display"`
	SeatsLeft       int             `json:"seats_left"`
	IsHot           bool            `json:"is_hot"`
	Image           string          `json:"image"`
}

type dealsResponse struct {
	Origin models.Endpoint `json:"origin"`
	Source string          `json:"source"` // query, session or default
	Deals  []dealResponse  `json:"deals"`
}

type packageResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Subtitle        string   `json:"subtitle"`
	Destination     string   `json:"destination"`
	Image           string   `json:"image"`
	Features        []string `json:"features"`
	OriginalPrice   int      `json:"original_price"`
	Price           int      `json:"price"`
	DiscountPercent int      `json:"discount_percent"`
	Rating          float64  `json:"rating"`
	Reviews         int      `json:"reviews"`
	Featured        bool     `json:"featured"`
	Tag             string   `json:"tag,omitempty"`
}

type quoteResponse struct {
	ID              string         `json:"id"`
	Origin          models.Airport `json:"origin"`
	Destination     models.Airport `json:"destination"`
	Airline         models.Airline `json:"airline"`
	OriginalPrice   int            `json:"original_price"`
	SalePrice       int            `json:"sale_price"`
	DiscountPercent int            `json:"discount_percent"`
	DepartDate      string         `json:"depart_date"`
	ReturnDate      string         `json:"return_date,omitempty"`
	DaysFromNow     int            `json:"days_from_now"`
}

type recentSearchResponse struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	OriginCode      string    `json:"origin_code,omitempty"`
	DestinationCode string    `json:"destination_code,omitempty"`
	Found           bool      `json:"found"`
	SalePrice       int       `json:"sale_price,omitempty"`
}

func toDealResponses(deals []models.FlightDeal) []dealResponse {
	out := make([]dealResponse, 0, len(deals))
	for _, d := range deals {
		out = append(out, dealResponse{
			ID:              d.ID,
			Origin:          d.Origin,
			Destination:     d.Destination,
			Airline:         d.Airline,
			OriginalPrice:   d.OriginalPrice,
			SalePrice:       d.SalePrice,
			DiscountPercent: d.DiscountPercent,
			DepartDate:      d.DepartDate.Format(isoDate),
			ReturnDate:      d.ReturnDate.Format(isoDate),
			DepartDisplay:   d.DepartDate.Format(shortDisplayDate),
			ReturnDisplay:   d.ReturnDate.Format(longDisplayDate),
			SeatsLeft:       d.SeatsLeft,
			IsHot:           d.IsHot,
			Image:           d.Image,
		})
	}
	return out
}

func toPackageResponses(pkgs []models.VacationPackage) []packageResponse {
	out := make([]packageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, packageResponse{
			ID:              p.ID,
			Title:           p.Title,
			Subtitle:        p.Subtitle,
			Destination:     p.Destination,
			Image:           p.Image,
			Features:        p.Features,
			OriginalPrice:   p.OriginalPrice,
			Price:           p.Price,
			DiscountPercent: p.DiscountPercent,
			Rating:          p.Rating,
			Reviews:         p.Reviews,
			Featured:        p.Featured,
			Tag:             p.Tag,
		})
	}
	return out
}

func toQuoteResponse(q *models.Quote) quoteResponse {
	return quoteResponse{
		ID:              q.ID,
		Origin:          q.Origin,
		Destination:     q.Destination,
		Airline:         q.Airline,
		OriginalPrice:   q.OriginalPrice,
		SalePrice:       q.SalePrice,
		DiscountPercent: q.DiscountPercent,
		DepartDate:      q.DepartDate,
		ReturnDate:      q.ReturnDate,
		DaysFromNow:     q.DaysFromNow,
	}
}

func toRecentSearchResponses(entries []models.QuoteLogEntry) []recentSearchResponse {
	out := make([]recentSearchResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, recentSearchResponse{
			ID:              e.ID,
			Timestamp:       e.Timestamp,
			From:            e.FromQuery,
			To:              e.ToQuery,
			OriginCode:      e.OriginCode,
			DestinationCode: e.DestinationCode,
			Found:           e.Found,
			SalePrice:       e.SalePrice,
		})
	}
	return out
}
