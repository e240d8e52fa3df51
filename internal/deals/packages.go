package deals

import (
	"slices"

	"cheapflyer/internal/models"
	"cheapflyer/internal/reference"
)

var packageCatalog = []models.VacationPackage{
	{
		ID:              "pkg-maldives",
		Title:           "Maldives Paradise",
		Subtitle:        "7 nights at 5-star overwater resort",
		Destination:     "Maldives",
		Features:        []string{"Round-trip flights", "Overwater villa", "All meals included", "Spa treatment", "Sunset cruise"},
		OriginalPrice:   4999,
		Price:           2499,
		DiscountPercent: 50,
		Rating:          4.9,
		Reviews:         2847,
		Featured:        true,
		Tag:             "Best Seller",
	},
	{
		ID:              "pkg-dubai",
		Title:           "Dubai Luxury Escape",
		Subtitle:        "5 nights at Burj Al Arab",
		Destination:     "Dubai",
		Features:        []string{"Round-trip flights", "5-star hotel", "Desert safari", "City tour", "Burj Khalifa access"},
		OriginalPrice:   3299,
		Price:           1899,
		DiscountPercent: 42,
		Rating:          4.8,
		Reviews:         1923,
	},
	{
		ID:              "pkg-alps",
		Title:           "Swiss Alps Adventure",
		Subtitle:        "6 nights mountain chalet experience",
		Destination:     "Swiss Alps",
		Features:        []string{"Round-trip flights", "Luxury chalet", "Ski pass included", "Mountain guide", "Fondue dinner"},
		OriginalPrice:   3899,
		Price:           2199,
		DiscountPercent: 44,
		Rating:          4.9,
		Reviews:         1456,
	},
	{
		ID:              "pkg-bali",
		Title:           "Bali Wellness Retreat",
		Subtitle:        "8 nights spiritual journey",
		Destination:     "Bali",
		Features:        []string{"Round-trip flights", "Private villa", "Daily yoga", "Spa treatments", "Temple tours"},
		OriginalPrice:   2899,
		Price:           1699,
		DiscountPercent: 41,
		Rating:          4.7,
		Reviews:         2134,
	},
	{
		ID:              "pkg-santorini",
		Title:           "Santorini Romance",
		Subtitle:        "5 nights cave hotel getaway",
		Destination:     "Santorini",
		Features:        []string{"Round-trip flights", "Cave hotel", "Wine tasting", "Sunset sail", "Private dinner"},
		OriginalPrice:   3199,
		Price:           1799,
		DiscountPercent: 44,
		Rating:          4.9,
		Reviews:         1876,
	},
}

// VacationPackages returns the static package catalog. Every call returns a
// fresh copy of identical data.
func (s *Synthesizer) VacationPackages() []models.VacationPackage {
	out := make([]models.VacationPackage, len(packageCatalog))
	for i, p := range packageCatalog {
		p.Features = slices.Clone(p.Features)
		p.Image = reference.DestinationImage(p.Destination)
		out[i] = p
	}
	return out
}
