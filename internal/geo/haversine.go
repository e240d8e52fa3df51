package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for all distance calculations
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two points
// given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
