package domain

import "context"

// GeocodingResult is the place a study area's coordinates resolve to.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	District         string  // administrative district, e.g. "Mangan"
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder reverse geocodes study area coordinates. Implementations may call
// out to a network provider; EnrichAreas treats every failure as non-fatal.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
