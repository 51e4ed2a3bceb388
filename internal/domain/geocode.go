package domain

import (
	"context"
	"log/slog"
)

// EnrichAreas reverse geocodes each study area's coordinates. Areas whose
// lookup fails or returns nothing are kept unchanged (graceful degradation).
func EnrichAreas(ctx context.Context, areas []StudyArea, geocoder Geocoder, logger *slog.Logger) []StudyArea {
	out := make([]StudyArea, len(areas))
	copy(out, areas)
	if geocoder == nil {
		return out
	}

	for i := range out {
		area := &out[i]
		if area.Latitude == 0 && area.Longitude == 0 {
			continue
		}
		result, err := geocoder.ReverseGeocode(ctx, area.Latitude, area.Longitude)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"area_id", area.ID,
				"lat", area.Latitude,
				"lon", area.Longitude,
				"error", err,
			)
			continue
		}
		if result.FormattedAddress == "" {
			continue
		}
		area.PlaceName = result.PlaceName
		area.District = result.District
		area.FormattedAddress = result.FormattedAddress
		area.GeoConfidence = result.Confidence
	}
	return out
}
