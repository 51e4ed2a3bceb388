package domain_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/stretchr/testify/assert"
)

type stubGeocoder struct {
	result domain.GeocodingResult
	err    error
	calls  int
}

func (s *stubGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	s.calls++
	return s.result, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnrichAreas_NilGeocoder(t *testing.T) {
	areas := domain.DefaultStudyAreas()

	got := domain.EnrichAreas(context.Background(), areas, nil, discardLogger())

	assert.Equal(t, areas, got)
}

func TestEnrichAreas_Success(t *testing.T) {
	geo := &stubGeocoder{result: domain.GeocodingResult{
		PlaceName:        "Mangan",
		District:         "North Sikkim",
		FormattedAddress: "Mangan, Sikkim, India",
		Confidence:       0.9,
	}}
	areas := domain.DefaultStudyAreas()[:2]

	got := domain.EnrichAreas(context.Background(), areas, geo, discardLogger())

	assert.Equal(t, 2, geo.calls)
	assert.Equal(t, "Mangan", got[0].PlaceName)
	assert.Equal(t, "North Sikkim", got[0].District)
	assert.Equal(t, "Mangan, Sikkim, India", got[0].FormattedAddress)
	assert.InDelta(t, 0.9, got[0].GeoConfidence, 1e-9)
	assert.Empty(t, areas[0].PlaceName, "input must not be modified")
}

func TestEnrichAreas_FailureKeepsArea(t *testing.T) {
	geo := &stubGeocoder{err: errors.New("boom")}
	areas := domain.DefaultStudyAreas()[:1]

	got := domain.EnrichAreas(context.Background(), areas, geo, discardLogger())

	assert.Equal(t, areas, got)
}

func TestEnrichAreas_EmptyResultKeepsArea(t *testing.T) {
	geo := &stubGeocoder{}
	areas := domain.DefaultStudyAreas()[:1]

	got := domain.EnrichAreas(context.Background(), areas, geo, discardLogger())

	assert.Equal(t, areas, got)
}

func TestEnrichAreas_SkipsMissingCoordinates(t *testing.T) {
	geo := &stubGeocoder{}
	areas := []domain.StudyArea{{ID: "x"}}

	domain.EnrichAreas(context.Background(), areas, geo, discardLogger())

	assert.Zero(t, geo.calls)
}
