package domain

import "time"

// StudyArea is a named location tracked across all three flood phases.
type StudyArea struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`

	// Geocoding enrichment fields.
	PlaceName        string  `json:"placeName,omitempty"`
	District         string  `json:"district,omitempty"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	GeoConfidence    float64 `json:"geoConfidence,omitempty"`
}

// ImageMetadata describes how a SAR scene was acquired.
type ImageMetadata struct {
	Polarization string `json:"polarization"`
	Resolution   string `json:"resolution"`
	Orbit        string `json:"orbit"` // "ascending" or "descending"
}

// SARImage is the base radar scene for one study area in one phase.
type SARImage struct {
	ID          string        `json:"id"`
	StudyAreaID string        `json:"studyAreaId"`
	ImageURL    string        `json:"imageUrl"`
	Phase       Phase         `json:"phase"`
	CaptureDate time.Time     `json:"captureDate"`
	Satellite   string        `json:"satellite"`
	Metadata    ImageMetadata `json:"metadata"`
}

// OverlayData carries the descriptive payload of an overlay. File-backed
// composites set Features; polarization variants set Polarization and Scale.
type OverlayData struct {
	Features     string `json:"features,omitempty"`
	Polarization string `json:"polarization,omitempty"` // "VV" or "VH"
	Scale        string `json:"scale,omitempty"`        // "Decibel" or "Linear"
}

// ImageOverlay is an alternate rendering of a SARImage.
type ImageOverlay struct {
	ID          string      `json:"id"`
	SARImageID  string      `json:"sarImageId"`
	OverlayType OverlayType `json:"overlayType"`
	OverlayData OverlayData `json:"overlayData"`
	ImageURL    string      `json:"imageUrl"`
	Enabled     bool        `json:"enabled"`
}

// BaselineDamage is the pre-flood infrastructure status.
type BaselineDamage struct {
	Status    string `json:"status"`
	RiskLevel string `json:"riskLevel"`
}

// EventDamage is the damage tally while the flood is under way.
type EventDamage struct {
	RoadsAffected    int     `json:"roadsAffected"`
	BuildingsDamaged int     `json:"buildingsDamaged"`
	EstimatedCostUSD float64 `json:"estimatedCostUsd"`
}

// RecoveryDamage tracks post-event recovery progress.
type RecoveryDamage struct {
	RecoveryRate          float64 `json:"recoveryRate"` // 0.0–1.0
	OngoingRepairs        int     `json:"ongoingRepairs"`
	EstimatedRecoveryDays int     `json:"estimatedRecoveryDays"`
}

// InfrastructureDamage is a tagged variant: Phase selects which of the
// pointer fields is set. Exactly one is non-nil for a well-formed value.
type InfrastructureDamage struct {
	Phase    Phase           `json:"phase"`
	Baseline *BaselineDamage `json:"baseline,omitempty"`
	Event    *EventDamage    `json:"event,omitempty"`
	Recovery *RecoveryDamage `json:"recovery,omitempty"`
}

// NewBaselineDamage returns a pre-flood damage variant.
func NewBaselineDamage(d BaselineDamage) InfrastructureDamage {
	return InfrastructureDamage{Phase: PhasePreFlood, Baseline: &d}
}

// NewEventDamage returns a during-event damage variant.
func NewEventDamage(d EventDamage) InfrastructureDamage {
	return InfrastructureDamage{Phase: PhaseDuringEvent, Event: &d}
}

// NewRecoveryDamage returns a post-analysis damage variant.
func NewRecoveryDamage(d RecoveryDamage) InfrastructureDamage {
	return InfrastructureDamage{Phase: PhasePostAnalysis, Recovery: &d}
}

// Valid reports whether the variant tag matches the populated case.
func (d InfrastructureDamage) Valid() bool {
	switch d.Phase {
	case PhasePreFlood:
		return d.Baseline != nil && d.Event == nil && d.Recovery == nil
	case PhaseDuringEvent:
		return d.Event != nil && d.Baseline == nil && d.Recovery == nil
	case PhasePostAnalysis:
		return d.Recovery != nil && d.Baseline == nil && d.Event == nil
	default:
		return false
	}
}

// FloodMetrics holds the quantitative figures for one area in one phase.
type FloodMetrics struct {
	ID                   string               `json:"id"`
	StudyAreaID          string               `json:"studyAreaId"`
	Phase                Phase                `json:"phase"`
	WaterCoverageKm2     float64              `json:"waterCoverageKm2"`
	AffectedPopulation   int                  `json:"affectedPopulation"`
	InfrastructureDamage InfrastructureDamage `json:"infrastructureDamage"`
	AnalysisDate         time.Time            `json:"analysisDate"`
}

// UploadedImage is a visitor-supplied image held in session memory.
type UploadedImage struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"` // data URL
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
