package domain

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strconv"
)

// DefaultStudyAreas are the six locations covered by the portal.
func DefaultStudyAreas() []StudyArea {
	return []StudyArea{
		{
			ID: "1", Name: "Teesta Power Station V", Location: "Sikkim, India",
			Latitude: 27.28, Longitude: 88.46,
			Description: "A major operational hydroelectric power station on the Teesta River.",
		},
		{
			ID: "2", Name: "Teesta Low Dam III", Location: "Sikkim, India",
			Latitude: 27.06, Longitude: 88.35,
			Description: "Hydroelectric project downstream on the Teesta River near the West Bengal border.",
		},
		{
			ID: "3", Name: "Mangan", Location: "Sikkim, India",
			Latitude: 27.82, Longitude: 88.55,
			Description: "District HQ of North Sikkim; critical infrastructure affected by floodwaters.",
		},
		{
			ID: "4", Name: "Lachen", Location: "Sikkim, India",
			Latitude: 27.77, Longitude: 88.54,
			Description: "Town in North Sikkim, often cut off by landslides and flood-related road damage.",
		},
		{
			ID: "5", Name: "Chungthang Dam", Location: "Sikkim, India",
			Latitude: 27.61, Longitude: 88.56,
			Description: "Teesta III Hydroelectric Project dam that was breached during the 2023 GLOF.",
		},
		{
			ID: "6", Name: "Yangang", Location: "Sikkim, India",
			Latitude: 27.18, Longitude: 88.34,
			Description: "Town in South Sikkim near the Rangpo River junction, susceptible to flooding.",
		},
	}
}

// Catalog is the immutable content store built once at startup.
type Catalog struct {
	seed     uint64
	areas    []StudyArea
	images   []SARImage
	overlays []ImageOverlay
	metrics  []FloodMetrics
	areaIdx  map[string]int
}

// CatalogSnapshot is the serialisable form of a Catalog.
type CatalogSnapshot struct {
	Seed     uint64         `json:"seed"`
	Areas    []StudyArea    `json:"studyAreas"`
	Images   []SARImage     `json:"sarImages"`
	Overlays []ImageOverlay `json:"imageOverlays"`
	Metrics  []FloodMetrics `json:"floodMetrics"`
}

// NewCatalog expands areas into images, overlays and metrics. Numeric fields
// are drawn from a generator keyed by (seed, area id, phase), so the same seed
// always yields the same catalog.
func NewCatalog(areas []StudyArea, seed uint64) *Catalog {
	c := &Catalog{
		seed:     seed,
		areas:    make([]StudyArea, len(areas)),
		images:   make([]SARImage, 0, len(areas)*len(Phases)),
		overlays: make([]ImageOverlay, 0, len(areas)*len(Phases)*len(OverlayTypes)),
		metrics:  make([]FloodMetrics, 0, len(areas)*len(Phases)),
		areaIdx:  make(map[string]int, len(areas)),
	}
	copy(c.areas, areas)

	for i, area := range c.areas {
		c.areaIdx[area.ID] = i
		n := areaNumber(area.ID, i)
		for _, phase := range Phases {
			img := buildImage(area, phase)
			c.images = append(c.images, img)
			c.overlays = append(c.overlays, buildOverlays(area, img)...)

			rng := phaseRand(seed, area.ID, phase)
			c.metrics = append(c.metrics, buildMetrics(area, phase, n, rng))
		}
	}
	return c
}

// WithAreas returns a copy of c whose study areas are replaced by areas with
// matching ids. Derived records are shared; only area metadata changes.
func (c *Catalog) WithAreas(areas []StudyArea) *Catalog {
	out := *c
	out.areas = make([]StudyArea, len(c.areas))
	copy(out.areas, c.areas)
	for _, a := range areas {
		if i, ok := c.areaIdx[a.ID]; ok {
			out.areas[i] = a
		}
	}
	return &out
}

// Seed returns the generator seed the catalog was built with.
func (c *Catalog) Seed() uint64 { return c.seed }

// Areas returns a copy of the study areas in declaration order.
func (c *Catalog) Areas() []StudyArea {
	out := make([]StudyArea, len(c.areas))
	copy(out, c.areas)
	return out
}

// Area looks up a study area by id.
func (c *Catalog) Area(id string) (StudyArea, bool) {
	i, ok := c.areaIdx[id]
	if !ok {
		return StudyArea{}, false
	}
	return c.areas[i], true
}

// Images returns a copy of every SAR image.
func (c *Catalog) Images() []SARImage {
	out := make([]SARImage, len(c.images))
	copy(out, c.images)
	return out
}

// Overlays returns a fresh copy of every overlay with its default enabled
// flag. Callers own the returned slice.
func (c *Catalog) Overlays() []ImageOverlay {
	out := make([]ImageOverlay, len(c.overlays))
	copy(out, c.overlays)
	return out
}

// Metrics returns a copy of every flood metrics record.
func (c *Catalog) Metrics() []FloodMetrics {
	out := make([]FloodMetrics, len(c.metrics))
	copy(out, c.metrics)
	return out
}

// Snapshot returns the serialisable form of the catalog.
func (c *Catalog) Snapshot() CatalogSnapshot {
	return CatalogSnapshot{
		Seed:     c.seed,
		Areas:    c.Areas(),
		Images:   c.Images(),
		Overlays: c.Overlays(),
		Metrics:  c.Metrics(),
	}
}

// ImageURL builds the asset path for a study area, phase and file name.
func ImageURL(areaName string, phase Phase, file string) string {
	return fmt.Sprintf("/Snippet/%s/%s/%s", phase.Folder(), areaName, file)
}

// ImageID returns the SAR image id for an area and phase.
func ImageID(areaID string, phase Phase) string {
	return fmt.Sprintf("img-%s-%s", areaID, phaseTable[phase].short)
}

// OverlayID returns the overlay id for an image and overlay type.
func OverlayID(imageID string, t OverlayType) string {
	return fmt.Sprintf("overlay-%s-%s", imageID, overlayTable[t].suffix)
}

// MetricsID returns the flood metrics id for an area and phase.
func MetricsID(areaID string, phase Phase) string {
	return fmt.Sprintf("metric-%s-%s", areaID, phaseTable[phase].short)
}

func buildImage(area StudyArea, phase Phase) SARImage {
	info := phaseTable[phase]
	return SARImage{
		ID:          ImageID(area.ID, phase),
		StudyAreaID: area.ID,
		ImageURL:    ImageURL(area.Name, phase, OverlayBaseSARReference.FileName()),
		Phase:       phase,
		CaptureDate: info.date,
		Satellite:   info.satellite,
		Metadata:    ImageMetadata{Polarization: "VV+VH", Resolution: "10m", Orbit: info.orbit},
	}
}

func buildOverlays(area StudyArea, img SARImage) []ImageOverlay {
	out := make([]ImageOverlay, 0, len(OverlayTypes))
	for _, t := range OverlayTypes {
		out = append(out, ImageOverlay{
			ID:          OverlayID(img.ID, t),
			SARImageID:  img.ID,
			OverlayType: t,
			OverlayData: overlayTable[t].data,
			ImageURL:    ImageURL(area.Name, img.Phase, t.FileName()),
			Enabled:     t == OverlayEnhancedColor,
		})
	}
	return out
}

func buildMetrics(area StudyArea, phase Phase, n int, rng *rand.Rand) FloodMetrics {
	base := float64(n * 10)
	m := FloodMetrics{
		ID:           MetricsID(area.ID, phase),
		StudyAreaID:  area.ID,
		Phase:        phase,
		AnalysisDate: phase.Date(),
	}

	switch phase {
	case PhasePreFlood:
		m.WaterCoverageKm2 = base + rng.Float64()*5
		m.InfrastructureDamage = NewBaselineDamage(BaselineDamage{Status: "normal", RiskLevel: "low"})
	case PhaseDuringEvent:
		m.WaterCoverageKm2 = base*3 + rng.Float64()*10
		m.AffectedPopulation = 30000 + n*5000 + int(math.Floor(rng.Float64()*10000))
		m.InfrastructureDamage = NewEventDamage(EventDamage{
			RoadsAffected:    20 + n,
			BuildingsDamaged: 100 + n*15,
			EstimatedCostUSD: float64(10_000_000 + n*5_000_000),
		})
	case PhasePostAnalysis:
		m.WaterCoverageKm2 = base + rng.Float64()*3
		m.AffectedPopulation = 5000 + n*1000 + int(math.Floor(rng.Float64()*2000))
		m.InfrastructureDamage = NewRecoveryDamage(RecoveryDamage{
			RecoveryRate:          0.60 + rng.Float64()*0.30,
			OngoingRepairs:        20 + n*5,
			EstimatedRecoveryDays: 30 + n*15,
		})
	}
	return m
}

// areaNumber is the numeric form of an area id, falling back to the
// 1-based position for non-numeric ids.
func areaNumber(id string, index int) int {
	if n, err := strconv.Atoi(id); err == nil {
		return n
	}
	return index + 1
}

// phaseRand derives an independent generator for one (area, phase) pair.
func phaseRand(seed uint64, areaID string, phase Phase) *rand.Rand {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	h.Write(buf[:])
	h.Write([]byte(areaID))
	h.Write([]byte{0})
	h.Write([]byte(phase))
	key := h.Sum64()
	return rand.New(rand.NewPCG(seed, key))
}
