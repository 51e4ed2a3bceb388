package domain

// EventSeverity classifies a timeline entry.
type EventSeverity string

const (
	SeverityInfo     EventSeverity = "info"
	SeverityWarning  EventSeverity = "warning"
	SeverityCritical EventSeverity = "critical"
)

// TimelineEvent is one entry of the narrative event timeline.
type TimelineEvent struct {
	Date        string        `json:"date"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        EventSeverity `json:"type"`
}

// Finding is a key conclusion with an expandable detail paragraph.
type Finding struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Details     string `json:"details"`
	Metric      string `json:"metric"`
	MetricLabel string `json:"metricLabel"`
}

// GalleryImage is a captioned image in the SAR evidence tab.
type GalleryImage struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Method describes one technique of the analysis methodology.
type Method struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Content is the static narrative shown around the interactive platform.
type Content struct {
	Timeline []TimelineEvent `json:"timeline"`
	Findings []Finding       `json:"findings"`
	Gallery  []GalleryImage  `json:"gallery"`
	Methods  []Method        `json:"methods"`
	MapURL   string          `json:"mapUrl"`
}

// FindFinding reports whether id names a finding.
func (c Content) FindFinding(id int) (Finding, bool) {
	for _, f := range c.Findings {
		if f.ID == id {
			return f, true
		}
	}
	return Finding{}, false
}

// DefaultMapURL is the embedded flood impact map.
const DefaultMapURL = "https://www.google.com/maps/d/u/0/embed?mid=1x9DPs9bzque2GK8jhK8u0IbLWTtE0dk&ehbc=2E312F"

// DefaultContent returns the narrative content, embedding mapURL.
func DefaultContent(mapURL string) Content {
	if mapURL == "" {
		mapURL = DefaultMapURL
	}
	return Content{
		Timeline: defaultTimeline(),
		Findings: defaultFindings(),
		Gallery:  defaultGallery(),
		Methods:  defaultMethods(),
		MapURL:   mapURL,
	}
}

func defaultTimeline() []TimelineEvent {
	return []TimelineEvent{
		{
			Date:  "May 31, 2025",
			Title: "Onset of Torrential Rainfall",
			Description: "Pre-monsoon and early monsoon rains intensified rapidly across the region, particularly in North Sikkim, " +
				"causing initial road blockades and saturation of mountain slopes.",
			Type: SeverityInfo,
		},
		{
			Date:  "June 1, 2025 (Morning)",
			Title: "IMD Red Alert & River Surge",
			Description: "The India Meteorological Department (IMD) issued a Red Alert for the Mangan district. " +
				"The Teesta River water level rose significantly, causing disruptions along its banks.",
			Type: SeverityWarning,
		},
		{
			Date:  "June 1, 2025 (Evening)",
			Title: "Catastrophic Landslides & Road Severance",
			Description: "Multiple massive landslides struck the Chaten area (Mangan district), including an army camp. " +
				"Critical infrastructure, including the Sanklang suspension bridge and Phidang Bridge, collapsed, completely " +
				"cutting off Chungthang, Lachen, and Lachung, trapping over 1,500 tourists.",
			Type: SeverityCritical,
		},
		{
			Date:  "June 2, 2025",
			Title: "Joint Rescue Operations Begin",
			Description: "The Indian Army, Indian Air Force (IAF), NDRF, and BRO launched large-scale rescue and relief efforts, " +
				"focusing on airlifting stranded personnel and tourists from isolated regions like Chaten.",
			Type: SeverityInfo,
		},
		{
			Date:  "June 5, 2025",
			Title: "Impact Assessment & Evacuation Complete",
			Description: "Rescue teams completed the evacuation of over 1,800 stranded tourists. Initial casualty reports confirmed " +
				"3 deaths, with search operations continuing for 6 missing individuals, including army personnel, from the Chaten " +
				"landslide incident. Restoration work commenced on damaged National Highways (NH-10).",
			Type: SeverityInfo,
		},
	}
}

func defaultFindings() []Finding {
	return []Finding{
		{
			ID:      1,
			Title:   "Lake Expansion Detected",
			Summary: "SAR analysis revealed a 35% increase in South Lhonak Lake surface area over the past decade.",
			Details: "Using multi-temporal SAR imagery analysis, we observed systematic expansion of the glacial lake boundaries. " +
				"The lake area increased from approximately 60 hectares to 81 hectares between 2013 and 2023, indicating accelerated " +
				"glacial melt and increased flood risk. This expansion rate correlates with regional temperature increase data.",
			Metric:      "35%",
			MetricLabel: "Area Increase",
		},
		{
			ID:      2,
			Title:   "Terrain Deformation Patterns",
			Summary: "Interferometric SAR data shows subsidence patterns in the moraine dam structure.",
			Details: "InSAR analysis detected progressive subsidence of up to 15cm in the moraine dam structure over 18 months " +
				"preceding the event. This deformation pattern, combined with increased pore water pressure indicators, suggested " +
				"structural weakening that ultimately led to catastrophic failure.",
			Metric:      "15cm",
			MetricLabel: "Subsidence Detected",
		},
		{
			ID:      3,
			Title:   "Flood Impact Mapping",
			Summary: "Post-event imagery confirms flood waters traveled over 100 km downstream.",
			Details: "SAR-based flood extent mapping revealed that the flood waters affected over 350 square kilometers of terrain " +
				"along the Teesta River corridor. The analysis identified 23 critical infrastructure points damaged, including " +
				"bridges, roads, and hydroelectric facilities. Peak flood velocity was estimated at 15-20 m/s in narrow valley sections.",
			Metric:      "350 km²",
			MetricLabel: "Affected Area",
		},
		{
			ID:      4,
			Title:   "Climate Change Correlation",
			Summary: "Long-term SAR monitoring data correlates with regional temperature increases.",
			Details: "Analysis of 15 years of SAR data shows a clear correlation between rising average temperatures (1.5°C increase) " +
				"and glacial lake expansion rates. The frequency of GLOF events in the region has increased by 300% since 2000, " +
				"with South Lhonak Lake identified as a high-risk site since 2016.",
			Metric:      "+1.5°C",
			MetricLabel: "Temperature Rise",
		},
	}
}

func defaultGallery() []GalleryImage {
	return []GalleryImage{
		{
			ID:          1,
			Title:       "Pre-Flood SAR Image",
			Date:        "May 17, 2025",
			Description: "Baseline synthetic aperture radar imagery showing normal water levels and terrain stability.",
			ImageURL:    ImageURL("Mangan", PhasePreFlood, "SAR.jpg"),
		},
		{
			ID:          2,
			Title:       "During Flood Event",
			Date:        "June 1, 2025",
			Description: "SAR imagery captured during the catastrophic flood event showing significant water accumulation and displacement.",
			ImageURL:    ImageURL("Mangan", PhaseDuringEvent, "SAR.jpg"),
		},
		{
			ID:          3,
			Title:       "Post-Flood Analysis",
			Date:        "July 4, 2025",
			Description: "Post-event analysis revealing altered terrain patterns and residual flood impact zones.",
			ImageURL:    ImageURL("Mangan", PhasePostAnalysis, "SAR.jpg"),
		},
	}
}

func defaultMethods() []Method {
	return []Method{
		{
			Title:       "Interferometric SAR (InSAR)",
			Description: "Used for detecting terrain deformation and subsidence patterns in the moraine dam structure with millimeter-level precision.",
		},
		{
			Title:       "Change Detection Analysis",
			Description: "Multi-temporal comparison of SAR backscatter values to identify water extent changes and flood progression patterns.",
		},
		{
			Title:       "Polarimetric Decomposition",
			Description: "Analysis of dual-polarization SAR data to distinguish between surface water, vegetation, and urban structures.",
		},
		{
			Title:       "Machine Learning Classification",
			Description: "Random Forest classifier trained on labeled SAR imagery for automated flood extent mapping and damage assessment.",
		},
	}
}
