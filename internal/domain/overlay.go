package domain

// OverlayType enumerates the file-backed overlay variants of a SAR image.
type OverlayType string

const (
	OverlayEnhancedColor    OverlayType = "enhanced_color"
	OverlayBaseSARReference OverlayType = "base_sar_reference"
	OverlayVHDecibel        OverlayType = "vh_decibel"
	OverlayVHLinear         OverlayType = "vh_linear"
	OverlayVVDecibel        OverlayType = "vv_decibel"
	OverlayVVLinear         OverlayType = "vv_linear"
)

// OverlayTypes lists the overlay variants in the order they are generated.
var OverlayTypes = []OverlayType{
	OverlayEnhancedColor,
	OverlayBaseSARReference,
	OverlayVHDecibel,
	OverlayVHLinear,
	OverlayVVDecibel,
	OverlayVVLinear,
}

type overlayInfo struct {
	suffix string // overlay id suffix
	file   string // asset file name without extension
	label  string
	color  string
	data   OverlayData
}

var overlayTable = map[OverlayType]overlayInfo{
	OverlayEnhancedColor: {
		suffix: "enhanced", file: "Enhanced", label: "Enhanced Color Composite", color: "#64748b",
		data: OverlayData{Features: "Color composite for visual clarity"},
	},
	OverlayBaseSARReference: {
		suffix: "sar", file: "SAR", label: "Base SAR Reference (VV+VH)", color: "#334155",
		data: OverlayData{Features: "Single-band SAR reference"},
	},
	OverlayVHDecibel: {
		suffix: "vh-db", file: "VH-decibel", label: "VH Decibel (Cross-Polarized)", color: "#facc15",
		data: OverlayData{Polarization: "VH", Scale: "Decibel"},
	},
	OverlayVHLinear: {
		suffix: "vh-linear", file: "VH-linear", label: "VH Linear", color: "#fb923c",
		data: OverlayData{Polarization: "VH", Scale: "Linear"},
	},
	OverlayVVDecibel: {
		suffix: "vv-db", file: "VV-decibel", label: "VV Decibel (Co-Polarized)", color: "#34d399",
		data: OverlayData{Polarization: "VV", Scale: "Decibel"},
	},
	OverlayVVLinear: {
		suffix: "vv-linear", file: "VV-linear", label: "VV Linear", color: "#10b981",
		data: OverlayData{Polarization: "VV", Scale: "Linear"},
	},
}

// Valid reports whether t is a known overlay type.
func (t OverlayType) Valid() bool {
	_, ok := overlayTable[t]
	return ok
}

// Label is the human-readable overlay name.
func (t OverlayType) Label() string { return overlayTable[t].label }

// Color is the swatch color shown next to the overlay.
func (t OverlayType) Color() string { return overlayTable[t].color }

// FileName is the asset file (with extension) backing the overlay.
func (t OverlayType) FileName() string { return overlayTable[t].file + ".jpg" }
