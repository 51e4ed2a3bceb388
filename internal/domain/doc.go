// Package domain models the SAR evidence for the 2025 Sikkim flood.
//
// # Study Areas and Phases
//
// Six study areas along the Teesta River are tracked across three flood
// phases. Each phase maps to an asset folder named after its acquisition date:
//
//	pre_flood      "17th May,2025"   Sentinel-1A, descending
//	during_event   "1st June,2025"   Sentinel-1A, descending
//	post_analysis  "4th July"        Sentinel-1B, ascending
//
// Comparison views always order phases pre_flood < during_event < post_analysis.
//
// # Asset Layout
//
// Images live at "/Snippet/<phase-folder>/<area-name>/<file>.jpg" where <file>
// is one of SAR, Enhanced, VH-decibel, VH-linear, VV-decibel, VV-linear. The
// base SAR image and the base_sar_reference overlay share SAR.jpg. Paths are
// never checked for existence; a missing file renders as a broken image.
//
// # Overlays
//
// Every SAR image carries six overlays, one per [OverlayType]. At most one
// overlay per image is enabled at a time; enhanced_color starts enabled. See
// [ToggleOverlay] for the selection rule and [DisplaySource] for which URL
// is rendered.
//
// # ID Generation
//
//	image    img-<area>-<pre|during|post>
//	overlay  overlay-<image id>-<enhanced|sar|vh-db|vh-linear|vv-db|vv-linear>
//	metrics  metric-<area>-<pre|during|post>
//
// # Mock Metrics
//
// Flood metrics are mock figures: a per-area base (10 × numeric area id) plus
// a uniform perturbation. Draws come from a PCG generator keyed by the catalog
// seed, area id and phase, so a given seed always reproduces the same catalog
// and adding an area never shifts the figures of another.
//
// Damage is a tagged variant, one case per phase:
//
//	pre_flood      status, risk level
//	during_event   roads affected, buildings damaged, estimated cost (USD)
//	post_analysis  recovery rate, ongoing repairs, estimated recovery days
package domain
