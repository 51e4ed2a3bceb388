package domain

import (
	"fmt"
	"strconv"
)

// Analytics is the summary shown for the selected area and phase.
type Analytics struct {
	Phase                Phase        `json:"phase"`
	Status               string       `json:"status"`
	Current              FloodMetrics `json:"current"`
	Baseline             FloodMetrics `json:"baseline"`
	WaterIncrease        float64      `json:"waterIncrease"`
	WaterIncreasePercent float64      `json:"waterIncreasePercent"`
	PercentDisplay       string       `json:"waterIncreasePercentDisplay"`
	DamageRows           []DamageRow  `json:"damageRows"`
}

// DamageRow is one labelled line of the phase-specific damage breakdown.
type DamageRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Analyze compares the metrics of phase with the pre-flood baseline. It
// returns false when either record is missing from metrics.
func Analyze(metrics []FloodMetrics, phase Phase) (Analytics, bool) {
	current, ok := findMetrics(metrics, phase)
	if !ok {
		return Analytics{}, false
	}
	baseline, ok := findMetrics(metrics, PhasePreFlood)
	if !ok {
		return Analytics{}, false
	}

	increase := current.WaterCoverageKm2 - baseline.WaterCoverageKm2
	percent := increase / baseline.WaterCoverageKm2 * 100
	return Analytics{
		Phase:                phase,
		Status:               phase.Status(),
		Current:              current,
		Baseline:             baseline,
		WaterIncrease:        increase,
		WaterIncreasePercent: percent,
		PercentDisplay:       FormatPercent(percent),
		DamageRows:           DamageRows(current.InfrastructureDamage),
	}, true
}

// FormatPercent renders a percentage with one decimal place, e.g. "50.0".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatSigned renders v with one decimal place and a leading "+" when positive.
func FormatSigned(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}

// DamageRows renders the populated damage variant as labelled rows.
func DamageRows(d InfrastructureDamage) []DamageRow {
	switch {
	case d.Baseline != nil:
		return []DamageRow{
			{Label: "Status", Value: d.Baseline.Status},
		}
	case d.Event != nil:
		return []DamageRow{
			{Label: "Roads Affected", Value: strconv.Itoa(d.Event.RoadsAffected)},
			{Label: "Buildings Damaged", Value: strconv.Itoa(d.Event.BuildingsDamaged)},
			{Label: "Estimated Cost", Value: fmt.Sprintf("$%.1fM", d.Event.EstimatedCostUSD/1_000_000)},
		}
	case d.Recovery != nil:
		return []DamageRow{
			{Label: "Recovery Rate", Value: fmt.Sprintf("%.0f%%", d.Recovery.RecoveryRate*100)},
			{Label: "Ongoing Repairs", Value: strconv.Itoa(d.Recovery.OngoingRepairs)},
			{Label: "Est. Recovery Time", Value: fmt.Sprintf("%d days", d.Recovery.EstimatedRecoveryDays)},
		}
	default:
		return nil
	}
}

func findMetrics(metrics []FloodMetrics, phase Phase) (FloodMetrics, bool) {
	for _, m := range metrics {
		if m.Phase == phase {
			return m, true
		}
	}
	return FloodMetrics{}, false
}
