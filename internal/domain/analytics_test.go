package domain_test

import (
	"testing"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_WaterIncrease(t *testing.T) {
	metrics := []domain.FloodMetrics{
		{Phase: domain.PhasePreFlood, WaterCoverageKm2: 10.0},
		{Phase: domain.PhaseDuringEvent, WaterCoverageKm2: 15.0,
			InfrastructureDamage: domain.NewEventDamage(domain.EventDamage{RoadsAffected: 21})},
	}

	a, ok := domain.Analyze(metrics, domain.PhaseDuringEvent)
	require.True(t, ok)

	assert.InDelta(t, 5.0, a.WaterIncrease, 1e-9)
	assert.InDelta(t, 50.0, a.WaterIncreasePercent, 1e-9)
	assert.Equal(t, "50.0", domain.FormatPercent(a.WaterIncreasePercent))
	assert.Equal(t, "50.0", a.PercentDisplay)
	assert.Equal(t, "Critical", a.Status)
}

func TestAnalyze_PreFloodAgainstItself(t *testing.T) {
	metrics := []domain.FloodMetrics{
		{Phase: domain.PhasePreFlood, WaterCoverageKm2: 12.5,
			InfrastructureDamage: domain.NewBaselineDamage(domain.BaselineDamage{Status: "normal", RiskLevel: "low"})},
	}

	a, ok := domain.Analyze(metrics, domain.PhasePreFlood)
	require.True(t, ok)

	assert.Zero(t, a.WaterIncrease)
	assert.Equal(t, "0.0", a.PercentDisplay)
	assert.Equal(t, "Normal", a.Status)
	assert.Equal(t, []domain.DamageRow{{Label: "Status", Value: "normal"}}, a.DamageRows)
}

func TestAnalyze_MissingRecordsRenderNothing(t *testing.T) {
	onlyDuring := []domain.FloodMetrics{{Phase: domain.PhaseDuringEvent, WaterCoverageKm2: 15}}
	_, ok := domain.Analyze(onlyDuring, domain.PhaseDuringEvent)
	assert.False(t, ok, "missing baseline")

	onlyPre := []domain.FloodMetrics{{Phase: domain.PhasePreFlood, WaterCoverageKm2: 10}}
	_, ok = domain.Analyze(onlyPre, domain.PhasePostAnalysis)
	assert.False(t, ok, "missing current")

	_, ok = domain.Analyze(nil, domain.PhasePreFlood)
	assert.False(t, ok)
}

func TestAnalyze_KeepsFullPrecision(t *testing.T) {
	metrics := []domain.FloodMetrics{
		{Phase: domain.PhasePreFlood, WaterCoverageKm2: 3.0},
		{Phase: domain.PhasePostAnalysis, WaterCoverageKm2: 4.0},
	}

	a, ok := domain.Analyze(metrics, domain.PhasePostAnalysis)
	require.True(t, ok)

	assert.InDelta(t, 100.0/3.0, a.WaterIncreasePercent, 1e-12)
	assert.Equal(t, "33.3", a.PercentDisplay)
}

func TestDamageRows(t *testing.T) {
	event := domain.DamageRows(domain.NewEventDamage(domain.EventDamage{
		RoadsAffected: 23, BuildingsDamaged: 145, EstimatedCostUSD: 25_000_000,
	}))
	assert.Equal(t, []domain.DamageRow{
		{Label: "Roads Affected", Value: "23"},
		{Label: "Buildings Damaged", Value: "145"},
		{Label: "Estimated Cost", Value: "$25.0M"},
	}, event)

	recovery := domain.DamageRows(domain.NewRecoveryDamage(domain.RecoveryDamage{
		RecoveryRate: 0.756, OngoingRepairs: 35, EstimatedRecoveryDays: 75,
	}))
	assert.Equal(t, []domain.DamageRow{
		{Label: "Recovery Rate", Value: "76%"},
		{Label: "Ongoing Repairs", Value: "35"},
		{Label: "Est. Recovery Time", Value: "75 days"},
	}, recovery)

	assert.Nil(t, domain.DamageRows(domain.InfrastructureDamage{}))
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+5.0", domain.FormatSigned(5))
	assert.Equal(t, "-2.3", domain.FormatSigned(-2.26))
	assert.Equal(t, "0.0", domain.FormatSigned(0))
}

func TestInfrastructureDamage_Valid(t *testing.T) {
	assert.True(t, domain.NewBaselineDamage(domain.BaselineDamage{}).Valid())
	assert.True(t, domain.NewEventDamage(domain.EventDamage{}).Valid())
	assert.True(t, domain.NewRecoveryDamage(domain.RecoveryDamage{}).Valid())

	mismatched := domain.NewEventDamage(domain.EventDamage{})
	mismatched.Phase = domain.PhasePreFlood
	assert.False(t, mismatched.Valid())
	assert.False(t, domain.InfrastructureDamage{}.Valid())
}
