package domain_test

import (
	"math/rand/v2"
	"testing"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabledCount(overlays []domain.ImageOverlay) map[string]int {
	counts := map[string]int{}
	for _, o := range overlays {
		if o.Enabled {
			counts[o.SARImageID]++
		}
	}
	return counts
}

func TestToggleOverlay_SelectsTargetAndClearsSiblings(t *testing.T) {
	overlays := newTestCatalog().Overlays()

	got, ok := domain.ToggleOverlay(overlays, "overlay-img-1-pre-vv-db")
	require.True(t, ok)

	active, found := domain.ActiveOverlay(got, "img-1-pre")
	require.True(t, found)
	assert.Equal(t, "overlay-img-1-pre-vv-db", active.ID)
	assert.Equal(t, 1, enabledCount(got)["img-1-pre"])

	// input is not modified
	before, _ := domain.ActiveOverlay(overlays, "img-1-pre")
	assert.Equal(t, domain.OverlayEnhancedColor, before.OverlayType)
}

func TestToggleOverlay_ToggleOffLeavesNoneActive(t *testing.T) {
	overlays := newTestCatalog().Overlays()

	got, ok := domain.ToggleOverlay(overlays, "overlay-img-1-pre-enhanced")
	require.True(t, ok)

	_, found := domain.ActiveOverlay(got, "img-1-pre")
	assert.False(t, found)
}

func TestToggleOverlay_DoubleToggleRestores(t *testing.T) {
	overlays := newTestCatalog().Overlays()

	once, _ := domain.ToggleOverlay(overlays, "overlay-img-2-post-enhanced")
	twice, _ := domain.ToggleOverlay(once, "overlay-img-2-post-enhanced")

	assert.Equal(t, overlays, twice)
}

func TestToggleOverlay_CrossImageIsolation(t *testing.T) {
	overlays := newTestCatalog().Overlays()

	got, _ := domain.ToggleOverlay(overlays, "overlay-img-4-during-vh-linear")

	for i := range overlays {
		if overlays[i].SARImageID == "img-4-during" {
			continue
		}
		assert.Equal(t, overlays[i].Enabled, got[i].Enabled, overlays[i].ID)
	}
}

func TestToggleOverlay_UnknownIDIsNoop(t *testing.T) {
	overlays := newTestCatalog().Overlays()

	got, ok := domain.ToggleOverlay(overlays, "does-not-exist")

	assert.False(t, ok)
	assert.Equal(t, overlays, got)
}

func TestToggleOverlay_AtMostOneActiveUnderRandomSequence(t *testing.T) {
	overlays := newTestCatalog().Overlays()
	ids := make([]string, len(overlays))
	for i, o := range overlays {
		ids[i] = o.ID
	}
	ids = append(ids, "missing-1", "missing-2")

	rng := rand.New(rand.NewPCG(7, 11))
	for step := 0; step < 2000; step++ {
		overlays, _ = domain.ToggleOverlay(overlays, ids[rng.IntN(len(ids))])
		for img, n := range enabledCount(overlays) {
			require.LessOrEqual(t, n, 1, "step %d image %s", step, img)
		}
	}
}

func TestDisplaySource(t *testing.T) {
	img := domain.SARImage{ID: "img", ImageURL: "base.jpg"}
	overlays := []domain.ImageOverlay{
		{ID: "o1", SARImageID: "img", ImageURL: "a.jpg", Enabled: false},
		{ID: "o2", SARImageID: "img", ImageURL: "b.jpg", Enabled: true},
	}

	assert.Equal(t, "b.jpg", domain.DisplaySource(img, overlays))

	overlays, ok := domain.ToggleOverlay(overlays, "o2")
	require.True(t, ok)
	assert.Equal(t, "base.jpg", domain.DisplaySource(img, overlays))
}

func TestDisplaySource_IgnoresOtherImages(t *testing.T) {
	img := domain.SARImage{ID: "img-a", ImageURL: "base.jpg"}
	overlays := []domain.ImageOverlay{
		{ID: "o1", SARImageID: "img-b", ImageURL: "other.jpg", Enabled: true},
	}

	assert.Equal(t, "base.jpg", domain.DisplaySource(img, overlays))
}

func TestFilterByArea_Completeness(t *testing.T) {
	c := newTestCatalog()
	overlays := c.Overlays()

	for _, area := range c.Areas() {
		sel := domain.FilterByArea(c, overlays, area.ID)
		assert.Len(t, sel.Images, 3, area.ID)
		assert.Len(t, sel.Overlays, 18, area.ID)
		assert.Len(t, sel.Metrics, 3, area.ID)

		phases := map[domain.Phase]bool{}
		for _, img := range sel.Images {
			assert.Equal(t, area.ID, img.StudyAreaID)
			phases[img.Phase] = true
		}
		assert.Len(t, phases, 3)
	}
}

func TestFilterByArea_UsesCallerOverlayState(t *testing.T) {
	c := newTestCatalog()
	overlays, _ := domain.ToggleOverlay(c.Overlays(), "overlay-img-5-post-sar")

	sel := domain.FilterByArea(c, overlays, "5")

	active, ok := domain.ActiveOverlay(sel.Overlays, "img-5-post")
	require.True(t, ok)
	assert.Equal(t, domain.OverlayBaseSARReference, active.OverlayType)
}

func TestFilterByArea_UnknownArea(t *testing.T) {
	c := newTestCatalog()

	sel := domain.FilterByArea(c, c.Overlays(), "nope")

	assert.NotNil(t, sel.Images)
	assert.Empty(t, sel.Images)
	assert.Empty(t, sel.Overlays)
	assert.Empty(t, sel.Metrics)
}

func TestSortByPhase(t *testing.T) {
	images := []domain.SARImage{
		{ID: "c", Phase: domain.PhasePostAnalysis},
		{ID: "a", Phase: domain.PhasePreFlood},
		{ID: "b", Phase: domain.PhaseDuringEvent},
	}

	sorted := domain.SortByPhase(images)

	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "b", sorted[1].ID)
	assert.Equal(t, "c", sorted[2].ID)
	assert.Equal(t, "c", images[0].ID, "input must not be reordered")
}
