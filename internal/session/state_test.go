package session_test

import (
	"testing"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = 2025

func testCatalog() *domain.Catalog {
	return domain.NewCatalog(domain.DefaultStudyAreas(), testSeed)
}

func TestNewState_Defaults(t *testing.T) {
	c := testCatalog()
	s := session.NewState(c)

	assert.Equal(t, "1", s.AreaID)
	assert.Equal(t, domain.PhasePreFlood, s.Phase)
	assert.Equal(t, session.TabSAR, s.Tab)
	assert.Equal(t, session.ViewGrid, s.ViewMode)
	assert.Equal(t, session.NoSelection, s.ExpandedFinding)
	assert.Equal(t, session.NoSelection, s.SelectedEvent)
	assert.Empty(t, s.Uploads)

	// Every image starts with its enhanced overlay active.
	assert.Len(t, s.ActiveOverlays, len(c.Images()))
	img := domain.ImageID("1", domain.PhasePreFlood)
	assert.Equal(t, domain.OverlayID(img, domain.OverlayEnhancedColor), s.ActiveOverlays[img])
}

func TestState_SelectArea(t *testing.T) {
	c := testCatalog()
	s := session.NewState(c)

	assert.True(t, s.SelectArea(c, "3"))
	assert.Equal(t, "3", s.AreaID)
	assert.False(t, s.SelectArea(c, "3"), "same area is not a change")
	assert.False(t, s.SelectArea(c, "99"))
	assert.Equal(t, "3", s.AreaID)
}

func TestState_SelectPhase(t *testing.T) {
	s := session.NewState(testCatalog())

	assert.True(t, s.SelectPhase(domain.PhaseDuringEvent))
	assert.False(t, s.SelectPhase(domain.PhaseDuringEvent))
	assert.False(t, s.SelectPhase("aftermath"))
	assert.Equal(t, domain.PhaseDuringEvent, s.Phase)
}

func TestState_ToggleOverlay(t *testing.T) {
	c := testCatalog()
	s := session.NewState(c)
	img := domain.ImageID("2", domain.PhaseDuringEvent)
	enhanced := domain.OverlayID(img, domain.OverlayEnhancedColor)
	vh := domain.OverlayID(img, domain.OverlayVHDecibel)

	require.True(t, s.ToggleOverlay(c, vh))
	assert.Equal(t, vh, s.ActiveOverlays[img])

	require.True(t, s.ToggleOverlay(c, vh))
	_, active := s.ActiveOverlays[img]
	assert.False(t, active, "toggling the active overlay disables it")

	require.True(t, s.ToggleOverlay(c, enhanced))
	assert.Equal(t, enhanced, s.ActiveOverlays[img])

	other := domain.ImageID("2", domain.PhasePreFlood)
	assert.Equal(t, domain.OverlayID(other, domain.OverlayEnhancedColor), s.ActiveOverlays[other],
		"other images are untouched")

	assert.False(t, s.ToggleOverlay(c, "overlay-nope"))
}

func TestState_OverlaysAtMostOneActivePerImage(t *testing.T) {
	c := testCatalog()
	s := session.NewState(c)
	img := domain.ImageID("4", domain.PhasePostAnalysis)
	for _, ot := range domain.OverlayTypes {
		s.ToggleOverlay(c, domain.OverlayID(img, ot))
	}

	active := 0
	for _, o := range s.Overlays(c) {
		if o.SARImageID == img && o.Enabled {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestState_SetTabAndViewMode(t *testing.T) {
	s := session.NewState(testCatalog())

	assert.True(t, s.SetTab(session.TabMethodology))
	assert.False(t, s.SetTab(session.TabMethodology))
	assert.False(t, s.SetTab("gallery"))
	assert.Equal(t, session.TabMethodology, s.Tab)

	assert.True(t, s.SetViewMode(session.ViewSplit))
	assert.False(t, s.SetViewMode("carousel"))
	assert.Equal(t, session.ViewSplit, s.ViewMode)
}

func TestState_ToggleFinding(t *testing.T) {
	content := domain.DefaultContent("")
	s := session.NewState(testCatalog())

	assert.True(t, s.ToggleFinding(content, 2))
	assert.Equal(t, 2, s.ExpandedFinding)

	assert.True(t, s.ToggleFinding(content, 3), "a different finding replaces the current one")
	assert.Equal(t, 3, s.ExpandedFinding)

	assert.True(t, s.ToggleFinding(content, 3))
	assert.Equal(t, session.NoSelection, s.ExpandedFinding)

	assert.False(t, s.ToggleFinding(content, 42))
}

func TestState_ToggleTimelineEvent(t *testing.T) {
	content := domain.DefaultContent("")
	s := session.NewState(testCatalog())

	assert.True(t, s.ToggleTimelineEvent(content, 0))
	assert.Equal(t, 0, s.SelectedEvent)
	assert.True(t, s.ToggleTimelineEvent(content, 0))
	assert.Equal(t, session.NoSelection, s.SelectedEvent)

	assert.False(t, s.ToggleTimelineEvent(content, -1))
	assert.False(t, s.ToggleTimelineEvent(content, len(content.Timeline)))
}

func TestState_Uploads(t *testing.T) {
	s := session.NewState(testCatalog())

	assert.False(t, s.AddUploads(nil))
	require.True(t, s.AddUploads([]domain.UploadedImage{
		{ID: "u1", Title: "first"},
		{ID: "u2", Title: "second"},
	}))
	require.True(t, s.AddUploads([]domain.UploadedImage{{ID: "u3", Title: "third"}}))
	assert.Equal(t, []string{"u1", "u2", "u3"}, uploadIDs(s))

	changed, err := s.UpdateUpload("u2", session.FieldTitle, "renamed")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "renamed", s.Uploads[1].Title)

	changed, err = s.UpdateUpload("u2", session.FieldTitle, "renamed")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = s.UpdateUpload("u1", session.FieldDescription, "river bank")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "river bank", s.Uploads[0].Description)

	_, err = s.UpdateUpload("missing", session.FieldTitle, "x")
	require.ErrorIs(t, err, domain.ErrUnknownUpload)

	_, err = s.UpdateUpload("u1", "caption", "x")
	require.ErrorIs(t, err, session.ErrUnknownField)

	require.NoError(t, s.RemoveUpload("u2"))
	assert.Equal(t, []string{"u1", "u3"}, uploadIDs(s))
	require.ErrorIs(t, s.RemoveUpload("u2"), domain.ErrUnknownUpload)
}

func TestState_CloneIsDeep(t *testing.T) {
	c := testCatalog()
	s := session.NewState(c)
	s.AddUploads([]domain.UploadedImage{{ID: "u1", Title: "a"}})

	clone := s.Clone()
	clone.Uploads[0].Title = "b"
	clone.ToggleOverlay(c, domain.OverlayID(domain.ImageID("1", domain.PhasePreFlood), domain.OverlayVVLinear))

	assert.Equal(t, "a", s.Uploads[0].Title)
	assert.Equal(t,
		domain.OverlayID(domain.ImageID("1", domain.PhasePreFlood), domain.OverlayEnhancedColor),
		s.ActiveOverlays[domain.ImageID("1", domain.PhasePreFlood)])
}

func TestParseHelpers(t *testing.T) {
	tab, err := session.ParseTab("methodology")
	require.NoError(t, err)
	assert.Equal(t, session.TabMethodology, tab)
	_, err = session.ParseTab("x")
	require.ErrorIs(t, err, session.ErrUnknownTab)

	mode, err := session.ParseViewMode("split")
	require.NoError(t, err)
	assert.Equal(t, session.ViewSplit, mode)
	_, err = session.ParseViewMode("x")
	require.ErrorIs(t, err, session.ErrUnknownView)

	field, err := session.ParseUploadField("description")
	require.NoError(t, err)
	assert.Equal(t, session.FieldDescription, field)
	_, err = session.ParseUploadField("x")
	require.ErrorIs(t, err, session.ErrUnknownField)
}

func uploadIDs(s session.State) []string {
	ids := make([]string, 0, len(s.Uploads))
	for _, u := range s.Uploads {
		ids = append(ids, u.ID)
	}
	return ids
}
