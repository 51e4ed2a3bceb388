package session

import (
	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
)

// PhaseOption is one button of the phase control.
type PhaseOption struct {
	Phase  domain.Phase `json:"phase"`
	Label  string       `json:"label"`
	Date   string       `json:"date"`
	Active bool         `json:"active"`
}

// ImagePanel is a SAR image with its overlays as currently toggled.
type ImagePanel struct {
	Image           domain.SARImage       `json:"sarImage"`
	Title           string                `json:"title"`
	Overlays        []domain.ImageOverlay `json:"overlays"`
	ActiveOverlayID string                `json:"activeOverlayId,omitempty"`
	DisplaySource   string                `json:"displaySource"`
	Selected        bool                  `json:"selected"`
}

// View is everything the page renders for one state.
type View struct {
	Areas           []domain.StudyArea     `json:"studyAreas"`
	Area            domain.StudyArea       `json:"selectedArea"`
	Phase           domain.Phase           `json:"selectedPhase"`
	Phases          []PhaseOption          `json:"phases"`
	Panels          []ImagePanel           `json:"panels"`
	Metrics         []domain.FloodMetrics  `json:"floodMetrics"`
	Analytics       *domain.Analytics      `json:"analytics,omitempty"`
	Tab             Tab                    `json:"activeTab"`
	ViewMode        ViewMode               `json:"viewMode"`
	ExpandedFinding int                    `json:"expandedFinding"`
	SelectedEvent   int                    `json:"selectedEvent"`
	Uploads         []domain.UploadedImage `json:"uploadedImages"`
}

// Current returns the panel of the selected phase.
func (v View) Current() (ImagePanel, bool) {
	for _, p := range v.Panels {
		if p.Selected {
			return p, true
		}
	}
	return ImagePanel{}, false
}

// View derives the rendered page model from s.
func (s State) View(c *domain.Catalog) View {
	sel := domain.FilterByArea(c, s.Overlays(c), s.AreaID)
	area, _ := c.Area(s.AreaID)

	v := View{
		Areas:           c.Areas(),
		Area:            area,
		Phase:           s.Phase,
		Phases:          make([]PhaseOption, 0, len(domain.Phases)),
		Panels:          make([]ImagePanel, 0, len(sel.Images)),
		Metrics:         sel.Metrics,
		Tab:             s.Tab,
		ViewMode:        s.ViewMode,
		ExpandedFinding: s.ExpandedFinding,
		SelectedEvent:   s.SelectedEvent,
		Uploads:         s.Clone().Uploads,
	}

	for _, p := range domain.Phases {
		v.Phases = append(v.Phases, PhaseOption{
			Phase:  p,
			Label:  p.Label(),
			Date:   p.Date().Format("Jan 2, 2006"),
			Active: p == s.Phase,
		})
	}

	for _, img := range domain.SortByPhase(sel.Images) {
		overlays := domain.OverlaysForImage(sel.Overlays, img.ID)
		panel := ImagePanel{
			Image:         img,
			Title:         img.Phase.Title(),
			Overlays:      overlays,
			DisplaySource: domain.DisplaySource(img, overlays),
			Selected:      img.Phase == s.Phase,
		}
		if active, ok := domain.ActiveOverlay(overlays, img.ID); ok {
			panel.ActiveOverlayID = active.ID
		}
		v.Panels = append(v.Panels, panel)
	}

	if a, ok := domain.Analyze(sel.Metrics, s.Phase); ok {
		v.Analytics = &a
	}
	return v
}
