// Package session holds the per-visitor selection state of the portal and the
// in-memory store that keeps it between requests.
//
// State is a plain value mutated only through its reducer methods. Every
// reducer validates its input against the catalog or content it needs and
// reports whether the state actually changed; invalid input is ignored.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
)

// NoSelection marks an unset finding or timeline selection.
const NoSelection = -1

var (
	ErrUnknownSession = errors.New("unknown session")
	ErrUnknownTab     = errors.New("unknown tab")
	ErrUnknownView    = errors.New("unknown view mode")
	ErrUnknownField   = errors.New("unknown upload field")
)

// Tab is the content tab shown below the interactive platform.
type Tab string

const (
	TabSAR         Tab = "sar"
	TabMethodology Tab = "methodology"
)

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	t := Tab(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
	}
	return t, nil
}

func (t Tab) Valid() bool { return t == TabSAR || t == TabMethodology }

// ViewMode selects how the three phase images are compared.
type ViewMode string

const (
	ViewGrid  ViewMode = "grid"
	ViewSplit ViewMode = "split"
)

// ParseViewMode validates a view mode name.
func ParseViewMode(s string) (ViewMode, error) {
	m := ViewMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
	return m, nil
}

func (m ViewMode) Valid() bool { return m == ViewGrid || m == ViewSplit }

// UploadField is an editable text field of an uploaded image.
type UploadField string

const (
	FieldTitle       UploadField = "title"
	FieldDescription UploadField = "description"
)

// ParseUploadField validates an upload field name.
func ParseUploadField(s string) (UploadField, error) {
	f := UploadField(s)
	if f != FieldTitle && f != FieldDescription {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// State is everything a visitor has chosen. Overlay enablement is kept as the
// active overlay id per SAR image; images without an entry show no overlay.
type State struct {
	AreaID          string                 `json:"selectedArea"`
	Phase           domain.Phase           `json:"selectedPhase"`
	ActiveOverlays  map[string]string      `json:"activeOverlays"`
	Tab             Tab                    `json:"activeTab"`
	ExpandedFinding int                    `json:"expandedFinding"`
	SelectedEvent   int                    `json:"selectedEvent"`
	ViewMode        ViewMode               `json:"viewMode"`
	Uploads         []domain.UploadedImage `json:"uploadedImages"`
}

// NewState returns the initial state: first area, pre-flood phase, SAR tab,
// grid view, nothing expanded, overlays as generated by the catalog.
func NewState(c *domain.Catalog) State {
	s := State{
		Phase:           domain.PhasePreFlood,
		ActiveOverlays:  make(map[string]string),
		Tab:             TabSAR,
		ExpandedFinding: NoSelection,
		SelectedEvent:   NoSelection,
		ViewMode:        ViewGrid,
		Uploads:         []domain.UploadedImage{},
	}
	if areas := c.Areas(); len(areas) > 0 {
		s.AreaID = areas[0].ID
	}
	for _, o := range c.Overlays() {
		if o.Enabled {
			s.ActiveOverlays[o.SARImageID] = o.ID
		}
	}
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.ActiveOverlays = make(map[string]string, len(s.ActiveOverlays))
	for k, v := range s.ActiveOverlays {
		out.ActiveOverlays[k] = v
	}
	out.Uploads = slices.Clone(s.Uploads)
	if out.Uploads == nil {
		out.Uploads = []domain.UploadedImage{}
	}
	return out
}

// Overlays returns the catalog overlays with this state's enabled flags.
func (s State) Overlays(c *domain.Catalog) []domain.ImageOverlay {
	overlays := c.Overlays()
	for i := range overlays {
		overlays[i].Enabled = s.ActiveOverlays[overlays[i].SARImageID] == overlays[i].ID
	}
	return overlays
}

// SelectArea switches the study area. Unknown ids are ignored.
func (s *State) SelectArea(c *domain.Catalog, areaID string) bool {
	if _, ok := c.Area(areaID); !ok || s.AreaID == areaID {
		return false
	}
	s.AreaID = areaID
	return true
}

// SelectPhase switches the flood phase. Invalid phases are ignored.
func (s *State) SelectPhase(p domain.Phase) bool {
	if !p.Valid() || s.Phase == p {
		return false
	}
	s.Phase = p
	return true
}

// ToggleOverlay applies the single-selection rule for overlayID. Unknown ids
// are ignored.
func (s *State) ToggleOverlay(c *domain.Catalog, overlayID string) bool {
	toggled, ok := domain.ToggleOverlay(s.Overlays(c), overlayID)
	if !ok {
		return false
	}

	var imageID string
	for _, o := range toggled {
		if o.ID == overlayID {
			imageID = o.SARImageID
			break
		}
	}
	delete(s.ActiveOverlays, imageID)
	if active, ok := domain.ActiveOverlay(toggled, imageID); ok {
		s.ActiveOverlays[imageID] = active.ID
	}
	return true
}

// SetTab switches the content tab.
func (s *State) SetTab(t Tab) bool {
	if !t.Valid() || s.Tab == t {
		return false
	}
	s.Tab = t
	return true
}

// ToggleFinding expands the finding with id, or collapses it when it is
// already expanded. Expanding a different finding replaces the current one.
func (s *State) ToggleFinding(content domain.Content, id int) bool {
	if _, ok := content.FindFinding(id); !ok {
		return false
	}
	if s.ExpandedFinding == id {
		s.ExpandedFinding = NoSelection
	} else {
		s.ExpandedFinding = id
	}
	return true
}

// ToggleTimelineEvent selects the timeline entry at index using the same
// rule as ToggleFinding. Out-of-range indexes are ignored.
func (s *State) ToggleTimelineEvent(content domain.Content, index int) bool {
	if index < 0 || index >= len(content.Timeline) {
		return false
	}
	if s.SelectedEvent == index {
		s.SelectedEvent = NoSelection
	} else {
		s.SelectedEvent = index
	}
	return true
}

// SetViewMode switches between grid and split comparison.
func (s *State) SetViewMode(m ViewMode) bool {
	if !m.Valid() || s.ViewMode == m {
		return false
	}
	s.ViewMode = m
	return true
}

// AddUploads appends images in the given order.
func (s *State) AddUploads(images []domain.UploadedImage) bool {
	if len(images) == 0 {
		return false
	}
	s.Uploads = append(s.Uploads, images...)
	return true
}

// UpdateUpload sets the title or description of an uploaded image.
func (s *State) UpdateUpload(id string, field UploadField, value string) (bool, error) {
	i := s.uploadIndex(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", domain.ErrUnknownUpload, id)
	}
	img := &s.Uploads[i]
	switch field {
	case FieldTitle:
		if img.Title == value {
			return false, nil
		}
		img.Title = value
	case FieldDescription:
		if img.Description == value {
			return false, nil
		}
		img.Description = value
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return true, nil
}

// RemoveUpload deletes an uploaded image.
func (s *State) RemoveUpload(id string) error {
	i := s.uploadIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrUnknownUpload, id)
	}
	s.Uploads = slices.Delete(s.Uploads, i, i+1)
	return nil
}

func (s *State) uploadIndex(id string) int {
	return slices.IndexFunc(s.Uploads, func(u domain.UploadedImage) bool { return u.ID == id })
}
