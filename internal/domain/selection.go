package domain

// ToggleOverlay applies the single-selection rule to overlays and returns the
// resulting slice. The target overlay is flipped and every other overlay of
// the same SAR image is disabled; overlays of other images are untouched. An
// unknown id returns the input unchanged and false.
func ToggleOverlay(overlays []ImageOverlay, overlayID string) ([]ImageOverlay, bool) {
	target := -1
	for i := range overlays {
		if overlays[i].ID == overlayID {
			target = i
			break
		}
	}
	if target < 0 {
		return overlays, false
	}

	imageID := overlays[target].SARImageID
	out := make([]ImageOverlay, len(overlays))
	copy(out, overlays)
	for i := range out {
		if out[i].SARImageID != imageID {
			continue
		}
		if i == target {
			out[i].Enabled = !out[i].Enabled
		} else {
			out[i].Enabled = false
		}
	}
	return out, true
}

// OverlaysForImage returns the overlays belonging to imageID, in input order.
func OverlaysForImage(overlays []ImageOverlay, imageID string) []ImageOverlay {
	var out []ImageOverlay
	for _, o := range overlays {
		if o.SARImageID == imageID {
			out = append(out, o)
		}
	}
	return out
}

// ActiveOverlay returns the enabled overlay of imageID, if any.
func ActiveOverlay(overlays []ImageOverlay, imageID string) (ImageOverlay, bool) {
	for _, o := range overlays {
		if o.SARImageID == imageID && o.Enabled {
			return o, true
		}
	}
	return ImageOverlay{}, false
}

// DisplaySource is the image URL rendered for img: the enabled overlay's URL
// when one exists, otherwise the base image URL.
func DisplaySource(img SARImage, overlays []ImageOverlay) string {
	if o, ok := ActiveOverlay(overlays, img.ID); ok {
		return o.ImageURL
	}
	return img.ImageURL
}

// AreaSelection is the visible subset of the catalog for one study area.
type AreaSelection struct {
	Images   []SARImage     `json:"sarImages"`
	Overlays []ImageOverlay `json:"imageOverlays"`
	Metrics  []FloodMetrics `json:"floodMetrics"`
}

// FilterByArea returns the images, overlays and metrics of areaID. overlays
// carries the caller's current enabled flags. Unknown ids yield empty slices.
func FilterByArea(c *Catalog, overlays []ImageOverlay, areaID string) AreaSelection {
	sel := AreaSelection{
		Images:   []SARImage{},
		Overlays: []ImageOverlay{},
		Metrics:  []FloodMetrics{},
	}

	imageIDs := make(map[string]struct{}, len(Phases))
	for _, img := range c.images {
		if img.StudyAreaID == areaID {
			sel.Images = append(sel.Images, img)
			imageIDs[img.ID] = struct{}{}
		}
	}
	for _, o := range overlays {
		if _, ok := imageIDs[o.SARImageID]; ok {
			sel.Overlays = append(sel.Overlays, o)
		}
	}
	for _, m := range c.metrics {
		if m.StudyAreaID == areaID {
			sel.Metrics = append(sel.Metrics, m)
		}
	}
	return sel
}
