package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/portal"
	"github.com/couchcryptid/sikkim-flood-portal/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	session.View
}

type areaResponse struct {
	Area     domain.StudyArea      `json:"studyArea"`
	Images   []domain.SARImage     `json:"sarImages"`
	Overlays []domain.ImageOverlay `json:"imageOverlays"`
	Metrics  []domain.FloodMetrics `json:"floodMetrics"`
}

type uploadsResponse struct {
	SessionID string                 `json:"sessionId"`
	Added     []domain.UploadedImage `json:"added"`
	Uploads   []domain.UploadedImage `json:"uploadedImages"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) apiAreas(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Catalog().Areas())
}

func (h *handler) apiArea(w http.ResponseWriter, r *http.Request) {
	c := h.svc.Catalog()
	id := chi.URLParam(r, "areaID")
	area, ok := c.Area(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown study area: "+id)
		return
	}
	sel := domain.FilterByArea(c, c.Overlays(), id)
	writeJSON(w, http.StatusOK, areaResponse{
		Area:     area,
		Images:   domain.SortByPhase(sel.Images),
		Overlays: sel.Overlays,
		Metrics:  sel.Metrics,
	})
}

func (h *handler) apiContent(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Content())
}

func (h *handler) apiSession(w http.ResponseWriter, r *http.Request) {
	var page portal.Page
	_, err := h.inSession(w, r, func(id string) (err error) {
		page, err = h.svc.Page(id)
		return err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session unavailable")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: page.SessionID, View: page.View})
}

func (h *handler) apiSelectArea(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AreaID string `json:"areaId"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.respondView(w, r, func(id string) (session.View, error) {
		return h.svc.SelectArea(id, req.AreaID)
	})
}

func (h *handler) apiSelectPhase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phase string `json:"phase"`
	}
	if !decode(w, r, &req) {
		return
	}
	phase, err := domain.ParsePhase(req.Phase)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondView(w, r, func(id string) (session.View, error) {
		return h.svc.SelectPhase(id, phase)
	})
}

func (h *handler) apiSetTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tab string `json:"tab"`
	}
	if !decode(w, r, &req) {
		return
	}
	tab, err := session.ParseTab(req.Tab)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondView(w, r, func(id string) (session.View, error) {
		return h.svc.SetTab(id, tab)
	})
}

func (h *handler) apiSetViewMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ViewMode string `json:"viewMode"`
	}
	if !decode(w, r, &req) {
		return
	}
	mode, err := session.ParseViewMode(req.ViewMode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondView(w, r, func(id string) (session.View, error) {
		return h.svc.SetViewMode(id, mode)
	})
}

func (h *handler) apiToggleOverlay(w http.ResponseWriter, r *http.Request) {
	overlayID := chi.URLParam(r, "overlayID")
	h.respondView(w, r, func(id string) (session.View, error) {
		return h.svc.ToggleOverlay(id, overlayID)
	})
}

func (h *handler) apiToggleFinding(w http.ResponseWriter, r *http.Request) {
	findingID, err := strconv.Atoi(chi.URLParam(r, "findingID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "finding id must be an integer")
		return
	}
	h.respondView(w, r, func(id string) (session.View, error) {
		return h.svc.ToggleFinding(id, findingID)
	})
}

func (h *handler) apiToggleTimeline(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "timeline index must be an integer")
		return
	}
	h.respondView(w, r, func(id string) (session.View, error) {
		return h.svc.ToggleTimelineEvent(id, index)
	})
}

func (h *handler) apiAddUploads(w http.ResponseWriter, r *http.Request) {
	files, status, err := h.multipartFiles(w, r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	var (
		view  session.View
		added []domain.UploadedImage
	)
	id, err := h.inSession(w, r, func(id string) (err error) {
		view, added, err = h.svc.AddUploads(r.Context(), id, files)
		return err
	})
	if err != nil {
		h.logger.Error("upload failed", "session_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	if added == nil {
		added = []domain.UploadedImage{}
	}
	writeJSON(w, http.StatusCreated, uploadsResponse{SessionID: id, Added: added, Uploads: view.Uploads})
}

func (h *handler) apiUpdateUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Title == nil && req.Description == nil {
		writeError(w, http.StatusBadRequest, "title or description is required")
		return
	}
	uploadID := chi.URLParam(r, "uploadID")
	h.respondView(w, r, func(id string) (session.View, error) {
		var (
			view session.View
			err  error
		)
		if req.Title != nil {
			if view, err = h.svc.UpdateUpload(id, uploadID, session.FieldTitle, *req.Title); err != nil {
				return view, err
			}
		}
		if req.Description != nil {
			view, err = h.svc.UpdateUpload(id, uploadID, session.FieldDescription, *req.Description)
		}
		return view, err
	})
}

func (h *handler) apiRemoveUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")
	h.respondView(w, r, func(id string) (session.View, error) {
		return h.svc.RemoveUpload(id, uploadID)
	})
}

// respondView runs fn against the caller's session and writes the resulting
// view, mapping domain errors onto status codes.
func (h *handler) respondView(w http.ResponseWriter, r *http.Request, fn func(sessionID string) (session.View, error)) {
	var view session.View
	id, err := h.inSession(w, r, func(id string) (err error) {
		view, err = fn(id)
		return err
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, View: view})
	case errors.Is(err, domain.ErrUnknownUpload):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrUnknownField):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("session update failed", "session_id", id, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "session update failed")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
