package http

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/portal"
	"github.com/couchcryptid/sikkim-flood-portal/internal/session"
	"github.com/couchcryptid/sikkim-flood-portal/internal/upload"
)

var funcMap = template.FuncMap{
	"fmtDate": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("Jan 2, 2006")
	},
	"km2":    func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
	"coord":  func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) },
	"signed": domain.FormatSigned,
	"imgSrc": imgSrc,
	"overlayLabel": func(t domain.OverlayType) string {
		return t.Label()
	},
	"overlayColor": func(t domain.OverlayType) template.CSS {
		return template.CSS(t.Color())
	},
}

// imgSrc marks catalog asset paths and uploaded image data URLs as safe
// image sources. Anything else is replaced with an inert fragment.
func imgSrc(s string) template.URL {
	local := strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//")
	if local || strings.HasPrefix(s, "data:image/") {
		return template.URL(s) //nolint:gosec // restricted to local paths and image data URLs
	}
	return "#"
}

var portalTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplPortal))

func (h *handler) render(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := portalTmpl.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("template error", "error", err)
	}
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	var page portal.Page
	_, err := h.inSession(w, r, func(id string) (err error) {
		page, err = h.svc.Page(id)
		return err
	})
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	h.render(w, page)
}

// Form actions apply one intent and redirect back to the section it came
// from. Malformed form values leave the session untouched.

func redirectTo(w http.ResponseWriter, r *http.Request, anchor string) {
	http.Redirect(w, r, "/#"+anchor, http.StatusSeeOther)
}

func (h *handler) actionArea(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "platform", func(id string) error {
		_, err := h.svc.SelectArea(id, r.PostFormValue("area_id"))
		return err
	})
}

func (h *handler) actionPhase(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "platform", func(id string) error {
		phase, err := domain.ParsePhase(r.PostFormValue("phase"))
		if err != nil {
			return nil
		}
		_, err = h.svc.SelectPhase(id, phase)
		return err
	})
}

func (h *handler) actionOverlay(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "platform", func(id string) error {
		_, err := h.svc.ToggleOverlay(id, chi.URLParam(r, "overlayID"))
		return err
	})
}

func (h *handler) actionViewMode(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "platform", func(id string) error {
		mode, err := session.ParseViewMode(r.PostFormValue("mode"))
		if err != nil {
			return nil
		}
		_, err = h.svc.SetViewMode(id, mode)
		return err
	})
}

func (h *handler) actionTab(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "evidence", func(id string) error {
		tab, err := session.ParseTab(r.PostFormValue("tab"))
		if err != nil {
			return nil
		}
		_, err = h.svc.SetTab(id, tab)
		return err
	})
}

func (h *handler) actionFinding(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "findings", func(id string) error {
		findingID, err := strconv.Atoi(chi.URLParam(r, "findingID"))
		if err != nil {
			return nil
		}
		_, err = h.svc.ToggleFinding(id, findingID)
		return err
	})
}

func (h *handler) actionTimeline(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "timeline", func(id string) error {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			return nil
		}
		_, err = h.svc.ToggleTimelineEvent(id, index)
		return err
	})
}

func (h *handler) actionUpload(w http.ResponseWriter, r *http.Request) {
	files, status, err := h.multipartFiles(w, r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	h.act(w, r, "uploads", func(id string) error {
		_, _, err := h.svc.AddUploads(r.Context(), id, files)
		return err
	})
}

func (h *handler) actionUpdateUpload(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "uploads", func(id string) error {
		field, err := session.ParseUploadField(r.PostFormValue("field"))
		if err != nil {
			return nil
		}
		_, err = h.svc.UpdateUpload(id, chi.URLParam(r, "uploadID"), field, r.PostFormValue("value"))
		return err
	})
}

func (h *handler) actionRemoveUpload(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "uploads", func(id string) error {
		_, err := h.svc.RemoveUpload(id, chi.URLParam(r, "uploadID"))
		return err
	})
}

func (h *handler) act(w http.ResponseWriter, r *http.Request, anchor string, fn func(sessionID string) error) {
	if _, err := h.inSession(w, r, fn); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownUpload):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.Error("form action failed", "path", r.URL.Path, "error", err)
			http.Error(w, "action failed", http.StatusInternalServerError)
		}
		return
	}
	redirectTo(w, r, anchor)
}

// multipartFiles caps the request body and returns the files submitted under
// the "files" field.
func (h *handler) multipartFiles(w http.ResponseWriter, r *http.Request) ([]upload.File, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, errors.New("upload exceeds size limit")
		}
		return nil, http.StatusBadRequest, errors.New("invalid multipart form")
	}
	return upload.FromMultipart(r.MultipartForm.File["files"]), http.StatusOK, nil
}
