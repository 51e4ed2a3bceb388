// Package portal coordinates the catalog, visitor sessions, uploads and the
// activity stream behind the HTTP adapter.
package portal

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/sikkim-flood-portal/internal/activity"
	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/session"
	"github.com/couchcryptid/sikkim-flood-portal/internal/upload"
)

// Ingester reads submitted files into uploaded images.
type Ingester interface {
	Ingest(ctx context.Context, files []upload.File) ([]domain.UploadedImage, error)
}

// Page is the full render model of the portal for one session.
type Page struct {
	SessionID string
	View      session.View
	Content   domain.Content
}

// Service applies visitor intents to their session and records the
// resulting transitions.
type Service struct {
	catalog  *domain.Catalog
	content  domain.Content
	store    *session.Store
	ingester Ingester
	recorder activity.Recorder
	logger   *slog.Logger
}

// NewService wires the portal together. Sessions expired by the store's
// sweeper are recorded as activity.
func NewService(c *domain.Catalog, content domain.Content, store *session.Store, ingester Ingester, recorder activity.Recorder, logger *slog.Logger) *Service {
	s := &Service{
		catalog:  c,
		content:  content,
		store:    store,
		ingester: ingester,
		recorder: recorder,
		logger:   logger,
	}
	store.OnExpire(func(id string) {
		recorder.Record(activity.NewEvent(domain.ActivitySessionExpired, id, ""))
	})
	return s
}

func (s *Service) Catalog() *domain.Catalog { return s.catalog }

func (s *Service) Content() domain.Content { return s.content }

// Session resolves id to a live session, starting a new one when needed.
func (s *Service) Session(id string) (string, session.View, bool) {
	sid, state, created := s.store.GetOrCreate(id)
	if created {
		s.recorder.Record(activity.NewEvent(domain.ActivitySessionStarted, sid, ""))
		s.logger.Debug("session started", "session_id", sid)
	}
	return sid, state.View(s.catalog), created
}

// Page returns the render model of an existing session.
func (s *Service) Page(id string) (Page, error) {
	state, ok := s.store.Get(id)
	if !ok {
		return Page{}, session.ErrUnknownSession
	}
	return Page{SessionID: id, View: state.View(s.catalog), Content: s.content}, nil
}

func (s *Service) SelectArea(id, areaID string) (session.View, error) {
	return s.apply(id, domain.ActivityAreaSelected, areaID, func(st *session.State) (bool, error) {
		return st.SelectArea(s.catalog, areaID), nil
	})
}

func (s *Service) SelectPhase(id string, phase domain.Phase) (session.View, error) {
	return s.apply(id, domain.ActivityPhaseSelected, string(phase), func(st *session.State) (bool, error) {
		return st.SelectPhase(phase), nil
	})
}

func (s *Service) ToggleOverlay(id, overlayID string) (session.View, error) {
	return s.apply(id, domain.ActivityOverlayToggled, overlayID, func(st *session.State) (bool, error) {
		return st.ToggleOverlay(s.catalog, overlayID), nil
	})
}

func (s *Service) SetTab(id string, tab session.Tab) (session.View, error) {
	return s.apply(id, domain.ActivityTabChanged, string(tab), func(st *session.State) (bool, error) {
		return st.SetTab(tab), nil
	})
}

func (s *Service) ToggleFinding(id string, findingID int) (session.View, error) {
	return s.apply(id, domain.ActivityFindingToggled, strconv.Itoa(findingID), func(st *session.State) (bool, error) {
		return st.ToggleFinding(s.content, findingID), nil
	})
}

func (s *Service) ToggleTimelineEvent(id string, index int) (session.View, error) {
	return s.apply(id, domain.ActivityTimelineToggled, strconv.Itoa(index), func(st *session.State) (bool, error) {
		return st.ToggleTimelineEvent(s.content, index), nil
	})
}

func (s *Service) SetViewMode(id string, mode session.ViewMode) (session.View, error) {
	return s.apply(id, domain.ActivityViewModeChanged, string(mode), func(st *session.State) (bool, error) {
		return st.SetViewMode(mode), nil
	})
}

// AddUploads ingests files and appends the accepted images in input order.
// Reading happens before the session is locked.
func (s *Service) AddUploads(ctx context.Context, id string, files []upload.File) (session.View, []domain.UploadedImage, error) {
	images, err := s.ingester.Ingest(ctx, files)
	if err != nil {
		return session.View{}, nil, err
	}
	view, err := s.apply(id, domain.ActivityUploadsAdded, strconv.Itoa(len(images)), func(st *session.State) (bool, error) {
		return st.AddUploads(images), nil
	})
	if err != nil {
		return session.View{}, nil, err
	}
	return view, images, nil
}

func (s *Service) UpdateUpload(id, uploadID string, field session.UploadField, value string) (session.View, error) {
	return s.apply(id, domain.ActivityUploadUpdated, uploadID, func(st *session.State) (bool, error) {
		return st.UpdateUpload(uploadID, field, value)
	})
}

func (s *Service) RemoveUpload(id, uploadID string) (session.View, error) {
	return s.apply(id, domain.ActivityUploadRemoved, uploadID, func(st *session.State) (bool, error) {
		return true, st.RemoveUpload(uploadID)
	})
}

// apply runs a reducer against the session and records an activity event
// when the state changed.
func (s *Service) apply(id string, typ domain.ActivityType, subject string, reduce func(*session.State) (bool, error)) (session.View, error) {
	state, changed, err := s.store.Update(id, reduce)
	if err != nil {
		return session.View{}, err
	}
	if changed {
		s.recorder.Record(activity.NewEvent(typ, id, subject))
	}
	return state.View(s.catalog), nil
}
