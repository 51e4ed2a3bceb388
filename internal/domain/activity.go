package domain

import "time"

// ActivityType names a visitor interaction recorded on the activity stream.
type ActivityType string

const (
	ActivitySessionStarted  ActivityType = "session_started"
	ActivitySessionExpired  ActivityType = "session_expired"
	ActivityAreaSelected    ActivityType = "area_selected"
	ActivityPhaseSelected   ActivityType = "phase_selected"
	ActivityOverlayToggled  ActivityType = "overlay_toggled"
	ActivityTabChanged      ActivityType = "tab_changed"
	ActivityFindingToggled  ActivityType = "finding_toggled"
	ActivityTimelineToggled ActivityType = "timeline_toggled"
	ActivityViewModeChanged ActivityType = "view_mode_changed"
	ActivityUploadsAdded    ActivityType = "uploads_added"
	ActivityUploadUpdated   ActivityType = "upload_updated"
	ActivityUploadRemoved   ActivityType = "upload_removed"
)

// ActivityEvent is one state transition of a visitor session. Subject carries
// the id or value the transition was applied to.
type ActivityEvent struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	SessionID string       `json:"sessionId"`
	Subject   string       `json:"subject,omitempty"`
	At        time.Time    `json:"at"`
}
