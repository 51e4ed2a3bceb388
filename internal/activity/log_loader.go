package activity

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
)

// LogLoader writes activity events to the structured log. It is the loader
// used when Kafka publishing is disabled.
type LogLoader struct {
	logger *slog.Logger
}

// NewLogLoader creates a LogLoader.
func NewLogLoader(logger *slog.Logger) *LogLoader {
	return &LogLoader{logger: logger}
}

func (l *LogLoader) LoadBatch(ctx context.Context, events []domain.ActivityEvent) error {
	for _, ev := range events {
		l.logger.LogAttrs(ctx, slog.LevelInfo, "activity",
			slog.String("activity_id", ev.ID),
			slog.String("type", string(ev.Type)),
			slog.String("session_id", ev.SessionID),
			slog.String("subject", ev.Subject),
			slog.Time("at", ev.At),
		)
	}
	return nil
}
