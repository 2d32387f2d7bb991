// Package service provides the auth activity journal, delegating
// persistence to an EventRepository.
package service

import (
	"context"
	"time"

	"github.com/atinyakov/receipts/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventRepository defines the persistence operations
// required by the journal.
type EventRepository interface {
	// InsertEvent stores a single auth event.
	// ctx carries deadlines, cancellation signals, and other request-scoped values.
	InsertEvent(ctx context.Context, ev models.AuthEvent) error
}

// JournalService records auth activity (gate denials, logouts). Journal
// failures are logged and never surface to the request being served.
type JournalService struct {
	// repo performs the data-layer operations. Nil disables persistence.
	repo EventRepository
	log  *zap.Logger
	now  func() time.Time
}

// NewJournalService constructs a JournalService. A nil repo yields a journal
// that only logs at debug level.
func NewJournalService(repo EventRepository, log *zap.Logger) *JournalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalService{repo: repo, log: log, now: time.Now}
}

// Record stores an event of the given kind.
func (s *JournalService) Record(ctx context.Context, kind models.AuthEventKind, path, detail string) {
	ev := models.AuthEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		Path:      path,
		Detail:    detail,
		CreatedAt: s.now().Unix(),
	}

	if s.repo == nil {
		s.log.Debug("auth event", zap.String("kind", string(kind)), zap.String("path", path))
		return
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		s.log.Error("failed to record auth event",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}
