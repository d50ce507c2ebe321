package audit

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service writes audit events. Recording is best-effort: failures are
// logged and never propagate to the operation being audited.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an audit event. Safe on a nil receiver so callers do
// not need to guard for an unconfigured audit log.
func (s *Service) Record(ctx context.Context, e Entry) {
	if s == nil || s.repo == nil {
		return
	}

	l := &Log{
		Event:       e.Event,
		SubjectType: e.SubjectType,
		SubjectID:   e.SubjectID,
	}
	if e.ActorID != uuid.Nil {
		l.ActorID = uuid.NullUUID{UUID: e.ActorID, Valid: true}
	}
	if e.Details != nil {
		l.Details, _ = json.Marshal(e.Details)
	}
	if e.Meta.IP != "" {
		l.IP = sql.NullString{String: e.Meta.IP, Valid: true}
	}
	if e.Meta.UserAgent != "" {
		l.UserAgent = sql.NullString{String: e.Meta.UserAgent, Valid: true}
	}

	if err := s.repo.Insert(ctx, l); err != nil {
		log.Error().Err(err).Str("event", e.Event).Str("subject_id", e.SubjectID).Msg("failed to write audit log")
	}
}
