package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, l *Log) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, actor_id, event, subject_type, subject_id, details, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	`, l.ID, l.ActorID, l.Event, l.SubjectType, l.SubjectID, l.Details, l.IP, l.UserAgent)
	return err
}

func (r *Repository) ListBySubject(ctx context.Context, subjectType, subjectID string, limit, offset int) ([]*Log, error) {
	logs := []*Log{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT id, actor_id, event, subject_type, subject_id, details, ip, user_agent, created_at
		FROM audit_logs
		WHERE subject_type = $1 AND subject_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, subjectType, subjectID, limit, offset)
	return logs, err
}
