package audit

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Log is an append-only record of a state-changing operation
type Log struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	ActorID     uuid.NullUUID   `db:"actor_id" json:"actor_id,omitempty"`
	Event       string          `db:"event" json:"event"`
	SubjectType string          `db:"subject_type" json:"subject_type"`
	SubjectID   string          `db:"subject_id" json:"subject_id"`
	Details     json.RawMessage `db:"details" json:"details,omitempty"`
	IP          sql.NullString  `db:"ip" json:"ip,omitempty"`
	UserAgent   sql.NullString  `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// RequestMeta carries request metadata passed explicitly by the HTTP
// layer. Core operations never read it from ambient state.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// MetaFromRequest extracts audit metadata from an HTTP request
func MetaFromRequest(r *http.Request) RequestMeta {
	return RequestMeta{
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// Entry is the input to Service.Record
type Entry struct {
	ActorID     uuid.UUID
	Event       string
	SubjectType string
	SubjectID   string
	Details     map[string]interface{}
	Meta        RequestMeta
}
