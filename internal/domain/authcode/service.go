package authcode

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
)

const maxBulkCount = 100

type Service struct {
	repo  *Repository
	audit *audit.Service
}

func NewService(repo *Repository, auditSvc *audit.Service) *Service {
	return &Service{repo: repo, audit: auditSvc}
}

// IssueParams describes a code to issue. A nil Amount means the code
// accepts any operation amount.
type IssueParams struct {
	Type      ledger.Type
	Amount    *int64
	ExpiresAt time.Time
	CreatedBy uuid.UUID
	Notes     string
}

// Issue creates one single-use code
func (s *Service) Issue(ctx context.Context, p IssueParams, meta audit.RequestMeta) (*Code, error) {
	c := &Code{
		Type:      p.Type,
		ExpiresAt: p.ExpiresAt,
		CreatedBy: p.CreatedBy,
	}
	if p.Amount != nil {
		c.Amount = sql.NullInt64{Int64: *p.Amount, Valid: true}
	}
	if p.Notes != "" {
		c.Notes = sql.NullString{String: p.Notes, Valid: true}
	}

	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:     p.CreatedBy,
		Event:       "code.issued",
		SubjectType: "authorization_code",
		SubjectID:   c.ID.String(),
		Details:     map[string]interface{}{"type": string(p.Type)},
		Meta:        meta,
	})
	log.Info().Str("code_id", c.ID.String()).Str("type", string(p.Type)).Msg("authorization code issued")
	return c, nil
}

// IssueBulk creates count independent codes
func (s *Service) IssueBulk(ctx context.Context, p IssueParams, count int, meta audit.RequestMeta) ([]*Code, error) {
	if count < 1 || count > maxBulkCount {
		return nil, ErrInvalidBulkCount
	}

	codes := make([]*Code, 0, count)
	for i := 0; i < count; i++ {
		c, err := s.Issue(ctx, p, meta)
		if err != nil {
			return codes, err
		}
		codes = append(codes, c)
	}
	return codes, nil
}

// ResolveTx locates and validates a code inside the caller's transaction,
// locking its row. It returns the code and the effective amount: the
// code's fixed amount when pinned, otherwise the requested amount. No
// state changes on failure.
func (s *Service) ResolveTx(ctx context.Context, tx *sqlx.Tx, codeText string, typ ledger.Type, requestedAmount int64) (*Code, int64, error) {
	c, err := s.repo.GetByCodeForUpdateTx(ctx, tx, codeText)
	if err != nil {
		return nil, 0, err
	}

	if c.IsUsed {
		return nil, 0, ErrCodeAlreadyUsed
	}
	if c.IsExpired(time.Now()) {
		return nil, 0, ErrCodeExpired
	}
	if c.Type != typ {
		return nil, 0, ErrCodeTypeMismatch
	}
	if c.HasFixedAmount() {
		if requestedAmount != c.Amount.Int64 {
			return nil, 0, ErrCodeAmountMismatch
		}
		return c, c.Amount.Int64, nil
	}
	return c, requestedAmount, nil
}

// MarkUsedTx consumes the resolved code within the same transaction as
// the balance mutation and the ledger write.
func (s *Service) MarkUsedTx(ctx context.Context, tx *sqlx.Tx, c *Code, usedBy, transactionID uuid.UUID) error {
	return s.repo.MarkUsedTx(ctx, tx, c.ID, usedBy, transactionID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Code, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	codes, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}
