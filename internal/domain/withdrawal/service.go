package withdrawal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/notification"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/paymentmethod"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
)

// Service handles withdrawal requests. Funds leave the spendable
// balance at request time; rejection refunds them, approval only flips
// the status.
type Service struct {
	db      *sqlx.DB
	wallets *wallet.Repository
	ledger  *ledger.Repository
	methods *paymentmethod.Service
	audit   *audit.Service
	notify  *notification.Service
}

func NewService(
	db *sqlx.DB,
	wallets *wallet.Repository,
	ledgerRepo *ledger.Repository,
	methods *paymentmethod.Service,
	auditSvc *audit.Service,
	notifySvc *notification.Service,
) *Service {
	return &Service{
		db:      db,
		wallets: wallets,
		ledger:  ledgerRepo,
		methods: methods,
		audit:   auditSvc,
		notify:  notifySvc,
	}
}

// Create debits amount plus fee and records a pending entry in one
// transaction.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req Request, meta audit.RequestMeta) (*ledger.Transaction, error) {
	m, err := s.methods.GetByKey(ctx, req.MethodKey)
	if err != nil {
		return nil, err
	}
	if m.Kind != paymentmethod.KindWithdrawal {
		return nil, paymentmethod.ErrNotFound
	}
	if err := s.methods.Validate(m, req.Amount, ""); err != nil {
		return nil, err
	}
	fee := m.Fee(req.Amount)

	w, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !w.IsActive() {
		return nil, wallet.ErrNotActive
	}

	entry := &ledger.Transaction{
		UserID:      userID,
		Type:        ledger.TypeWithdrawal,
		Amount:      req.Amount,
		Fee:         fee,
		Reference:   ledger.NewReference(ledger.PrefixWithdrawal),
		Status:      ledger.StatusPending,
		Description: fmt.Sprintf("Withdrawal via %s", m.Name),
	}
	entry.SetMetadata(&ledger.Metadata{Withdrawal: &ledger.WithdrawalMetadata{
		MethodKey:   m.Key,
		Destination: req.Destination,
	}})

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	balance, err := s.wallets.DebitTx(ctx, tx, w.ID, req.Amount+fee)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.InsertTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("reference", entry.Reference).
		Int64("amount", req.Amount).
		Int64("fee", fee).
		Int64("balance", balance).
		Msg("withdrawal requested")

	s.audit.Record(ctx, audit.Entry{
		ActorID:     userID,
		Event:       "withdrawal.requested",
		SubjectType: "transaction",
		SubjectID:   entry.ID.String(),
		Details:     map[string]interface{}{"amount": req.Amount, "fee": fee, "method": m.Key},
		Meta:        meta,
	})
	s.notify.Notify(userID, notification.TypeWithdrawalPending,
		"Withdrawal requested",
		fmt.Sprintf("Your withdrawal %s is awaiting review.", entry.Reference),
		&notification.Data{TransactionID: &entry.ID, Reference: entry.Reference, Amount: req.Amount})

	return entry, nil
}
