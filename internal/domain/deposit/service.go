package deposit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/authcode"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/notification"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/paymentmethod"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
)

// Service orchestrates the two deposit paths. The code path credits the
// wallet immediately in one transaction; the method path only records a
// pending entry for the settlement queue.
type Service struct {
	db      *sqlx.DB
	wallets *wallet.Repository
	ledger  *ledger.Repository
	codes   *authcode.Service
	methods *paymentmethod.Service
	audit   *audit.Service
	notify  *notification.Service
}

func NewService(
	db *sqlx.DB,
	wallets *wallet.Repository,
	ledgerRepo *ledger.Repository,
	codes *authcode.Service,
	methods *paymentmethod.Service,
	auditSvc *audit.Service,
	notifySvc *notification.Service,
) *Service {
	return &Service{
		db:      db,
		wallets: wallets,
		ledger:  ledgerRepo,
		codes:   codes,
		methods: methods,
		audit:   auditSvc,
		notify:  notifySvc,
	}
}

// ViaCode redeems a deposit code. Code consumption, the balance credit
// and the completed ledger entry commit together or not at all.
func (s *Service) ViaCode(ctx context.Context, userID uuid.UUID, req CodeDepositRequest, currency string, meta audit.RequestMeta) (*ledger.Transaction, error) {
	if req.Amount <= 0 {
		return nil, wallet.ErrInvalidAmount
	}

	w, err := s.wallets.Ensure(ctx, userID, currency)
	if err != nil {
		return nil, err
	}
	if !w.IsActive() {
		return nil, wallet.ErrNotActive
	}

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	code, amount, err := s.codes.ResolveTx(ctx, tx, authcode.Normalize(req.Code), ledger.TypeDeposit, req.Amount)
	if err != nil {
		return nil, err
	}

	balance, err := s.wallets.CreditTx(ctx, tx, w.ID, amount)
	if err != nil {
		return nil, err
	}

	entry := &ledger.Transaction{
		UserID:      userID,
		Type:        ledger.TypeDeposit,
		Amount:      amount,
		Reference:   ledger.NewReference(ledger.PrefixDeposit),
		Status:      ledger.StatusCompleted,
		Description: "Deposit via authorization code",
	}
	if err := s.ledger.InsertTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := s.codes.MarkUsedTx(ctx, tx, code, userID, entry.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("reference", entry.Reference).
		Int64("amount", amount).
		Int64("balance", balance).
		Msg("code deposit completed")

	s.audit.Record(ctx, audit.Entry{
		ActorID:     userID,
		Event:       "deposit.code_redeemed",
		SubjectType: "transaction",
		SubjectID:   entry.ID.String(),
		Details:     map[string]interface{}{"amount": amount, "code_id": code.ID.String()},
		Meta:        meta,
	})
	s.notify.Notify(userID, notification.TypeDepositCompleted,
		"Deposit completed",
		fmt.Sprintf("Your deposit %s has been credited.", entry.Reference),
		&notification.Data{TransactionID: &entry.ID, Reference: entry.Reference, Amount: amount})

	return entry, nil
}

// ViaMethod records a declared external payment as a pending entry. The
// balance does not move until an admin approves it.
func (s *Service) ViaMethod(ctx context.Context, userID uuid.UUID, req MethodDepositRequest, currency string, meta audit.RequestMeta) (*ledger.Transaction, error) {
	m, err := s.methods.GetByKey(ctx, req.MethodKey)
	if err != nil {
		return nil, err
	}
	if m.Kind != paymentmethod.KindDeposit {
		return nil, paymentmethod.ErrNotFound
	}
	if err := s.methods.Validate(m, req.Amount, req.PaymentReference); err != nil {
		return nil, err
	}

	w, err := s.wallets.Ensure(ctx, userID, currency)
	if err != nil {
		return nil, err
	}
	if !w.IsActive() {
		return nil, wallet.ErrNotActive
	}

	entry := &ledger.Transaction{
		UserID:      userID,
		Type:        ledger.TypeDeposit,
		Amount:      req.Amount,
		Fee:         m.Fee(req.Amount),
		Reference:   ledger.NewReference(ledger.PrefixDeposit),
		Status:      ledger.StatusPending,
		Description: fmt.Sprintf("Deposit via %s", m.Name),
	}
	entry.SetMetadata(&ledger.Metadata{Deposit: &ledger.DepositMetadata{
		MethodKey:        m.Key,
		PaymentReference: req.PaymentReference,
	}})

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	if err := s.ledger.InsertTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("reference", entry.Reference).
		Str("method", m.Key).
		Int64("amount", req.Amount).
		Msg("method deposit recorded")

	s.audit.Record(ctx, audit.Entry{
		ActorID:     userID,
		Event:       "deposit.declared",
		SubjectType: "transaction",
		SubjectID:   entry.ID.String(),
		Details:     map[string]interface{}{"amount": req.Amount, "method": m.Key},
		Meta:        meta,
	})
	s.notify.Notify(userID, notification.TypeDepositPending,
		"Deposit received",
		fmt.Sprintf("Your deposit %s is awaiting confirmation.", entry.Reference),
		&notification.Data{TransactionID: &entry.ID, Reference: entry.Reference, Amount: req.Amount})

	return entry, nil
}
