package settlement

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
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
)

// Service settles pending entries and reverses completed ones. Every
// decision locks the transaction row first, so the same entry cannot be
// settled twice: the loser of the race sees a non-pending status and
// fails.
type Service struct {
	db      *sqlx.DB
	wallets *wallet.Repository
	ledger  *ledger.Repository
	audit   *audit.Service
	notify  *notification.Service
}

func NewService(
	db *sqlx.DB,
	wallets *wallet.Repository,
	ledgerRepo *ledger.Repository,
	auditSvc *audit.Service,
	notifySvc *notification.Service,
) *Service {
	return &Service{
		db:      db,
		wallets: wallets,
		ledger:  ledgerRepo,
		audit:   auditSvc,
		notify:  notifySvc,
	}
}

// Approve completes a pending entry. Deposits are credited now;
// withdrawals and wires were debited at request time, so only the
// status changes.
func (s *Service) Approve(ctx context.Context, adminID, transactionID uuid.UUID, meta audit.RequestMeta) (*ledger.Transaction, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.ledger.GetForUpdateTx(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if t.Status != ledger.StatusPending {
		return nil, ledger.ErrNotPending
	}

	if t.Type == ledger.TypeDeposit {
		w, err := s.wallets.GetByUserID(ctx, t.UserID)
		if err != nil {
			return nil, err
		}
		if _, err := s.wallets.CreditTx(ctx, tx, w.ID, t.Amount); err != nil {
			return nil, err
		}
	}

	if err := s.ledger.UpdateStatusTx(ctx, tx, t, ledger.StatusCompleted); err != nil {
		return nil, err
	}
	s.setSettlement(t, adminID, "approved", "")
	if err := s.ledger.UpdateMetadataTx(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", t.ID.String()).
		Str("admin_id", adminID.String()).
		Str("reference", t.Reference).
		Msg("transaction approved")

	s.audit.Record(ctx, audit.Entry{
		ActorID:     adminID,
		Event:       "settlement.approved",
		SubjectType: "transaction",
		SubjectID:   t.ID.String(),
		Meta:        meta,
	})
	s.notify.Notify(t.UserID, notification.TypeSettled,
		"Transaction approved",
		fmt.Sprintf("Your transaction %s has been approved.", t.Reference),
		&notification.Data{TransactionID: &t.ID, Reference: t.Reference, Amount: t.Amount})

	return t, nil
}

// Reject fails a pending entry. Withdrawals and wires get the full
// debit refunded, amount plus fee; deposits were never credited, so
// nothing moves.
func (s *Service) Reject(ctx context.Context, adminID, transactionID uuid.UUID, reason string, meta audit.RequestMeta) (*ledger.Transaction, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.ledger.GetForUpdateTx(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if t.Status != ledger.StatusPending {
		return nil, ledger.ErrNotPending
	}

	if t.Type != ledger.TypeDeposit {
		w, err := s.wallets.GetByUserID(ctx, t.UserID)
		if err != nil {
			return nil, err
		}
		if _, err := s.wallets.CreditTx(ctx, tx, w.ID, t.Amount+t.Fee); err != nil {
			return nil, err
		}
	}

	if err := s.ledger.UpdateStatusTx(ctx, tx, t, ledger.StatusFailed); err != nil {
		return nil, err
	}
	s.setSettlement(t, adminID, "rejected", reason)
	if err := s.ledger.UpdateMetadataTx(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", t.ID.String()).
		Str("admin_id", adminID.String()).
		Str("reference", t.Reference).
		Str("reason", reason).
		Msg("transaction rejected")

	s.audit.Record(ctx, audit.Entry{
		ActorID:     adminID,
		Event:       "settlement.rejected",
		SubjectType: "transaction",
		SubjectID:   t.ID.String(),
		Details:     map[string]interface{}{"reason": reason},
		Meta:        meta,
	})
	s.notify.Notify(t.UserID, notification.TypeRejected,
		"Transaction rejected",
		fmt.Sprintf("Your transaction %s was rejected.", t.Reference),
		&notification.Data{TransactionID: &t.ID, Reference: t.Reference, Amount: t.Amount})

	return t, nil
}

// Reverse unwinds a completed entry by writing a linked reversal entry
// and moving the funds back. The original keeps its completed status;
// the reversal link is what blocks a second reversal.
func (s *Service) Reverse(ctx context.Context, adminID, transactionID uuid.UUID, reason string, meta audit.RequestMeta) (*ledger.Transaction, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.ledger.GetForUpdateTx(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if t.Status != ledger.StatusCompleted {
		return nil, ledger.ErrNotCompleted
	}
	if t.IsReversed() {
		return nil, ledger.ErrAlreadyReversed
	}

	senderWallet, err := s.wallets.GetByUserID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}

	reversal := &ledger.Transaction{
		UserID:      t.UserID,
		Type:        t.Type,
		Amount:      t.Amount,
		Fee:         t.Fee,
		Reference:   ledger.NewReference(ledger.PrefixReversal),
		Status:      ledger.StatusCompleted,
		Description: fmt.Sprintf("Reversal of %s", t.Reference),
	}

	switch {
	case t.Type == ledger.TypeDeposit:
		// Take the credited funds back; may fail if already spent.
		if _, err := s.wallets.DebitTx(ctx, tx, senderWallet.ID, t.Amount); err != nil {
			return nil, err
		}
	case t.Type == ledger.TypeWithdrawal:
		if _, err := s.wallets.CreditTx(ctx, tx, senderWallet.ID, t.Amount+t.Fee); err != nil {
			return nil, err
		}
	case t.RecipientID.Valid:
		// Internal transfer: pull back from the recipient, return to the
		// sender, and swap the parties on the reversal entry.
		recipientWallet, err := s.wallets.GetByUserID(ctx, t.RecipientID.UUID)
		if err != nil {
			return nil, err
		}
		if _, _, err := s.wallets.LockPairTx(ctx, tx, senderWallet.ID, recipientWallet.ID); err != nil {
			return nil, err
		}
		if _, err := s.wallets.DebitTx(ctx, tx, recipientWallet.ID, t.Amount); err != nil {
			return nil, err
		}
		if _, err := s.wallets.CreditTx(ctx, tx, senderWallet.ID, t.Amount); err != nil {
			return nil, err
		}
		reversal.UserID = t.RecipientID.UUID
		reversal.RecipientID = uuid.NullUUID{UUID: t.UserID, Valid: true}
	default:
		// Wire: refund the full debit, amount plus fee.
		if _, err := s.wallets.CreditTx(ctx, tx, senderWallet.ID, t.Amount+t.Fee); err != nil {
			return nil, err
		}
	}

	reversal.SetMetadata(&ledger.Metadata{Reversal: &ledger.ReversalMetadata{
		OriginalReference: t.Reference,
		Reason:            reason,
	}})
	if err := s.ledger.InsertTx(ctx, tx, reversal); err != nil {
		return nil, err
	}
	if err := s.ledger.LinkReversalTx(ctx, tx, t.ID, reversal.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", t.ID.String()).
		Str("reversal_id", reversal.ID.String()).
		Str("admin_id", adminID.String()).
		Str("reason", reason).
		Msg("transaction reversed")

	s.audit.Record(ctx, audit.Entry{
		ActorID:     adminID,
		Event:       "settlement.reversed",
		SubjectType: "transaction",
		SubjectID:   t.ID.String(),
		Details:     map[string]interface{}{"reversal_id": reversal.ID.String(), "reason": reason},
		Meta:        meta,
	})
	data := &notification.Data{TransactionID: &reversal.ID, Reference: reversal.Reference, Amount: t.Amount}
	s.notify.Notify(t.UserID, notification.TypeReversed,
		"Transaction reversed",
		fmt.Sprintf("Transaction %s has been reversed.", t.Reference), data)
	if t.RecipientID.Valid {
		s.notify.Notify(t.RecipientID.UUID, notification.TypeReversed,
			"Transaction reversed",
			fmt.Sprintf("Transaction %s has been reversed.", t.Reference), data)
	}

	return reversal, nil
}

func (s *Service) setSettlement(t *ledger.Transaction, adminID uuid.UUID, outcome, reason string) {
	m := t.GetMetadata()
	m.Settlement = &ledger.SettlementMetadata{
		SettledBy: adminID,
		Outcome:   outcome,
		Reason:    reason,
	}
	t.SetMetadata(m)
}
