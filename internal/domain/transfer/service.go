package transfer

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
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/user"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
)

// Service orchestrates internal and wire transfers. Both require the
// transaction PIN and a transfer-type authorization code; the lock
// check runs before everything else so a locked account consumes
// nothing.
type Service struct {
	db         *sqlx.DB
	users      *user.Service
	wallets    *wallet.Repository
	ledger     *ledger.Repository
	codes      *authcode.Service
	audit      *audit.Service
	notify     *notification.Service
	wireFeeBps int64
}

func NewService(
	db *sqlx.DB,
	users *user.Service,
	wallets *wallet.Repository,
	ledgerRepo *ledger.Repository,
	codes *authcode.Service,
	auditSvc *audit.Service,
	notifySvc *notification.Service,
	wireFeeBps int64,
) *Service {
	return &Service{
		db:         db,
		users:      users,
		wallets:    wallets,
		ledger:     ledgerRepo,
		codes:      codes,
		audit:      auditSvc,
		notify:     notifySvc,
		wireFeeBps: wireFeeBps,
	}
}

// Internal moves funds between two wallets. Debit, credit, code
// consumption and the single ledger entry commit as one unit.
func (s *Service) Internal(ctx context.Context, userID uuid.UUID, req InternalRequest, meta audit.RequestMeta) (*ledger.Transaction, error) {
	if _, err := s.users.CheckTransferAccess(ctx, userID, req.Pin, meta); err != nil {
		return nil, err
	}

	sender, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sender.IsActive() {
		return nil, wallet.ErrNotActive
	}

	recipient, err := s.wallets.GetByAccountNumber(ctx, req.RecipientAccount)
	if err != nil {
		if err == wallet.ErrNotFound {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.UserID == userID {
		return nil, ErrSelfTransfer
	}

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	code, amount, err := s.codes.ResolveTx(ctx, tx, authcode.Normalize(req.Code), ledger.TypeTransfer, req.Amount)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.wallets.LockPairTx(ctx, tx, sender.ID, recipient.ID); err != nil {
		return nil, err
	}
	if _, err := s.wallets.DebitTx(ctx, tx, sender.ID, amount); err != nil {
		return nil, err
	}
	if _, err := s.wallets.CreditTx(ctx, tx, recipient.ID, amount); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Internal transfer"
	}
	entry := &ledger.Transaction{
		UserID:      userID,
		RecipientID: uuid.NullUUID{UUID: recipient.UserID, Valid: true},
		Type:        ledger.TypeTransfer,
		Amount:      amount,
		Reference:   ledger.NewReference(ledger.PrefixTransfer),
		Status:      ledger.StatusCompleted,
		Description: description,
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
		Str("recipient_id", recipient.UserID.String()).
		Str("reference", entry.Reference).
		Int64("amount", amount).
		Msg("internal transfer completed")

	s.audit.Record(ctx, audit.Entry{
		ActorID:     userID,
		Event:       "transfer.internal_completed",
		SubjectType: "transaction",
		SubjectID:   entry.ID.String(),
		Details:     map[string]interface{}{"amount": amount, "recipient_id": recipient.UserID.String()},
		Meta:        meta,
	})
	data := &notification.Data{TransactionID: &entry.ID, Reference: entry.Reference, Amount: amount}
	s.notify.Notify(userID, notification.TypeTransferOut,
		"Transfer sent",
		fmt.Sprintf("Your transfer %s was sent.", entry.Reference), data)
	s.notify.Notify(recipient.UserID, notification.TypeTransferIn,
		"Transfer received",
		fmt.Sprintf("You received transfer %s.", entry.Reference), data)

	return entry, nil
}

// Wire debits amount plus fee, consumes the code and records a pending
// entry. The beneficiary stays external; settlement releases the wire.
func (s *Service) Wire(ctx context.Context, userID uuid.UUID, req WireRequest, meta audit.RequestMeta) (*ledger.Transaction, error) {
	if _, err := s.users.CheckTransferAccess(ctx, userID, req.Pin, meta); err != nil {
		return nil, err
	}

	sender, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sender.IsActive() {
		return nil, wallet.ErrNotActive
	}

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	code, amount, err := s.codes.ResolveTx(ctx, tx, authcode.Normalize(req.Code), ledger.TypeTransfer, req.Amount)
	if err != nil {
		return nil, err
	}
	fee := amount * s.wireFeeBps / 10000

	if _, err := s.wallets.DebitTx(ctx, tx, sender.ID, amount+fee); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Wire transfer to %s", req.BeneficiaryName)
	}
	entry := &ledger.Transaction{
		UserID:      userID,
		Type:        ledger.TypeTransfer,
		Amount:      amount,
		Fee:         fee,
		Reference:   ledger.NewReference(ledger.PrefixWire),
		Status:      ledger.StatusPending,
		Description: description,
	}
	entry.SetMetadata(&ledger.Metadata{Wire: &ledger.WireMetadata{
		BeneficiaryName: req.BeneficiaryName,
		BeneficiaryBank: req.BeneficiaryBank,
		AccountNumber:   req.AccountNumber,
		RoutingNumber:   req.RoutingNumber,
		SwiftCode:       req.SwiftCode,
	}})
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
		Int64("fee", fee).
		Msg("wire transfer requested")

	s.audit.Record(ctx, audit.Entry{
		ActorID:     userID,
		Event:       "transfer.wire_requested",
		SubjectType: "transaction",
		SubjectID:   entry.ID.String(),
		Details:     map[string]interface{}{"amount": amount, "fee": fee, "beneficiary_bank": req.BeneficiaryBank},
		Meta:        meta,
	})
	s.notify.Notify(userID, notification.TypeWirePending,
		"Wire transfer requested",
		fmt.Sprintf("Your wire transfer %s is awaiting review.", entry.Reference),
		&notification.Data{TransactionID: &entry.ID, Reference: entry.Reference, Amount: amount})

	return entry, nil
}
