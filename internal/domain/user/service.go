package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/password"
)

type Service struct {
	repo  *Repository
	audit *audit.Service
}

func NewService(repo *Repository, auditSvc *audit.Service) *Service {
	return &Service{repo: repo, audit: auditSvc}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetPin sets or changes the transaction PIN. Changing an existing PIN
// requires the current one.
func (s *Service) SetPin(ctx context.Context, userID uuid.UUID, currentPin, newPin string, meta audit.RequestMeta) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if u.HasPin() && !password.Verify(currentPin, u.PinHash.String) {
		s.audit.Record(ctx, audit.Entry{
			ActorID:     userID,
			Event:       "pin.change_rejected",
			SubjectType: "user",
			SubjectID:   userID.String(),
			Meta:        meta,
		})
		return ErrPinMismatch
	}

	hash, err := password.Hash(newPin)
	if err != nil {
		return err
	}
	if err := s.repo.SetPinHash(ctx, userID, hash); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:     userID,
		Event:       "pin.set",
		SubjectType: "user",
		SubjectID:   userID.String(),
		Meta:        meta,
	})
	return nil
}

// CheckTransferAccess verifies the preconditions shared by all transfer
// paths: account not locked, PIN set, PIN matches. Lock state is checked
// first so a locked account learns nothing about its PIN.
func (s *Service) CheckTransferAccess(ctx context.Context, userID uuid.UUID, pin string, meta audit.RequestMeta) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsLocked {
		s.audit.Record(ctx, audit.Entry{
			ActorID:     userID,
			Event:       "transfer.locked_attempt",
			SubjectType: "user",
			SubjectID:   userID.String(),
			Meta:        meta,
		})
		return nil, ErrLocked
	}
	if !u.HasPin() {
		return nil, ErrPinNotSet
	}
	if !password.Verify(pin, u.PinHash.String) {
		s.audit.Record(ctx, audit.Entry{
			ActorID:     userID,
			Event:       "transfer.pin_rejected",
			SubjectType: "user",
			SubjectID:   userID.String(),
			Meta:        meta,
		})
		return nil, ErrPinMismatch
	}
	return u, nil
}

// SetLocked locks or unlocks a user (admin action)
func (s *Service) SetLocked(ctx context.Context, adminID, userID uuid.UUID, locked bool, meta audit.RequestMeta) error {
	if err := s.repo.SetLocked(ctx, userID, locked); err != nil {
		return err
	}

	event := "user.unlocked"
	if locked {
		event = "user.locked"
	}
	s.audit.Record(ctx, audit.Entry{
		ActorID:     adminID,
		Event:       event,
		SubjectType: "user",
		SubjectID:   userID.String(),
		Meta:        meta,
	})
	log.Info().Str("user_id", userID.String()).Bool("locked", locked).Str("admin_id", adminID.String()).Msg("user lock state changed")
	return nil
}
