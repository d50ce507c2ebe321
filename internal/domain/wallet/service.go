package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo     *Repository
	currency string
}

func NewService(repo *Repository, currency string) *Service {
	return &Service{repo: repo, currency: currency}
}

// GetOrCreate returns the user's wallet, creating it on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID uuid.UUID) (*Wallet, error) {
	w, err := s.repo.Ensure(ctx, userID, s.currency)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByAccountNumber(ctx context.Context, accountNumber string) (*Wallet, error) {
	return s.repo.GetByAccountNumber(ctx, accountNumber)
}

// Credit applies a standalone credit (admin adjustments)
func (s *Service) Credit(ctx context.Context, walletID uuid.UUID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	balance, err := s.repo.Credit(ctx, walletID, amount)
	if err != nil {
		return 0, err
	}
	log.Info().Str("wallet_id", walletID.String()).Int64("amount", amount).Int64("balance", balance).Msg("wallet credit applied")
	return balance, nil
}

// Debit applies a standalone debit (admin adjustments)
func (s *Service) Debit(ctx context.Context, walletID uuid.UUID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	balance, err := s.repo.Debit(ctx, walletID, amount)
	if err != nil {
		return 0, err
	}
	log.Info().Str("wallet_id", walletID.String()).Int64("amount", amount).Int64("balance", balance).Msg("wallet debit applied")
	return balance, nil
}
