package ledger

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetForUser fetches a single entry, restricted to a party of the
// movement unless the caller is an admin.
func (s *Service) GetForUser(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && t.UserID != userID && (!t.RecipientID.Valid || t.RecipientID.UUID != userID) {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Transaction, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	txns, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func (s *Service) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Transaction, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	txns, err := s.repo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
