package commitmentmock

import (
	"context"

	domain "angel-forum-backend/internal/domain/commitment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, c *domain.Commitment) error
	GetByCommitmentIDFn func(ctx context.Context, commitmentID string) (*domain.Commitment, error)
	ListByDealIDFn      func(ctx context.Context, dealNumericID uint64) ([]domain.Commitment, error)
	SaveFn              func(ctx context.Context, c *domain.Commitment) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, c *domain.Commitment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCommitmentID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	if m.GetByCommitmentIDFn != nil {
		return m.GetByCommitmentIDFn(ctx, commitmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByDealID(ctx context.Context, dealNumericID uint64) ([]domain.Commitment, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Commitment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
