package dealmock

import (
	"context"

	domain "angel-forum-backend/internal/domain/deal"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn               func(ctx context.Context, d *domain.Deal) error
	GetByDealIDFn          func(ctx context.Context, dealID string) (*domain.Deal, error)
	GetByDealIDForUpdateFn func(ctx context.Context, dealID string) (*domain.Deal, error)
	ListFn                 func(ctx context.Context, f domain.ListFilter) (*domain.ListResult, error)
	SaveFn                 func(ctx context.Context, d *domain.Deal) error
	DeleteFn               func(ctx context.Context, d *domain.Deal) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, d *domain.Deal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDealID(ctx context.Context, dealID string) (*domain.Deal, error) {
	if m.GetByDealIDFn != nil {
		return m.GetByDealIDFn(ctx, dealID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByDealIDForUpdate(ctx context.Context, dealID string) (*domain.Deal, error) {
	if m.GetByDealIDForUpdateFn != nil {
		return m.GetByDealIDForUpdateFn(ctx, dealID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) (*domain.ListResult, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, d *domain.Deal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, d *domain.Deal) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, d)
	}
	return nil
}
