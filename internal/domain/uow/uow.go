package uow

import (
	"context"

	"angel-forum-backend/internal/domain/commitment"
	"angel-forum-backend/internal/domain/deal"
)

type Repos struct {
	Deals       deal.Repository
	Commitments commitment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the deal row first, then pass it in
	WithinDealTx(ctx context.Context, dealID string, fn func(r Repos, d *deal.Deal) error) error
}
