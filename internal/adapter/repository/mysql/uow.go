package mysql

import (
	"context"

	"angel-forum-backend/internal/domain/deal"
	"angel-forum-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Deals:       &DealRepository{db: tx},
			Commitments: &CommitmentRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinDealTx(ctx context.Context, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Deals:       &DealRepository{db: tx},
			Commitments: &CommitmentRepository{db: tx},
		}
		// lock the deal row up-front to prevent races
		d, err := r.Deals.GetByDealIDForUpdate(ctx, dealID)
		if err != nil {
			return err
		}
		return fn(r, d)
	})
}
