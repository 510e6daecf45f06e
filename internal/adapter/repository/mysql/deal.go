package mysql

import (
	"context"

	dealDomain "angel-forum-backend/internal/domain/deal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DealRepository struct{ db *gorm.DB }

func NewDealRepository(db *gorm.DB) *DealRepository { return &DealRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *DealRepository) Tx(ctx context.Context, fn func(repo dealDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DealRepository{db: tx})
	})
}

func (r *DealRepository) Create(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DealRepository) Save(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DealRepository) GetByDealID(ctx context.Context, dealID string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).Where("deal_id = ?", dealID).First(&out)
	return &out, res.Error
}

// GetByDealIDForUpdate locks the deal row for the rest of the enclosing tx.
func (r *DealRepository) GetByDealIDForUpdate(ctx context.Context, dealID string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("deal_id = ?", dealID).
		First(&out)
	return &out, res.Error
}

func (r *DealRepository) List(ctx context.Context, f dealDomain.ListFilter) (*dealDomain.ListResult, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&dealDomain.Deal{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.InvestmentVehicle != "" {
		q = q.Where("investment_vehicle = ?", f.InvestmentVehicle)
	}
	if f.Sector != "" {
		q = q.Where("sector = ?", f.Sector)
	}
	if f.Stage != "" {
		q = q.Where("stage = ?", f.Stage)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []dealDomain.Deal
	if err := q.Order("created_at DESC, id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &dealDomain.ListResult{Items: items, Total: total, Page: page, PageSize: size}, nil
}

func (r *DealRepository) Delete(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Delete(d).Error
}
