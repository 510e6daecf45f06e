package mysql

import (
	"context"

	commitmentDomain "angel-forum-backend/internal/domain/commitment"

	"gorm.io/gorm"
)

type CommitmentRepository struct{ db *gorm.DB }

func NewCommitmentRepository(db *gorm.DB) *CommitmentRepository {
	return &CommitmentRepository{db: db}
}

// Tx helper (optional) — bind this repo to a transaction when needed.
func (r *CommitmentRepository) Tx(ctx context.Context, fn func(repo *CommitmentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CommitmentRepository{db: tx})
	})
}

func (r *CommitmentRepository) Create(ctx context.Context, c *commitmentDomain.Commitment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommitmentRepository) Save(ctx context.Context, c *commitmentDomain.Commitment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CommitmentRepository) GetByCommitmentID(ctx context.Context, commitmentID string) (*commitmentDomain.Commitment, error) {
	var out commitmentDomain.Commitment
	res := r.db.WithContext(ctx).
		Where("commitment_id = ? AND deleted_at IS NULL", commitmentID).
		First(&out)
	return &out, res.Error
}

func (r *CommitmentRepository) ListByDealID(ctx context.Context, dealNumericID uint64) ([]commitmentDomain.Commitment, error) {
	var out []commitmentDomain.Commitment
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealNumericID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
