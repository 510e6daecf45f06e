package commitment

import (
	"context"
	"errors"
	"fmt"

	domainCommitment "angel-forum-backend/internal/domain/commitment"
	domainDeal "angel-forum-backend/internal/domain/deal"
	"angel-forum-backend/internal/domain/uow"
	"angel-forum-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	dealRepo       domainDeal.Repository
	commitmentRepo domainCommitment.Repository
	uow            uow.UnitOfWork
}

// NewUsecase: pass both repos and a UoW for tx flows.
func NewUsecase(deals domainDeal.Repository, commitments domainCommitment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{dealRepo: deals, commitmentRepo: commitments, uow: tx}
}

// Add admits a new investor commitment against a deal. The deal row is locked
// for the duration so a concurrent status change cannot slip underneath the
// bound checks. Deal rollups are untouched here; RefreshMetrics owns those.
func (u *Usecase) Add(ctx context.Context, in AddCommitmentInput) (*CommitmentDTO, error) {
	if u.uow == nil {
		return nil, domainDeal.ErrInvalidOperation
	}
	var dto *CommitmentDTO

	err := u.uow.WithinDealTx(ctx, in.DealID, func(r uow.Repos, d *domainDeal.Deal) error {
		if !d.Status.AcceptingCommitments() {
			return fmt.Errorf("%w: deal is not accepting commitments (status %s)", domainDeal.ErrInvalidOperation, d.Status)
		}
		if in.Amount < d.MinCommitment {
			return fmt.Errorf("%w: amount ₹%.0f is below the deal minimum commitment ₹%.0f", domainDeal.ErrValidation, in.Amount, d.MinCommitment)
		}
		if d.MaxCommitment != nil && in.Amount > *d.MaxCommitment {
			return fmt.Errorf("%w: amount ₹%.0f exceeds the deal maximum commitment ₹%.0f", domainDeal.ErrValidation, in.Amount, *d.MaxCommitment)
		}

		c := &domainCommitment.Commitment{
			CommitmentID:   id.NewID32(),
			DealID:         d.ID, // numeric FK
			InvestorID:     in.InvestorID,
			Amount:         in.Amount,
			AmountReceived: 0,
			Status:         domainCommitment.StatusPending,
		}
		if err := r.Commitments.Create(ctx, c); err != nil {
			return err
		}

		dto = &CommitmentDTO{
			CommitmentID:   c.CommitmentID,
			DealID:         d.DealID, // public id
			InvestorID:     c.InvestorID,
			Amount:         c.Amount,
			AmountReceived: c.AmountReceived,
			Status:         string(c.Status),
			CreatedAt:      c.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return dto, nil
}

// Metrics computes the deal rollups without persisting them.
func (u *Usecase) Metrics(ctx context.Context, dealID string) (*MetricsDTO, error) {
	d, err := u.dealRepo.GetByDealID(ctx, dealID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	list, err := u.commitmentRepo.ListByDealID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return toMetricsDTO(d.DealID, domainCommitment.Reduce(list)), nil
}

// RefreshMetrics recomputes the rollups and writes them back onto the deal
// record, under the deal row lock.
func (u *Usecase) RefreshMetrics(ctx context.Context, dealID string) (*MetricsDTO, error) {
	if u.uow == nil {
		return nil, domainDeal.ErrInvalidOperation
	}
	var dto *MetricsDTO

	err := u.uow.WithinDealTx(ctx, dealID, func(r uow.Repos, d *domainDeal.Deal) error {
		list, err := r.Commitments.ListByDealID(ctx, d.ID)
		if err != nil {
			return err
		}
		m := domainCommitment.Reduce(list)

		d.TotalCommitted = m.TotalCommitted
		d.TotalFunded = m.TotalFunded
		d.InvestorCount = m.InvestorCount
		if err := r.Deals.Save(ctx, d); err != nil {
			return err
		}

		dto = toMetricsDTO(d.DealID, m)
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return dto, nil
}

func translateNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainDeal.ErrNotFound
	}
	return err
}
