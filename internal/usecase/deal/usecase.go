package deal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "angel-forum-backend/internal/domain/deal"
	"angel-forum-backend/internal/domain/uow"
	"angel-forum-backend/pkg/id"

	"gorm.io/gorm"
)

// DefaultMinCommitmentFloor is the regulatory floor in currency minor units
// (₹100,000, i.e. 1 Lakh). Jurisdiction overrides come in via config.
const DefaultMinCommitmentFloor = 100_000

type Usecase struct {
	repo  domain.Repository
	uow   uow.UnitOfWork
	floor float64
}

// NewUsecase: repo for reads, UoW for mutating flows that must lock the deal row.
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, minCommitmentFloor float64) *Usecase {
	if minCommitmentFloor <= 0 {
		minCommitmentFloor = DefaultMinCommitmentFloor
	}
	return &Usecase{repo: r, uow: tx, floor: minCommitmentFloor}
}

// groupDigits renders a whole-rupee amount with thousands separators,
// e.g. 100000 → "100,000".
func groupDigits(f float64) string {
	s := strconv.FormatFloat(f, 'f', 0, 64)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func (u *Usecase) validateTerms(target, valuation, min float64, max, rate *float64) error {
	if min < u.floor {
		return fmt.Errorf("%w: minimum commitment must be at least ₹%s (1 Lakh)", domain.ErrValidation, groupDigits(u.floor))
	}
	if target <= 0 {
		return fmt.Errorf("%w: target amount must be greater than zero", domain.ErrValidation)
	}
	if valuation <= 0 {
		return fmt.Errorf("%w: valuation must be greater than zero", domain.ErrValidation)
	}
	if max != nil && *max < min {
		return fmt.Errorf("%w: maximum commitment ₹%.0f is below the minimum commitment ₹%.0f", domain.ErrValidation, *max, min)
	}
	if rate != nil && (*rate < 0 || *rate > 100) {
		return fmt.Errorf("%w: discount rate must be between 0 and 100", domain.ErrValidation)
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, in CreateDealInput) (*DealDTO, error) {
	if err := u.validateTerms(in.TargetAmount, in.Valuation, in.MinCommitment, in.MaxCommitment, in.DiscountRate); err != nil {
		return nil, err
	}

	d := &domain.Deal{
		DealID:             id.NewID32(),
		Name:               in.Name,
		CompanyName:        in.CompanyName,
		CompanyDescription: in.CompanyDescription,
		CompanyType:        in.CompanyType,
		Sector:             in.Sector,
		Stage:              in.Stage,
		InstrumentType:     in.InstrumentType,
		InvestmentVehicle:  in.InvestmentVehicle,
		TargetAmount:       in.TargetAmount,
		Valuation:          in.Valuation,
		MinCommitment:      in.MinCommitment,
		MaxCommitment:      in.MaxCommitment,
		DiscountRate:       in.DiscountRate,

		Status:          domain.StatusDraft,
		StatusUpdatedAt: time.Now().UTC(),

		// rollups start at zero; the aggregator refreshes them
		TotalCommitted: 0,
		TotalFunded:    0,
		InvestorCount:  0,

		RequiresRBIApproval:   false,
		IsAngelTaxExempt:      true,
		IsPressNote3Compliant: true,
	}

	if err := u.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDTO(d), nil
}

func (u *Usecase) Get(ctx context.Context, dealID string) (*DealDTO, error) {
	d, err := u.repo.GetByDealID(ctx, dealID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return toDTO(d), nil
}

func (u *Usecase) List(ctx context.Context, f domain.ListFilter) (*ListDealsOutput, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, f.Status)
	}
	res, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &ListDealsOutput{
		Items:    make([]DealDTO, 0, len(res.Items)),
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
	}
	for i := range res.Items {
		out.Items = append(out.Items, *toDTO(&res.Items[i]))
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, dealID string, in UpdateDealInput) (*DealDTO, error) {
	if u.uow == nil {
		return nil, domain.ErrInvalidOperation
	}
	var dto *DealDTO

	err := u.uow.WithinDealTx(ctx, dealID, func(r uow.Repos, d *domain.Deal) error {
		applyPatch(d, in)
		if err := u.validateTerms(d.TargetAmount, d.Valuation, d.MinCommitment, d.MaxCommitment, d.DiscountRate); err != nil {
			return err
		}
		if err := r.Deals.Save(ctx, d); err != nil {
			return err
		}
		dto = toDTO(d)
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return dto, nil
}

func applyPatch(d *domain.Deal, in UpdateDealInput) {
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.CompanyName != nil {
		d.CompanyName = *in.CompanyName
	}
	if in.CompanyDescription != nil {
		d.CompanyDescription = *in.CompanyDescription
	}
	if in.CompanyType != nil {
		d.CompanyType = *in.CompanyType
	}
	if in.Sector != nil {
		d.Sector = *in.Sector
	}
	if in.Stage != nil {
		d.Stage = *in.Stage
	}
	if in.InstrumentType != nil {
		d.InstrumentType = *in.InstrumentType
	}
	if in.InvestmentVehicle != nil {
		d.InvestmentVehicle = *in.InvestmentVehicle
	}
	if in.TargetAmount != nil {
		d.TargetAmount = *in.TargetAmount
	}
	if in.Valuation != nil {
		d.Valuation = *in.Valuation
	}
	if in.MaxCommitment != nil {
		d.MaxCommitment = in.MaxCommitment
	}
	if in.DiscountRate != nil {
		d.DiscountRate = in.DiscountRate
	}
}

// UpdateStatus moves a deal along the lifecycle graph. Each legal edge stamps
// at most one timestamp, and a timestamp already set is never overwritten —
// a deal reopened via closing→live keeps its original published_at, and a
// re-close keeps the original actual_close_date.
func (u *Usecase) UpdateStatus(ctx context.Context, dealID string, next domain.Status) (*DealDTO, error) {
	if u.uow == nil {
		return nil, domain.ErrInvalidOperation
	}
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, next)
	}
	var dto *DealDTO

	err := u.uow.WithinDealTx(ctx, dealID, func(r uow.Repos, d *domain.Deal) error {
		if !d.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: cannot move deal from %s to %s", domain.ErrInvalidTransition, d.Status, next)
		}

		now := time.Now().UTC()
		switch next {
		case domain.StatusLive:
			if d.PublishedAt == nil {
				d.PublishedAt = &now
			}
		case domain.StatusClosed:
			if d.ActualCloseDate == nil {
				d.ActualCloseDate = &now
			}
		case domain.StatusFunded:
			if d.FundedDate == nil {
				d.FundedDate = &now
			}
		case domain.StatusExited:
			if d.ExitDate == nil {
				d.ExitDate = &now
			}
		}

		d.Status = next
		d.StatusUpdatedAt = now
		if err := r.Deals.Save(ctx, d); err != nil {
			return err
		}
		dto = toDTO(d)
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}
	return dto, nil
}

func (u *Usecase) Delete(ctx context.Context, dealID string) error {
	if u.uow == nil {
		return domain.ErrInvalidOperation
	}
	err := u.uow.WithinDealTx(ctx, dealID, func(r uow.Repos, d *domain.Deal) error {
		if !d.Status.Deletable() {
			return fmt.Errorf("%w: cannot delete deal with status %s", domain.ErrInvalidOperation, d.Status)
		}
		return r.Deals.Delete(ctx, d)
	})
	return translateNotFound(err)
}

// translateNotFound maps the store's record-not-found onto the domain kind.
func translateNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
