package commitment

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainCommitment "angel-forum-backend/internal/domain/commitment"
	domainDeal "angel-forum-backend/internal/domain/deal"
	"angel-forum-backend/internal/domain/uow"
	"angel-forum-backend/internal/testutil/commitmentmock"
	"angel-forum-backend/internal/testutil/dealmock"
	"angel-forum-backend/internal/testutil/uowmock"

	"gorm.io/gorm"
)

const investorID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func liveDeal() *domainDeal.Deal {
	return &domainDeal.Deal{
		ID:            42,
		DealID:        strings.Repeat("a", 32),
		Status:        domainDeal.StatusLive,
		MinCommitment: 500_000,
	}
}

func lockedUoW(d *domainDeal.Deal, deals *dealmock.Repo, commitments *commitmentmock.Repo) *uowmock.UoW {
	return &uowmock.UoW{
		WithinDealTxFn: func(ctx context.Context, dealID string, fn func(r uow.Repos, d2 *domainDeal.Deal) error) error {
			if d == nil {
				return gorm.ErrRecordNotFound
			}
			return fn(uow.Repos{Deals: deals, Commitments: commitments}, d)
		},
	}
}

func TestAdd(t *testing.T) {
	maxCommitment := 2_000_000.0

	tests := []struct {
		name    string
		deal    *domainDeal.Deal
		amount  float64
		wantErr error
		wantMsg string
	}{
		{
			name:   "happy path on live deal",
			deal:   liveDeal(),
			amount: 750_000,
		},
		{
			name: "happy path on closing deal",
			deal: func() *domainDeal.Deal {
				d := liveDeal()
				d.Status = domainDeal.StatusClosing
				return d
			}(),
			amount: 500_000,
		},
		{
			name:    "deal not found",
			deal:    nil,
			amount:  750_000,
			wantErr: domainDeal.ErrNotFound,
		},
		{
			name: "draft deal not accepting",
			deal: func() *domainDeal.Deal {
				d := liveDeal()
				d.Status = domainDeal.StatusDraft
				return d
			}(),
			amount:  750_000,
			wantErr: domainDeal.ErrInvalidOperation,
			wantMsg: "not accepting",
		},
		{
			name: "cancelled deal not accepting",
			deal: func() *domainDeal.Deal {
				d := liveDeal()
				d.Status = domainDeal.StatusCancelled
				return d
			}(),
			amount:  750_000,
			wantErr: domainDeal.ErrInvalidOperation,
			wantMsg: "cancelled",
		},
		{
			name:    "amount below minimum",
			deal:    liveDeal(),
			amount:  100_000,
			wantErr: domainDeal.ErrValidation,
			wantMsg: "minimum",
		},
		{
			name: "amount above maximum",
			deal: func() *domainDeal.Deal {
				d := liveDeal()
				d.MaxCommitment = &maxCommitment
				return d
			}(),
			amount:  3_000_000,
			wantErr: domainDeal.ErrValidation,
			wantMsg: "maximum",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var created *domainCommitment.Commitment
			commitments := &commitmentmock.Repo{
				CreateFn: func(ctx context.Context, c *domainCommitment.Commitment) error {
					if tt.wantErr != nil {
						t.Fatal("Create must not be called on rejection")
					}
					created = c
					return nil
				},
			}
			deals := &dealmock.Repo{}
			uc := NewUsecase(deals, commitments, lockedUoW(tt.deal, deals, commitments))

			dto, err := uc.Add(context.Background(), AddCommitmentInput{
				DealID:     strings.Repeat("a", 32),
				InvestorID: investorID,
				Amount:     tt.amount,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add err: %v", err)
			}
			if dto.Status != string(domainCommitment.StatusPending) {
				t.Fatalf("status = %s, want pending", dto.Status)
			}
			if dto.AmountReceived != 0 {
				t.Fatalf("amount_received = %v, want 0", dto.AmountReceived)
			}
			if len(dto.CommitmentID) != 32 {
				t.Fatalf("CommitmentID length = %d", len(dto.CommitmentID))
			}
			if created.DealID != tt.deal.ID {
				t.Fatalf("numeric FK = %d, want %d", created.DealID, tt.deal.ID)
			}
			if dto.DealID != tt.deal.DealID {
				t.Fatalf("dto deal id = %s, want public id", dto.DealID)
			}
		})
	}
}

func TestAdd_MinimumErrorNamesBothAmounts(t *testing.T) {
	deals := &dealmock.Repo{}
	commitments := &commitmentmock.Repo{}
	uc := NewUsecase(deals, commitments, lockedUoW(liveDeal(), deals, commitments))

	_, err := uc.Add(context.Background(), AddCommitmentInput{
		DealID: strings.Repeat("a", 32), InvestorID: investorID, Amount: 100_000,
	})
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "100000") || !strings.Contains(err.Error(), "500000") {
		t.Fatalf("message %q should name both amounts", err.Error())
	}
}

func TestAdd_DoesNotTouchDealRollups(t *testing.T) {
	d := liveDeal()
	deals := &dealmock.Repo{
		SaveFn: func(ctx context.Context, got *domainDeal.Deal) error {
			t.Fatal("deal must not be saved by Add")
			return nil
		},
	}
	commitments := &commitmentmock.Repo{}
	uc := NewUsecase(deals, commitments, lockedUoW(d, deals, commitments))

	if _, err := uc.Add(context.Background(), AddCommitmentInput{
		DealID: d.DealID, InvestorID: investorID, Amount: 600_000,
	}); err != nil {
		t.Fatalf("Add err: %v", err)
	}
	if d.TotalCommitted != 0 || d.InvestorCount != 0 {
		t.Fatalf("rollups mutated by Add: %+v", d)
	}
}

func TestAdd_NilUoW(t *testing.T) {
	uc := NewUsecase(&dealmock.Repo{}, &commitmentmock.Repo{}, nil)
	if _, err := uc.Add(context.Background(), AddCommitmentInput{}); !errors.Is(err, domainDeal.ErrInvalidOperation) {
		t.Fatalf("want ErrInvalidOperation, got %v", err)
	}
}

func TestMetrics_FiltersActive(t *testing.T) {
	d := liveDeal()
	deals := &dealmock.Repo{
		GetByDealIDFn: func(ctx context.Context, dealID string) (*domainDeal.Deal, error) {
			return d, nil
		},
	}
	commitments := &commitmentmock.Repo{
		ListByDealIDFn: func(ctx context.Context, dealNumericID uint64) ([]domainCommitment.Commitment, error) {
			if dealNumericID != d.ID {
				t.Fatalf("listed wrong deal: %d", dealNumericID)
			}
			return []domainCommitment.Commitment{
				{Amount: 500_000, Status: domainCommitment.StatusCommitted},
				{Amount: 1_000_000, AmountReceived: 1_000_000, Status: domainCommitment.StatusPaymentReceived},
				{Amount: 750_000, Status: domainCommitment.StatusCancelled},
			}, nil
		},
	}
	uc := NewUsecase(deals, commitments, uowmock.New())

	m, err := uc.Metrics(context.Background(), d.DealID)
	if err != nil {
		t.Fatalf("Metrics err: %v", err)
	}
	if m.TotalCommitted != 1_500_000 || m.TotalFunded != 1_000_000 || m.InvestorCount != 2 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestMetrics_DealNotFound(t *testing.T) {
	deals := &dealmock.Repo{
		GetByDealIDFn: func(ctx context.Context, dealID string) (*domainDeal.Deal, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(deals, &commitmentmock.Repo{}, uowmock.New())
	if _, err := uc.Metrics(context.Background(), strings.Repeat("0", 32)); !errors.Is(err, domainDeal.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMetrics_DoesNotPersist(t *testing.T) {
	d := liveDeal()
	deals := &dealmock.Repo{
		GetByDealIDFn: func(ctx context.Context, dealID string) (*domainDeal.Deal, error) { return d, nil },
		SaveFn: func(ctx context.Context, got *domainDeal.Deal) error {
			t.Fatal("Metrics must not persist")
			return nil
		},
	}
	commitments := &commitmentmock.Repo{
		ListByDealIDFn: func(ctx context.Context, dealNumericID uint64) ([]domainCommitment.Commitment, error) {
			return []domainCommitment.Commitment{{Amount: 600_000, Status: domainCommitment.StatusFunded, AmountReceived: 600_000}}, nil
		},
	}
	uc := NewUsecase(deals, commitments, uowmock.New())
	if _, err := uc.Metrics(context.Background(), d.DealID); err != nil {
		t.Fatalf("Metrics err: %v", err)
	}
	if d.TotalCommitted != 0 {
		t.Fatalf("deal record mutated: %+v", d)
	}
}

func TestRefreshMetrics_WritesRollupsBack(t *testing.T) {
	d := liveDeal()
	var saved *domainDeal.Deal
	deals := &dealmock.Repo{
		SaveFn: func(ctx context.Context, got *domainDeal.Deal) error {
			saved = got
			return nil
		},
	}
	commitments := &commitmentmock.Repo{
		ListByDealIDFn: func(ctx context.Context, dealNumericID uint64) ([]domainCommitment.Commitment, error) {
			return []domainCommitment.Commitment{
				{Amount: 500_000, Status: domainCommitment.StatusCommitted},
				{Amount: 800_000, AmountReceived: 400_000, Status: domainCommitment.StatusPaymentPending},
				{Amount: 9_999_999, Status: domainCommitment.StatusPending}, // excluded
			}, nil
		},
	}
	uc := NewUsecase(deals, commitments, lockedUoW(d, deals, commitments))

	m, err := uc.RefreshMetrics(context.Background(), d.DealID)
	if err != nil {
		t.Fatalf("RefreshMetrics err: %v", err)
	}
	if m.TotalCommitted != 1_300_000 || m.TotalFunded != 400_000 || m.InvestorCount != 2 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	if saved == nil {
		t.Fatal("deal not saved")
	}
	if saved.TotalCommitted != 1_300_000 || saved.TotalFunded != 400_000 || saved.InvestorCount != 2 {
		t.Fatalf("rollups not written back: %+v", saved)
	}
}

func TestRefreshMetrics_NotFound(t *testing.T) {
	deals := &dealmock.Repo{}
	commitments := &commitmentmock.Repo{}
	uc := NewUsecase(deals, commitments, lockedUoW(nil, deals, commitments))
	if _, err := uc.RefreshMetrics(context.Background(), strings.Repeat("0", 32)); !errors.Is(err, domainDeal.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
