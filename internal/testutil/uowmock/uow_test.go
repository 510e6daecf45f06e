package uowmock

import (
	"context"
	"errors"
	"testing"

	"angel-forum-backend/internal/domain/deal"
	"angel-forum-backend/internal/domain/uow"
	"angel-forum-backend/internal/testutil/commitmentmock"
	"angel-forum-backend/internal/testutil/dealmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	deals := &dealmock.Repo{}
	commitments := &commitmentmock.Repo{}
	repos := uow.Repos{Deals: deals, Commitments: commitments}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			if fn == nil {
				t.Fatalf("WithinTx: fn is nil")
			}
			// simulate transaction body
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Deals != deals || r.Commitments != commitments {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("boom")

	m := &UoW{
		WithinTxFn: func(context.Context, func(uow.Repos) error) error {
			return sentinel
		},
	}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_WithinTx_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_WithinDealTx_Happy(t *testing.T) {
	ctx := context.Background()

	deals := &dealmock.Repo{}
	commitments := &commitmentmock.Repo{}
	repos := uow.Repos{Deals: deals, Commitments: commitments}
	lock := &deal.Deal{ID: 7, DealID: "dddddddddddddddddddddddddddddddd"}

	innerCalled := false
	m := &UoW{
		WithinDealTxFn: func(gotCtx context.Context, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinDealTx: ctx mismatch")
			}
			if dealID != "dddddddddddddddddddddddddddddddd" {
				t.Fatalf("WithinDealTx: dealID mismatch, got %s", dealID)
			}
			return fn(repos, lock)
		},
	}

	err := m.WithinDealTx(ctx, "dddddddddddddddddddddddddddddddd", func(r uow.Repos, d *deal.Deal) error {
		innerCalled = true
		if r.Deals != deals || r.Commitments != commitments {
			t.Fatalf("WithinDealTx: repos not forwarded")
		}
		if d != lock || d.ID != 7 {
			t.Fatalf("WithinDealTx: deal not forwarded correctly: %+v", d)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinDealTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinDealTx: inner fn not called")
	}
}

func TestUoW_WithinDealTx_PropagatesError(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("stop")

	m := &UoW{
		WithinDealTxFn: func(context.Context, string, func(uow.Repos, *deal.Deal) error) error {
			return sentinel
		},
	}
	if err := m.WithinDealTx(ctx, "x", func(uow.Repos, *deal.Deal) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinDealTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_Default_Unimplemented_WithinDealTx(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinDealTx(ctx, "x", func(uow.Repos, *deal.Deal) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinDealTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	if m.WithinTxFn != nil || m.WithinDealTxFn != nil {
		t.Fatalf("New should start with nil funcs")
	}

	// set via fluent setters
	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinDealTx(func(context.Context, string, func(uow.Repos, *deal.Deal) error) error { return nil })

	if m.WithinTxFn == nil || m.WithinDealTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}

	// reset clears funcs
	m.Reset()
	if m.WithinTxFn != nil || m.WithinDealTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
