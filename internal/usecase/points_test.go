package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/pricing"
	testhelpers "github.com/polkiloo/storefront-checkout/internal/test"
)

func TestPointsUseCaseSummary(t *testing.T) {
	repo := &testhelpers.PointsRepositoryStub{Accounts: map[int64]int64{1: 10000}}
	uc := NewPointsUseCase(repo, pricing.NewPointsLedger(pricing.DefaultPolicy()))

	summary, err := uc.Summary(context.Background(), 1, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if summary.Available != 10000 || !summary.Value.Equal(decimal.NewFromInt(100)) || summary.MaxRedeemable != 5000 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	summary, err = uc.Summary(context.Background(), 2, decimal.Zero)
	if err != nil || summary.Available != 0 || summary.MaxRedeemable != 0 {
		t.Fatalf("expected empty summary, got %+v err=%v", summary, err)
	}
}

func TestPointsUseCaseSummaryErrors(t *testing.T) {
	repo := &testhelpers.PointsRepositoryStub{Err: errors.New("db down")}
	uc := NewPointsUseCase(repo, pricing.NewPointsLedger(pricing.DefaultPolicy()))

	if _, err := uc.Summary(context.Background(), 1, decimal.NewFromInt(10)); err == nil {
		t.Fatal("expected repository error")
	}
	if _, err := uc.Summary(context.Background(), 1, decimal.NewFromInt(-1)); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if repo.Calls() != 1 {
		t.Fatalf("expected negative total rejected before lookup, got %d calls", repo.Calls())
	}
}
