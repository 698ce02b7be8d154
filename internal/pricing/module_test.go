package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModuleBuildsCalculatorFromPolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.GiftWrapFee = decimal.NewFromInt(7)

	var calc *Calculator
	app := fxtest.New(t, fx.Supply(policy), Module, fx.Populate(&calc))
	app.RequireStart()
	defer app.RequireStop()

	if calc == nil || calc.Points() == nil {
		t.Fatal("expected calculator with ledger")
	}
	if got := calc.AdditionalFees(true); !got.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("expected configured gift wrap fee, got %s", got)
	}
}
