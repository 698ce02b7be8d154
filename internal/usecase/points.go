package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
	"github.com/polkiloo/storefront-checkout/internal/domain/repository"
	"github.com/polkiloo/storefront-checkout/internal/pricing"
)

// PointsUseCase reports reward point balances.
type PointsUseCase struct {
	accounts repository.PointsRepository
	ledger   *pricing.PointsLedger
}

// NewPointsUseCase constructs PointsUseCase.
func NewPointsUseCase(accounts repository.PointsRepository, ledger *pricing.PointsLedger) *PointsUseCase {
	return &PointsUseCase{accounts: accounts, ledger: ledger}
}

// Summary returns the user's balance and what may be redeemed against orderTotal.
func (u *PointsUseCase) Summary(ctx context.Context, userID int64, orderTotal decimal.Decimal) (model.PointsSummary, error) {
	if orderTotal.IsNegative() {
		return model.PointsSummary{}, domainErrors.ErrInvalidAmount
	}
	account, err := u.accounts.GetAccount(ctx, userID)
	if err != nil {
		return model.PointsSummary{}, err
	}
	return u.ledger.Summary(*account, orderTotal), nil
}
