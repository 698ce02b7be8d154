package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// GetAccount returns the user's points. Users without an account row hold no points.
func (r *pointsRepository) GetAccount(ctx context.Context, userID int64) (*model.PointsAccount, error) {
	const query = `SELECT available_points FROM points_accounts WHERE user_id=$1`
	account := model.PointsAccount{UserID: userID}
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&account.AvailablePoints)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &account, nil
		}
		return nil, err
	}
	return &account, nil
}
