package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

var discountColumns = []string{
	"id", "code", "description", "discount_percentage",
	"min_order_amount", "max_discount_amount", "valid_until", "is_active",
}

func (s *Storage) seedDiscountCodes(ctx context.Context) error {
	if len(s.seed) == 0 {
		return nil
	}

	insert := psql.Insert("discount_codes").Columns(discountColumns...)
	for _, c := range s.seed {
		insert = insert.Values(
			c.ID, model.CanonicalCode(c.Code), c.Description,
			c.DiscountPercentage.String(), c.MinOrderAmount.String(), c.MaxDiscountAmount.String(),
			c.ValidUntil, c.IsActive,
		)
	}
	query, args, err := insert.Suffix("ON CONFLICT (code) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build seed query: %w", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("seed discount codes: %w", err)
	}
	return nil
}

func (r *discountCodeRepository) FindByCode(ctx context.Context, code string) (*model.DiscountCode, error) {
	query, args, err := psql.Select(discountColumns...).
		From("discount_codes").
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, err
	}

	found, err := scanDiscountCode(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return found, nil
}

func (r *discountCodeRepository) List(ctx context.Context) ([]model.DiscountCode, error) {
	query, args, err := psql.Select(discountColumns...).
		From("discount_codes").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DiscountCode
	for rows.Next() {
		c, err := scanDiscountCode(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanDiscountCode(row pgx.Row) (*model.DiscountCode, error) {
	var (
		c                       model.DiscountCode
		percentage, minimum, mx string
	)
	if err := row.Scan(&c.ID, &c.Code, &c.Description, &percentage, &minimum, &mx, &c.ValidUntil, &c.IsActive); err != nil {
		return nil, err
	}

	var err error
	if c.DiscountPercentage, err = decimal.NewFromString(percentage); err != nil {
		return nil, fmt.Errorf("discount %s percentage: %w", c.Code, err)
	}
	if c.MinOrderAmount, err = decimal.NewFromString(minimum); err != nil {
		return nil, fmt.Errorf("discount %s minimum: %w", c.Code, err)
	}
	if c.MaxDiscountAmount, err = decimal.NewFromString(mx); err != nil {
		return nil, fmt.Errorf("discount %s maximum: %w", c.Code, err)
	}
	return &c, nil
}
