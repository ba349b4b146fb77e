// internal/repository/postgres/rates_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diaspora-portal-service/internal/domain/rates"
	xerrors "diaspora-portal-service/internal/pkg/errors"
)

type RateRepository struct {
	db *pgxpool.Pool
}

func NewRateRepository(db *pgxpool.Pool) *RateRepository {
	return &RateRepository{db: db}
}

// List returns all published rates ordered by currency code.
func (r *RateRepository) List(ctx context.Context) ([]*rates.ExchangeRate, error) {
	query := `
		SELECT id, currency, buy, sell, mid, effective_on, updated_by, created_at, updated_at
		FROM exchange_rates
		ORDER BY currency
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	defer rows.Close()

	var out []*rates.ExchangeRate
	for rows.Next() {
		var rate rates.ExchangeRate
		if err := rows.Scan(
			&rate.ID, &rate.Currency, &rate.Buy, &rate.Sell, &rate.Mid,
			&rate.EffectiveOn, &rate.UpdatedBy, &rate.CreatedAt, &rate.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		out = append(out, &rate)
	}

	return out, rows.Err()
}

// GetByCurrency returns the rate for one currency code.
func (r *RateRepository) GetByCurrency(ctx context.Context, currency string) (*rates.ExchangeRate, error) {
	query := `
		SELECT id, currency, buy, sell, mid, effective_on, updated_by, created_at, updated_at
		FROM exchange_rates
		WHERE currency = UPPER($1)
	`

	var rate rates.ExchangeRate
	err := r.db.QueryRow(ctx, query, currency).Scan(
		&rate.ID, &rate.Currency, &rate.Buy, &rate.Sell, &rate.Mid,
		&rate.EffectiveOn, &rate.UpdatedBy, &rate.CreatedAt, &rate.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}

	return &rate, nil
}

// Upsert inserts or replaces the quote for one currency.
func (r *RateRepository) Upsert(ctx context.Context, rate *rates.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (currency, buy, sell, mid, effective_on, updated_by)
		VALUES (UPPER($1), $2, $3, $4, CURRENT_DATE, $5)
		ON CONFLICT (currency) DO UPDATE SET
			buy = EXCLUDED.buy,
			sell = EXCLUDED.sell,
			mid = EXCLUDED.mid,
			effective_on = EXCLUDED.effective_on,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING id, effective_on, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		rate.Currency, rate.Buy, rate.Sell, rate.Mid, rate.UpdatedBy,
	).Scan(&rate.ID, &rate.EffectiveOn, &rate.CreatedAt, &rate.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert rate: %w", err)
	}
	return nil
}

// Delete removes the quote for one currency.
func (r *RateRepository) Delete(ctx context.Context, currency string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exchange_rates WHERE currency = UPPER($1)`, currency)
	if err != nil {
		return fmt.Errorf("failed to delete rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
