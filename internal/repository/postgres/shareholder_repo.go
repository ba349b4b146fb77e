// internal/repository/postgres/shareholder_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diaspora-portal-service/internal/domain/shareholder"
	xerrors "diaspora-portal-service/internal/pkg/errors"
)

type HoldingRepository struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// GetByUser retrieves the holding for one portal user.
func (r *HoldingRepository) GetByUser(ctx context.Context, userID string) (*shareholder.Holding, error) {
	query := `
		SELECT id, user_id, shares, share_price, dividend_per_share, acquired_on, updated_at
		FROM shareholder_holdings
		WHERE user_id = $1
	`

	var h shareholder.Holding
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&h.ID, &h.UserID, &h.Shares, &h.SharePrice,
		&h.DividendPerShare, &h.AcquiredOn, &h.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return &h, nil
}
