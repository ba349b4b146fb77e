package shareholder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"diaspora-portal-service/internal/domain/shareholder"
	xerrors "diaspora-portal-service/internal/pkg/errors"
)

type fakeRepo struct {
	holdings map[string]*shareholder.Holding
}

func (f *fakeRepo) GetByUser(_ context.Context, userID string) (*shareholder.Holding, error) {
	h, ok := f.holdings[userID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return h, nil
}

func TestSummary(t *testing.T) {
	repo := &fakeRepo{holdings: map[string]*shareholder.Holding{
		"usr_01": {UserID: "usr_01", Shares: 1000, SharePrice: 40.00, DividendPerShare: 1.50},
	}}
	svc := NewDashboardService(repo, zap.NewNop())

	summary, err := svc.Summary(context.Background(), "usr_01")
	require.NoError(t, err)

	assert.Equal(t, 40000.00, summary.PortfolioValue)
	assert.Equal(t, 1500.00, summary.AnnualDividend)
	require.Len(t, summary.DividendForecast, forecastYears)
	require.Len(t, summary.GrowthForecast, forecastYears)

	// Year one compounds once.
	assert.Equal(t, 1560.00, summary.DividendForecast[0].Amount)
	assert.Equal(t, 42800.00, summary.GrowthForecast[0].Value)
}

func TestSummaryNoHolding(t *testing.T) {
	svc := NewDashboardService(&fakeRepo{holdings: map[string]*shareholder.Holding{}}, zap.NewNop())

	_, err := svc.Summary(context.Background(), "usr_99")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestProjectDividends(t *testing.T) {
	out := ProjectDividends(1000, 0.04, 3)
	require.Len(t, out, 3)

	assert.Equal(t, 1, out[0].Year)
	assert.Equal(t, 1040.00, out[0].Amount)
	assert.Equal(t, 1081.60, out[1].Amount)
	assert.Equal(t, 1124.86, out[2].Amount)
}

func TestProjectGrowth(t *testing.T) {
	out := ProjectGrowth(10000, 0.07, 2)
	require.Len(t, out, 2)

	assert.Equal(t, 10700.00, out[0].Value)
	assert.Equal(t, 11449.00, out[1].Value)
}

func TestProjectionsZeroYears(t *testing.T) {
	assert.Empty(t, ProjectDividends(1000, 0.04, 0))
	assert.Empty(t, ProjectGrowth(1000, 0.07, 0))
}
