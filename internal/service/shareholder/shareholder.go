// internal/service/shareholder/shareholder.go
package shareholder

import (
	"context"
	"math"

	"go.uber.org/zap"

	"diaspora-portal-service/internal/domain/shareholder"
)

// Forecast defaults shown on the dashboard. The dividend is assumed to grow
// a few percent a year; the portfolio compounds at the assumed growth rate.
const (
	forecastYears      = 5
	dividendGrowthRate = 0.04
	portfolioGrowth    = 0.07
)

type Repository interface {
	GetByUser(ctx context.Context, userID string) (*shareholder.Holding, error)
}

type DashboardService struct {
	repo   Repository
	logger *zap.Logger
}

func NewDashboardService(repo Repository, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

// Summary assembles the dashboard payload for one user: the raw holding
// plus derived valuation and five-year projections.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*shareholder.Summary, error) {
	holding, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	annualDividend := float64(holding.Shares) * holding.DividendPerShare
	portfolioValue := float64(holding.Shares) * holding.SharePrice

	return &shareholder.Summary{
		Holding:          *holding,
		PortfolioValue:   round2(portfolioValue),
		AnnualDividend:   round2(annualDividend),
		DividendForecast: ProjectDividends(annualDividend, dividendGrowthRate, forecastYears),
		GrowthForecast:   ProjectGrowth(portfolioValue, portfolioGrowth, forecastYears),
	}, nil
}

// ProjectDividends compounds the annual dividend forward year by year.
func ProjectDividends(annual, growthRate float64, years int) []shareholder.DividendProjection {
	out := make([]shareholder.DividendProjection, 0, years)
	for year := 1; year <= years; year++ {
		out = append(out, shareholder.DividendProjection{
			Year:   year,
			Amount: round2(annual * math.Pow(1+growthRate, float64(year))),
		})
	}
	return out
}

// ProjectGrowth compounds the portfolio value forward year by year.
func ProjectGrowth(principal, rate float64, years int) []shareholder.GrowthProjection {
	out := make([]shareholder.GrowthProjection, 0, years)
	for year := 1; year <= years; year++ {
		out = append(out, shareholder.GrowthProjection{
			Year:  year,
			Value: round2(principal * math.Pow(1+rate, float64(year))),
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
