// internal/domain/shareholder/entity.go
package shareholder

import "time"

// Holding is a shareholder position for one portal user. The figures are
// demo data seeded per account; the service layer derives projections from
// them.
type Holding struct {
	ID               int64     `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	Shares           int64     `json:"shares" db:"shares"`
	SharePrice       float64   `json:"share_price" db:"share_price"`
	DividendPerShare float64   `json:"dividend_per_share" db:"dividend_per_share"`
	AcquiredOn       time.Time `json:"acquired_on" db:"acquired_on"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Summary is the dashboard payload: the raw holding plus derived figures.
type Summary struct {
	Holding          Holding              `json:"holding"`
	PortfolioValue   float64              `json:"portfolio_value"`
	AnnualDividend   float64              `json:"annual_dividend"`
	DividendForecast []DividendProjection `json:"dividend_forecast"`
	GrowthForecast   []GrowthProjection   `json:"growth_forecast"`
}

// DividendProjection is one year of the dividend forecast.
type DividendProjection struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// GrowthProjection is one year of compound portfolio growth.
type GrowthProjection struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}
