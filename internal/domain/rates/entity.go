// internal/domain/rates/entity.go
package rates

import "time"

// ExchangeRate is a published buy/sell quote for one currency pair against
// the portal's base currency.
type ExchangeRate struct {
	ID          int64     `json:"id" db:"id"`
	Currency    string    `json:"currency" db:"currency"` // ISO 4217, e.g. USD
	Buy         float64   `json:"buy" db:"buy"`
	Sell        float64   `json:"sell" db:"sell"`
	Mid         float64   `json:"mid" db:"mid"`
	EffectiveOn time.Time `json:"effective_on" db:"effective_on"`
	UpdatedBy   string    `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
