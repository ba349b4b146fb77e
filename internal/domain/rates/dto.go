// internal/domain/rates/dto.go
package rates

// UpsertRateRequest creates or updates the quote for one currency.
type UpsertRateRequest struct {
	Currency string  `json:"currency" binding:"required,len=3"`
	Buy      float64 `json:"buy" binding:"required,gt=0"`
	Sell     float64 `json:"sell" binding:"required,gt=0"`
}
