// internal/workers/payments/create-order/models.go
package createorder

// CreateOrderRequest carries the charge amount in paise.
type CreateOrderRequest struct {
	Amount int64 `json:"amount"`
}
