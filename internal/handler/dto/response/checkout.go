package response

import (
	"marketcart/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutResponse struct {
	OrderIDs []uuid.UUID     `json:"orderIds"`
	Total    decimal.Decimal `json:"total"`
}

func FromCheckoutResult(result *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		OrderIDs: result.OrderIDs,
		Total:    result.Total,
	}
}
