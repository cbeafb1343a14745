package request

import (
	"strings"

	"marketcart/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	SessionID  uuid.UUID       `json:"session_id" binding:"required"`
	ProductSKU string          `json:"product_sku" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	VendorRef  string          `json:"vendor_ref" binding:"required"`
}

func (r AddItemRequest) ToParams() commands.AddItemParams {
	return commands.AddItemParams{
		SessionID:  r.SessionID,
		ProductSKU: strings.TrimSpace(r.ProductSKU),
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		VendorRef:  strings.TrimSpace(r.VendorRef),
	}
}
