package response

import (
	"time"

	"marketcart/internal/usecase/commands"
	"marketcart/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartLineResponse struct {
	ProductSKU string          `json:"productSku"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	VendorRef  string          `json:"vendorRef"`
	AddedAt    time.Time       `json:"addedAt"`
}

type CartResponse struct {
	SessionID uuid.UUID          `json:"sessionId"`
	Items     []CartLineResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
}

type AddItemResponse struct {
	SessionID      uuid.UUID       `json:"sessionId"`
	ProductSKU     string          `json:"productSku"`
	LineQuantity   int             `json:"lineQuantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	VendorRef      string          `json:"vendorRef"`
	UnitsAvailable int             `json:"unitsAvailable"`
}

func FromCartLineViews(sessionID uuid.UUID, views []queries.CartLineView) *CartResponse {
	items := make([]CartLineResponse, len(views))
	total := decimal.Zero
	for i, v := range views {
		items[i] = CartLineResponse{
			ProductSKU: v.ProductSKU,
			Quantity:   v.Quantity,
			UnitPrice:  v.UnitPrice,
			Subtotal:   v.Subtotal,
			VendorRef:  v.VendorRef,
			AddedAt:    v.AddedAt,
		}
		total = total.Add(v.Subtotal)
	}
	return &CartResponse{
		SessionID: sessionID,
		Items:     items,
		Total:     total,
	}
}

func FromAddItemResult(result *commands.AddItemResult) *AddItemResponse {
	return &AddItemResponse{
		SessionID:      result.SessionID,
		ProductSKU:     result.ProductSKU,
		LineQuantity:   result.LineQuantity,
		UnitPrice:      result.UnitPrice,
		VendorRef:      result.VendorRef,
		UnitsAvailable: result.UnitsAvailable,
	}
}
