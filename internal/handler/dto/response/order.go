package response

import (
	"time"

	"marketcart/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	SessionID     uuid.UUID       `json:"sessionId"`
	ProductSKU    string          `json:"productSku"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Total         decimal.Decimal `json:"total"`
	VendorRef     string          `json:"vendorRef"`
	BuyerEmail    string          `json:"buyerEmail"`
	PhoneNumber   string          `json:"phoneNumber"`
	PickupCountry string          `json:"pickupCountry"`
	PickupRegion  string          `json:"pickupRegion"`
	PickupStation string          `json:"pickupStation"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func FromOrderView(view queries.OrderView) OrderResponse {
	return OrderResponse{
		ID:            view.ID,
		SessionID:     view.SessionID,
		ProductSKU:    view.ProductSKU,
		Quantity:      view.Quantity,
		UnitPrice:     view.UnitPrice,
		Total:         view.Total,
		VendorRef:     view.VendorRef,
		BuyerEmail:    view.BuyerEmail,
		PhoneNumber:   view.PhoneNumber,
		PickupCountry: view.PickupCountry,
		PickupRegion:  view.PickupRegion,
		PickupStation: view.PickupStation,
		CreatedAt:     view.CreatedAt,
	}
}
