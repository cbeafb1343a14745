package response

import (
	"marketcart/internal/usecase/queries"
)

type AvailabilityResponse struct {
	ProductSKU     string `json:"productSku"`
	Available      bool   `json:"available"`
	UnitsAvailable int    `json:"unitsAvailable"`
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		ProductSKU:     view.ProductSKU,
		Available:      view.Available,
		UnitsAvailable: view.UnitsAvailable,
	}
}
