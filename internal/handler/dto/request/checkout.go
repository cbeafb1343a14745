package request

import (
	"strings"

	"marketcart/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	SessionID     uuid.UUID `json:"session_id" binding:"required"`
	BuyerEmail    string    `json:"buyer_email" binding:"required"`
	PhoneNumber   string    `json:"phone_number" binding:"required"`
	PickupCountry string    `json:"pickup_country" binding:"required"`
	PickupRegion  string    `json:"pickup_region" binding:"required"`
	PickupStation string    `json:"pickup_station" binding:"required"`
}

func (r CheckoutRequest) ToParams() commands.CheckoutParams {
	return commands.CheckoutParams{
		SessionID:     r.SessionID,
		BuyerEmail:    strings.TrimSpace(r.BuyerEmail),
		PhoneNumber:   strings.TrimSpace(r.PhoneNumber),
		PickupCountry: strings.TrimSpace(r.PickupCountry),
		PickupRegion:  strings.TrimSpace(r.PickupRegion),
		PickupStation: strings.TrimSpace(r.PickupStation),
	}
}
