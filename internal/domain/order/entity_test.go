//go:build unit

package order_test

import (
	"testing"
	"time"

	"marketcart/internal/domain/cart"
	"marketcart/internal/domain/inventory"
	"marketcart/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuyerContact(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		phone string
		errIs error
	}{
		{name: "valid contact", email: "shopper@example.com", phone: "+81-90-0000-0000"},
		{name: "email without at sign", email: "shopper.example.com", phone: "+81", errIs: order.ErrInvalidEmail},
		{name: "email with leading at sign", email: "@example.com", phone: "+81", errIs: order.ErrInvalidEmail},
		{name: "email with trailing at sign", email: "shopper@", phone: "+81", errIs: order.ErrInvalidEmail},
		{name: "empty email", email: "", phone: "+81", errIs: order.ErrInvalidEmail},
		{name: "empty phone", email: "shopper@example.com", phone: "  ", errIs: order.ErrEmptyPhoneNumber},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			contact, err := order.NewBuyerContact(tc.email, tc.phone)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.email, contact.Email())
		})
	}
}

func TestNewPickupSelection(t *testing.T) {
	testCases := []struct {
		name    string
		country string
		region  string
		station string
		errIs   error
	}{
		{name: "complete selection", country: "JP", region: "Tokyo", station: "Shibuya-3"},
		{name: "missing country", country: " ", region: "Tokyo", station: "Shibuya-3", errIs: order.ErrIncompletePickup},
		{name: "missing region", country: "JP", region: "", station: "Shibuya-3", errIs: order.ErrIncompletePickup},
		{name: "missing station", country: "JP", region: "Tokyo", station: "", errIs: order.ErrIncompletePickup},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pickup, err := order.NewPickupSelection(tc.country, tc.region, tc.station)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.station, pickup.Station())
		})
	}
}

func TestFromCartLine(t *testing.T) {
	sku, _ := inventory.NewSKU("WIDGET-01")
	qty, _ := cart.NewQuantity(3)
	price, _ := cart.NewUnitPrice(decimal.RequireFromString("12.50"))
	vendorRef, _ := cart.NewVendorRef("vendor-7")
	sessionID := uuid.New()
	addedAt := time.Now().Add(-time.Minute)

	line := cart.ReconstructLine(sessionID, sku, qty, price, vendorRef, addedAt)
	buyer, _ := order.NewBuyerContact("shopper@example.com", "+81-90-0000-0000")
	pickup, _ := order.NewPickupSelection("JP", "Tokyo", "Shibuya-3")
	now := time.Now()

	o := order.FromCartLine(line, buyer, pickup, now)

	assert.NotEqual(t, uuid.Nil, o.ID())
	assert.Equal(t, sessionID, o.SessionID())
	assert.Equal(t, "WIDGET-01", o.ProductSKU())
	assert.Equal(t, 3, o.Quantity())
	assert.Equal(t, "vendor-7", o.VendorRef())
	assert.Equal(t, now, o.CreatedAt())
	assert.True(t, o.UnitPrice().Equal(decimal.RequireFromString("12.50")), "price snapshot carried through")
	assert.True(t, o.Total().Equal(decimal.RequireFromString("37.50")))

	t.Run("distinct ids per derived order", func(t *testing.T) {
		other := order.FromCartLine(line, buyer, pickup, now)
		assert.NotEqual(t, o.ID(), other.ID())
	})
}
