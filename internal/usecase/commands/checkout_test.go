//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"marketcart/internal/domain/inventory"
	"marketcart/internal/domain/session"
	"marketcart/internal/pkg/clock"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	uow       *fakeUoW
	notifier  *recordingNotifier
	publisher *recordingPublisher
	clock     *clock.MockClock
	commands  commands.CheckoutCommands
	cart      commands.CartCommands
}

func newCheckoutFixture() *checkoutFixture {
	uow := newFakeUoW()
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	mockClock := clock.NewMockClock(time.Now())
	return &checkoutFixture{
		uow:       uow,
		notifier:  notifier,
		publisher: publisher,
		clock:     mockClock,
		commands:  commands.NewCheckoutCommands(uow, publisher, mockClock),
		cart:      commands.NewCartCommands(uow, notifier, mockClock),
	}
}

func checkoutParams(sessionID uuid.UUID) commands.CheckoutParams {
	return commands.CheckoutParams{
		SessionID:     sessionID,
		BuyerEmail:    "shopper@example.com",
		PhoneNumber:   "+81-90-0000-0000",
		PickupCountry: "JP",
		PickupRegion:  "Tokyo",
		PickupStation: "Shibuya-3",
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("success: one order per line, reservations consumed", func(t *testing.T) {
		f := newCheckoutFixture()
		sessionID := uuid.New()
		f.uow.seedSession(sessionID, session.StatusActive)
		f.uow.seedStock("WIDGET-01", 5)
		f.uow.seedStock("GADGET-02", 4)

		widget := addItemParams(sessionID, "WIDGET-01", 2)
		widget.UnitPrice = decimal.RequireFromString("10.00")
		_, err := f.cart.AddItem(ctx, widget)
		require.NoError(t, err)

		gadget := addItemParams(sessionID, "GADGET-02", 3)
		gadget.UnitPrice = decimal.RequireFromString("7.50")
		_, err = f.cart.AddItem(ctx, gadget)
		require.NoError(t, err)

		result, err := f.commands.Checkout(ctx, checkoutParams(sessionID))
		require.NoError(t, err)

		assert.Len(t, result.OrderIDs, 2)
		assert.True(t, result.Total.Equal(decimal.RequireFromString("42.50")), result.Total.String())

		// Reserved units are consumed, never returned to availability.
		assert.Equal(t, stockRow{available: 3, reserved: 0}, f.uow.stockRow("WIDGET-01"))
		assert.Equal(t, stockRow{available: 1, reserved: 0}, f.uow.stockRow("GADGET-02"))

		assert.Empty(t, f.uow.cartLines(sessionID))
		assert.Equal(t, session.StatusCommitted.String(), f.uow.sessionStatus(sessionID))

		orders := f.uow.insertedOrders()
		require.Len(t, orders, 2)
		for _, o := range orders {
			assert.Equal(t, sessionID, o.SessionID())
			assert.Equal(t, "shopper@example.com", o.Buyer().Email())
			assert.Equal(t, "Shibuya-3", o.Pickup().Station())
		}

		events := f.publisher.published()
		require.Len(t, events, 2)
		assert.Equal(t, sessionID, events[0].SessionID)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newCheckoutFixture()
		sessionID := uuid.New()
		f.uow.seedSession(sessionID, session.StatusActive)

		_, err := f.commands.Checkout(ctx, checkoutParams(sessionID))
		assert.ErrorIs(t, err, errs.ErrEmptyCart)
		assert.Equal(t, session.StatusActive.String(), f.uow.sessionStatus(sessionID))
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newCheckoutFixture()
		_, err := f.commands.Checkout(ctx, checkoutParams(uuid.New()))
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("closed session", func(t *testing.T) {
		f := newCheckoutFixture()
		for _, status := range []session.Status{session.StatusCommitted, session.StatusSuperseded} {
			sessionID := uuid.New()
			f.uow.seedSession(sessionID, status)
			_, err := f.commands.Checkout(ctx, checkoutParams(sessionID))
			assert.ErrorIs(t, err, errs.ErrSessionClosed, status.String())
		}
	})

	t.Run("contact validation", func(t *testing.T) {
		f := newCheckoutFixture()
		sessionID := uuid.New()
		f.uow.seedSession(sessionID, session.StatusActive)

		testCases := []struct {
			name   string
			mutate func(*commands.CheckoutParams)
		}{
			{name: "bad email", mutate: func(p *commands.CheckoutParams) { p.BuyerEmail = "not-an-email" }},
			{name: "missing phone", mutate: func(p *commands.CheckoutParams) { p.PhoneNumber = "" }},
			{name: "missing station", mutate: func(p *commands.CheckoutParams) { p.PickupStation = " " }},
			{name: "nil session", mutate: func(p *commands.CheckoutParams) { p.SessionID = uuid.Nil }},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				params := checkoutParams(sessionID)
				tc.mutate(&params)
				_, err := f.commands.Checkout(ctx, params)
				assert.ErrorIs(t, err, errs.ErrDomainValidation)
			})
		}
	})

	t.Run("all or nothing: a failed insert rolls everything back", func(t *testing.T) {
		f := newCheckoutFixture()
		sessionID := uuid.New()
		f.uow.seedSession(sessionID, session.StatusActive)
		f.uow.seedStock("WIDGET-01", 5)
		f.uow.seedStock("GADGET-02", 4)

		_, err := f.cart.AddItem(ctx, addItemParams(sessionID, "WIDGET-01", 2))
		require.NoError(t, err)
		_, err = f.cart.AddItem(ctx, addItemParams(sessionID, "GADGET-02", 3))
		require.NoError(t, err)

		f.uow.failOrderInsert = true

		_, err = f.commands.Checkout(ctx, checkoutParams(sessionID))
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)

		// Cart, ledger and session are exactly as before the attempt.
		assert.Len(t, f.uow.cartLines(sessionID), 2)
		assert.Equal(t, stockRow{available: 3, reserved: 2}, f.uow.stockRow("WIDGET-01"))
		assert.Equal(t, stockRow{available: 1, reserved: 3}, f.uow.stockRow("GADGET-02"))
		assert.Equal(t, session.StatusActive.String(), f.uow.sessionStatus(sessionID))
		assert.Empty(t, f.uow.insertedOrders())
		assert.Empty(t, f.publisher.published())
	})

	t.Run("publisher failure does not fail the checkout", func(t *testing.T) {
		f := newCheckoutFixture()
		f.publisher.err = errs.New("broker unavailable")
		sessionID := uuid.New()
		f.uow.seedSession(sessionID, session.StatusActive)
		f.uow.seedStock("WIDGET-01", 5)

		_, err := f.cart.AddItem(ctx, addItemParams(sessionID, "WIDGET-01", 1))
		require.NoError(t, err)

		result, err := f.commands.Checkout(ctx, checkoutParams(sessionID))
		require.NoError(t, err)
		assert.Len(t, result.OrderIDs, 1)
		assert.Equal(t, session.StatusCommitted.String(), f.uow.sessionStatus(sessionID))
	})
}

// Full shopper journey against a 5-unit ledger: a successful reservation, a
// rejected one, and a checkout that consumes exactly what was reserved.
func TestReservationLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture()
	f.uow.seedStock("WIDGET-01", 5)

	first := uuid.New()
	second := uuid.New()
	f.uow.seedSession(first, session.StatusActive)
	f.uow.seedSession(second, session.StatusActive)

	// First shopper takes 3 of 5.
	result, err := f.cart.AddItem(ctx, addItemParams(first, "WIDGET-01", 3))
	require.NoError(t, err)
	assert.Equal(t, 2, result.UnitsAvailable)

	// Second shopper wants 3 but only 2 remain.
	_, err = f.cart.AddItem(ctx, addItemParams(second, "WIDGET-01", 3))
	require.Error(t, err)
	var insufficient *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Available)

	// Second shopper settles for 2.
	_, err = f.cart.AddItem(ctx, addItemParams(second, "WIDGET-01", 2))
	require.NoError(t, err)

	// First shopper checks out; their 3 reserved units are gone for good.
	_, err = f.commands.Checkout(ctx, checkoutParams(first))
	require.NoError(t, err)

	row := f.uow.stockRow("WIDGET-01")
	assert.Equal(t, 0, row.available)
	assert.Equal(t, 2, row.reserved, "second shopper's reservation is untouched")

	orders := f.uow.insertedOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, 3, orders[0].Quantity())
}
