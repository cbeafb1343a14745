//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"marketcart/internal/domain/inventory"
	"marketcart/internal/handler/api"
	resdto "marketcart/internal/handler/dto/response"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/commands"
	"marketcart/internal/usecase/queries"
	"marketcart/tests/common/httptest"
	"marketcart/tests/common/testutil"
	commandsmock "marketcart/tests/mock/commands"
	queriesmock "marketcart/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCartCommands
	mockQueries  *queriesmock.MockCartQueries
	handler      *api.CartHandler
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/cart/items", s.handler.AddItem)
	s.router.GET("/cart/:session_id", s.handler.GetCart)
	s.router.DELETE("/cart/:session_id/items/:sku", s.handler.RemoveItem)
	s.router.DELETE("/cart/:session_id", s.handler.Abandon)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func validAddItemBody(sessionID uuid.UUID) map[string]any {
	return map[string]any{
		"session_id":  sessionID.String(),
		"product_sku": "WIDGET-01",
		"quantity":    2,
		"unit_price":  "19.99",
		"vendor_ref":  "vendor-7",
	}
}

// ================================================================================
// TestAddItem
// ================================================================================

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/cart/items"
	sessionID := uuid.New()
	reqBody := validAddItemBody(sessionID)

	expectedResult := &commands.AddItemResult{
		SessionID:      sessionID,
		ProductSKU:     "WIDGET-01",
		LineQuantity:   2,
		UnitPrice:      decimal.RequireFromString("19.99"),
		VendorRef:      "vendor-7",
		UnitsAvailable: 3,
	}

	s.Run("success: returns 201 Created with the line view", func() {
		s.mockCommands.EXPECT().AddItem(gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var response resdto.AddItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(sessionID, response.SessionID)
		s.Equal(2, response.LineQuantity)
		s.Equal(3, response.UnitsAvailable)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		testCases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing session_id", mutate: testutil.Field("session_id", nil)},
			{name: "missing product_sku", mutate: testutil.Field("product_sku", nil)},
			{name: "missing quantity", mutate: testutil.Field("quantity", nil)},
			{name: "non-numeric unit_price", mutate: testutil.Field("unit_price", "abc")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "insufficient stock carries remaining units",
				commandsError:  &inventory.InsufficientStockError{SKU: "WIDGET-01", Requested: 2, Available: 1},
				expectedStatus: http.StatusConflict,
				expectedMsg:    "1 units available",
			},
			{
				name:           "unknown sku",
				commandsError:  errs.Mark(errors.New("no such row"), errs.ErrUnknownSKU),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Unknown product sku",
			},
			{
				name:           "session not found",
				commandsError:  errs.Mark(errors.New("no such row"), errs.ErrSessionNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Session not found",
			},
			{
				name:           "session closed",
				commandsError:  errs.Mark(errors.New("superseded"), errs.ErrSessionClosed),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "no longer open",
			},
			{
				name:           "domain validation",
				commandsError:  errs.Mark(errors.New("bad input"), errs.ErrDomainValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid cart request",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().AddItem(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetCart
// ================================================================================

func (s *CartHandlerTestSuite) TestGetCart() {
	sessionID := uuid.New()
	url := "/cart/" + sessionID.String()

	views := []queries.CartLineView{
		{
			SessionID:  sessionID,
			ProductSKU: "WIDGET-01",
			Quantity:   2,
			UnitPrice:  decimal.RequireFromString("10.00"),
			Subtotal:   decimal.RequireFromString("20.00"),
			VendorRef:  "vendor-7",
		},
		{
			SessionID:  sessionID,
			ProductSKU: "GADGET-02",
			Quantity:   1,
			UnitPrice:  decimal.RequireFromString("7.50"),
			Subtotal:   decimal.RequireFromString("7.50"),
			VendorRef:  "vendor-9",
		},
	}

	s.Run("success: returns lines with a grand total", func() {
		s.mockQueries.EXPECT().ListItems(gomock.Any(), sessionID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 2)
		s.True(response.Total.Equal(decimal.RequireFromString("27.50")), response.Total.String())
	})

	s.Run("success: empty cart yields empty items, zero total", func() {
		s.mockQueries.EXPECT().ListItems(gomock.Any(), sessionID).
			Return([]queries.CartLineView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Items)
		s.True(response.Total.IsZero())
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart/invalid-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid session ID")
	})
}

// ================================================================================
// TestRemoveItem
// ================================================================================

func (s *CartHandlerTestSuite) TestRemoveItem() {
	sessionID := uuid.New()
	url := "/cart/" + sessionID.String() + "/items/WIDGET-01"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().RemoveItem(gomock.Any(), sessionID, "WIDGET-01").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found when item is not in the cart", func() {
		s.mockCommands.EXPECT().RemoveItem(gomock.Any(), sessionID, "WIDGET-01").
			Return(errs.Mark(errors.New("no such row"), errs.ErrCartItemNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Item not in cart")
	})

	s.Run("error: 500 on over-release anomaly", func() {
		s.mockCommands.EXPECT().RemoveItem(gomock.Any(), sessionID, "WIDGET-01").
			Return(errs.Mark(errors.New("release exceeds reserved"), errs.ErrOverRelease)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/invalid-uuid/items/WIDGET-01", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid session ID")
	})
}

// ================================================================================
// TestAbandon
// ================================================================================

func (s *CartHandlerTestSuite) TestAbandon() {
	sessionID := uuid.New()
	url := "/cart/" + sessionID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Abandon(gomock.Any(), sessionID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown session", func() {
		s.mockCommands.EXPECT().Abandon(gomock.Any(), sessionID).
			Return(errs.Mark(errors.New("no such row"), errs.ErrSessionNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Session not found")
	})

	s.Run("error: 409 Conflict for a committed session", func() {
		s.mockCommands.EXPECT().Abandon(gomock.Any(), sessionID).
			Return(errs.Mark(errors.New("already committed"), errs.ErrSessionClosed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no longer open")
	})
}
