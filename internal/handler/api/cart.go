package api

import (
	"errors"
	"fmt"
	"net/http"

	"marketcart/internal/domain/inventory"
	reqdto "marketcart/internal/handler/dto/request"
	resdto "marketcart/internal/handler/dto/response"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/commands"
	"marketcart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
}

func NewCartHandler(cartCommands commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
	}
}

// @Summary Add item to cart
// @Description Reserve stock and add the line to the cart in one atomic step
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.AddItemRequest true "Cart line to add"
// @Success 201 {object} resdto.AddItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req reqdto.AddItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.cartCommands.AddItem(c.Request.Context(), req.ToParams())
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAddItemResult(result))
}

// @Summary Get cart
// @Description List the session's cart lines with subtotals
// @Tags cart
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Router /cart/{session_id} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return
	}

	views, err := h.cartQueries.ListItems(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartLineViews(sessionID, views))
}

// @Summary Remove item from cart
// @Description Release the line's reservation and delete the line
// @Tags cart
// @Produce json
// @Param session_id path string true "Session ID"
// @Param sku path string true "Product SKU"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/{session_id}/items/{sku} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return
	}

	if err := h.cartCommands.RemoveItem(c.Request.Context(), sessionID, c.Param("sku")); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Abandon cart
// @Description Release every reservation held by the session, then clear the cart
// @Tags cart
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cart/{session_id} [delete]
func (h *CartHandler) Abandon(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return
	}

	if err := h.cartCommands.Abandon(c.Request.Context(), sessionID); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	var insufficient *inventory.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Insufficient stock: %d units available", insufficient.Available),
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart request",
		})
	case errors.Is(err, errs.ErrUnknownSKU):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Unknown product sku",
		})
	case errors.Is(err, errs.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Session not found",
		})
	case errors.Is(err, errs.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not in cart",
		})
	case errors.Is(err, errs.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Session is no longer open",
		})
	default:
		// Over-release included: the ledger rejected an impossible release,
		// which indicates a bug rather than a client mistake.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
