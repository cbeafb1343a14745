package api

import (
	"net/http"

	resdto "marketcart/internal/handler/dto/response"
	"marketcart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderQueries queries.OrderQueries
}

func NewOrderHandler(orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderQueries: orderQueries,
	}
}

// @Summary Get orders
// @Description List the orders committed by a session
// @Tags orders
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {array} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Router /orders/{session_id} [get]
func (h *OrderHandler) ListBySession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return
	}

	views, err := h.orderQueries.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]resdto.OrderResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromOrderView(v)
	}

	c.JSON(http.StatusOK, response)
}
