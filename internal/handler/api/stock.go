package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "marketcart/internal/handler/dto/response"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockQueries queries.StockQueries
}

func NewStockHandler(stockQueries queries.StockQueries) *StockHandler {
	return &StockHandler{
		stockQueries: stockQueries,
	}
}

// @Summary Check availability
// @Description Check whether a SKU can fulfill the requested quantity
// @Tags stock
// @Produce json
// @Param sku path string true "Product SKU"
// @Param quantity query int false "Requested quantity (default 1)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /stock/{sku}/availability [get]
func (h *StockHandler) CheckAvailability(c *gin.Context) {
	sku := c.Param("sku")

	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid quantity format",
			})
			return
		}
		quantity = parsed
	}

	view, err := h.stockQueries.CheckAvailability(c.Request.Context(), sku, quantity)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid sku or quantity",
			})
		case errors.Is(err, errs.ErrUnknownSKU):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unknown product sku",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
