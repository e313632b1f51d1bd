package api

import (
	"errors"
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/handler/middleware"
	"storefront/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkout commands.CheckoutCommands
}

func NewCheckoutHandler(checkout commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// @Summary Checkout
// @Description Convert the current cart into an order and obtain a payment redirect
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.CheckoutParams{
		ShippingAddress: req.ShippingAddress,
		Observations:    req.Observations,
	}

	result, err := h.checkout.Checkout(c.Request.Context(), userID, params)
	if err != nil {
		middleware.RecordOrderOperation("checkout", false)

		var stockErr *commands.InsufficientStockError
		switch {
		case errors.Is(err, commands.ErrCartEmpty):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Cart is empty",
				"message": resdto.MessageResponse{Category: "warning", Text: "Your cart is empty."},
			})
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, gin.H{
				"error":   stockErr.Error(),
				"message": resdto.MessageResponse{Category: "error", Text: "Not enough stock for " + stockErr.ProductName + "."},
			})
		case errors.Is(err, commands.ErrProductNotFound):
			c.JSON(http.StatusConflict, gin.H{
				"error": "A cart item is no longer available",
			})
		case errors.Is(err, commands.ErrBuyerNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Buyer account not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid checkout data",
			})
		case errors.Is(err, commands.ErrGatewayFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "Payment provider is unavailable",
				"message": resdto.MessageResponse{Category: "error", Text: "We could not start the payment. Please try again."},
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	middleware.RecordOrderOperation("checkout", true)
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
