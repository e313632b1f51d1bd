package api

import (
	"errors"
	"net/http"

	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/handler/middleware"
	"storefront/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments commands.PaymentCommands
}

func NewPaymentHandler(payments commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// @Summary MercadoPago callback
// @Description Reconcile an order's status from the provider's redirect parameters
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param external_reference query string true "Order ID the provider echoes back"
// @Param payment_id query string false "Provider payment ID"
// @Param status query string false "Payment status from the redirect"
// @Param collection_status query string false "Fallback payment status"
// @Success 200 {object} resdto.ReconcileResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /payments/mercadopago/callback [get]
func (h *PaymentHandler) MercadoPagoCallback(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	params := commands.ReconcileParams{
		ExternalReference: c.Query("external_reference"),
		PaymentID:         c.Query("payment_id"),
		Status:            c.Query("status"),
		CollectionStatus:  c.Query("collection_status"),
	}

	result, err := h.payments.Reconcile(c.Request.Context(), userID, params)
	if err != nil {
		middleware.RecordOrderOperation("reconcile", false)

		switch {
		case errors.Is(err, commands.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid external reference",
				"message": resdto.MessageResponse{Category: "error", Text: "We could not match this payment to an order."},
			})
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Order not found",
				"message": resdto.MessageResponse{Category: "error", Text: "We could not match this payment to an order."},
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	middleware.RecordOrderOperation("reconcile", true)
	c.JSON(http.StatusOK, resdto.FromReconcileResult(result))
}
