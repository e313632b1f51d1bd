package response

import (
	"storefront/internal/usecase/commands"
)

type MessageResponse struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type CheckoutResponse struct {
	Order       *OrderResponse  `json:"order"`
	RedirectURL string          `json:"redirectUrl"`
	Message     MessageResponse `json:"message"`
}

type ReconcileResponse struct {
	Order   *OrderResponse  `json:"order"`
	Message MessageResponse `json:"message"`
}

func FromMessage(m commands.Message) MessageResponse {
	return MessageResponse{Category: string(m.Category), Text: m.Text}
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		Order:       FromOrderView(r.Order),
		RedirectURL: r.RedirectURL,
		Message:     FromMessage(r.Message),
	}
}

func FromReconcileResult(r *commands.ReconcileResult) *ReconcileResponse {
	return &ReconcileResponse{
		Order:   FromOrderView(r.Order),
		Message: FromMessage(r.Message),
	}
}
