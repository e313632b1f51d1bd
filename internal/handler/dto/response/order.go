package response

import (
	"time"

	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Subtotal    string `json:"subtotal"`
}

type OrderResponse struct {
	ID               int64               `json:"id"`
	UserID           uuid.UUID           `json:"userId"`
	Status           string              `json:"status"`
	ShippingAddress  string              `json:"shippingAddress"`
	Observations     string              `json:"observations,omitempty"`
	PaymentProvider  string              `json:"paymentProvider,omitempty"`
	PaymentReference string              `json:"paymentReference,omitempty"`
	TotalAmount      string              `json:"totalAmount"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

type OrderListResponse struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	TotalItems  int64     `json:"totalItems"`
	TotalAmount string    `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Subtotal:    it.Subtotal.StringFixed(2),
		})
	}
	return &OrderResponse{
		ID:               v.ID,
		UserID:           v.UserID,
		Status:           v.Status,
		ShippingAddress:  v.ShippingAddress,
		Observations:     v.Observations,
		PaymentProvider:  v.PaymentProvider,
		PaymentReference: v.PaymentReference,
		TotalAmount:      v.TotalAmount.StringFixed(2),
		Items:            items,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func FromOrderListItem(v *queries.OrderListItem) *OrderListResponse {
	return &OrderListResponse{
		ID:          v.ID,
		Status:      v.Status,
		TotalItems:  v.TotalItems,
		TotalAmount: v.TotalAmount.StringFixed(2),
		CreatedAt:   v.CreatedAt,
	}
}
