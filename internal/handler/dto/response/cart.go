package response

import (
	"storefront/internal/usecase/commands"
)

type CartItemResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int32  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int32              `json:"totalItems"`
	Total      string             `json:"total"`
}

func FromCartView(v *commands.CartView) *CartResponse {
	items := make([]CartItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, CartItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Slug:      it.Slug,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal.StringFixed(2),
			ImageURL:  it.ImageURL,
		})
	}
	return &CartResponse{
		Items:      items,
		TotalItems: v.TotalItems,
		Total:      v.Total.StringFixed(2),
	}
}
