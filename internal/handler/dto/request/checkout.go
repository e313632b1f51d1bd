package request

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"max=250"`
	Observations    string `json:"observations" binding:"max=500"`
}
