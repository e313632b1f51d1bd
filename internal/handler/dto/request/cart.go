package request

type AddCartItemRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Quantity int32  `json:"quantity" binding:"required,gt=0"`
}
