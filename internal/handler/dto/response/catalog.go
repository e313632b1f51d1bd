package response

import (
	"time"

	"storefront/internal/usecase/queries"
)

type ProductResponse struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Price        string    `json:"price"`
	Stock        int32     `json:"stock"`
	InStock      bool      `json:"inStock"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	return &ProductResponse{
		ID:           v.ID,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		Name:         v.Name,
		Slug:         v.Slug,
		Description:  v.Description,
		Price:        v.Price.StringFixed(2),
		Stock:        v.Stock,
		InStock:      v.InStock,
		ImageURL:     v.ImageURL,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromCategoryView(v *queries.CategoryView) *CategoryResponse {
	return &CategoryResponse{
		ID:          v.ID,
		Name:        v.Name,
		Slug:        v.Slug,
		Description: v.Description,
	}
}
