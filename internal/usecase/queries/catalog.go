package queries

import (
	"context"
	"time"

	"storefront/internal/infra"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errs.New("product not found")

type ProductView struct {
	ID           int64           `json:"id"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int32           `json:"stock"`
	ImageURL     string          `json:"image_url"`
	InStock      bool            `json:"in_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CategoryView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ProductFilter narrows the active-product listing; zero values mean no filter.
type ProductFilter struct {
	CategorySlug string
	Search       string
}

type CatalogQueries interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*ProductView, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductView, error)
	ListCategories(ctx context.Context) ([]*CategoryView, error)
}

type CatalogReadStore interface {
	FindActiveProducts(ctx context.Context, filter ProductFilter) ([]*ProductView, error)
	FindActiveProductBySlug(ctx context.Context, slug string) (*ProductView, error)
	FindCategories(ctx context.Context) ([]*CategoryView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context, filter ProductFilter) ([]*ProductView, error) {
	products, err := q.store.FindActiveProducts(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list products")
	}
	return products, nil
}

func (q *catalogQueriesImpl) GetProductBySlug(ctx context.Context, slug string) (*ProductView, error) {
	product, err := q.store.FindActiveProductBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Wrap(err, "failed to find product")
	}
	return product, nil
}

func (q *catalogQueriesImpl) ListCategories(ctx context.Context) ([]*CategoryView, error) {
	categories, err := q.store.FindCategories(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list categories")
	}
	return categories, nil
}
