package commands

import (
	"context"
	"errors"

	"storefront/internal/domain/cart"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrCartItemNotFound = errs.New("item not in cart")

type CartItemView struct {
	ProductID int64
	Name      string
	Slug      string
	UnitPrice decimal.Decimal
	Quantity  int32
	Subtotal  decimal.Decimal
	ImageURL  string
}

type CartView struct {
	Items      []CartItemView
	TotalItems int32
	Total      decimal.Decimal
}

type CartCommands interface {
	AddItem(ctx context.Context, userID uuid.UUID, slug string, quantity int32) (*CartView, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) (*CartView, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	View(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type cartImpl struct {
	carts   CartStore
	catalog queries.CatalogQueries
}

func NewCartCommands(carts CartStore, catalog queries.CatalogQueries) CartCommands {
	return &cartImpl{carts: carts, catalog: catalog}
}

// AddItem resolves the product by slug so the cart always stores the live
// catalog price and display fields, then caps the accumulated quantity at
// the available stock.
func (c *cartImpl) AddItem(ctx context.Context, userID uuid.UUID, slug string, quantity int32) (*CartView, error) {
	product, err := c.catalog.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, queries.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	snap, err := c.carts.Snapshot(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	line := cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
		Slug:      product.Slug,
	}
	if err := snap.Add(line, product.Stock); err != nil {
		return nil, err
	}

	if err := c.carts.Save(ctx, userID, snap); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return buildCartView(snap), nil
}

func (c *cartImpl) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) (*CartView, error) {
	snap, err := c.carts.Snapshot(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if _, ok := snap.Get(productID); !ok {
		return nil, ErrCartItemNotFound
	}

	snap.Remove(productID)
	if err := c.carts.Save(ctx, userID, snap); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return buildCartView(snap), nil
}

func (c *cartImpl) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := c.carts.Clear(ctx, userID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *cartImpl) View(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	snap, err := c.carts.Snapshot(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return buildCartView(snap), nil
}

func buildCartView(snap cart.Snapshot) *CartView {
	lines := snap.Lines()
	view := &CartView{
		Items: make([]CartItemView, 0, len(lines)),
		Total: decimal.Zero,
	}
	for _, l := range lines {
		sub := l.Subtotal()
		view.Items = append(view.Items, CartItemView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Slug:      l.Slug,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  sub,
			ImageURL:  l.ImageURL,
		})
		view.TotalItems += l.Quantity
		view.Total = view.Total.Add(sub)
	}
	return view
}
