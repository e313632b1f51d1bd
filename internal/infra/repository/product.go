package repository

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/commands"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

// DecrementStock takes quantity from stock in a single conditional UPDATE.
// The stock >= quantity guard makes concurrent checkouts race on the row
// lock instead of the application, so stock can never go negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID int64, quantity int32) (*commands.ProductCharge, error) {
	const q = `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND is_active AND stock >= $2
		RETURNING name, price::text`

	var (
		name      string
		priceText string
	)
	err := r.db.QueryRow(ctx, q, productID, quantity).Scan(&name, &priceText)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, r.classifyDecrementMiss(ctx, productID)
		}
		return nil, wrapPgErr("failed to decrement stock", err)
	}

	price, err := pgconv.DecimalFromText(priceText)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid product price", err)
	}
	return &commands.ProductCharge{Name: name, UnitPrice: price}, nil
}

// A missed conditional update is either a product that no longer exists (or
// was deactivated) or one with too little stock. A second read tells them
// apart.
func (r *ProductRepository) classifyDecrementMiss(ctx context.Context, productID int64) error {
	const q = `SELECT stock FROM products WHERE id = $1 AND is_active`

	var stock int32
	err := r.db.QueryRow(ctx, q, productID).Scan(&stock)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("product not found", errNoRowsAffected, infra.KindNotFound)
		}
		return wrapPgErr("failed to check product stock", err)
	}
	return infra.WrapRepoErr("insufficient stock", errNoRowsAffected, infra.KindInsufficientStock)
}

func (r *ProductRepository) RestoreStock(ctx context.Context, productID int64, quantity int32) error {
	const q = `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, q, productID, quantity); err != nil {
		return wrapPgErr("failed to restore stock", err)
	}
	return nil
}
