package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

var errNoRowsAffected = errors.New("no rows affected")

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (int64, error) {
	const q = `
		INSERT INTO orders (user_id, status, shipping_address, observations)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, q,
		o.UserID(), o.Status().String(), o.ShippingAddress(), o.Observations(),
	).Scan(&id)
	if err != nil {
		return 0, wrapPgErr("failed to create order", err)
	}
	return id, nil
}

func (r *OrderRepository) AddItem(ctx context.Context, orderID int64, line order.Line) error {
	const q = `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4::numeric)`

	_, err := r.db.Exec(ctx, q,
		orderID, line.ProductID, line.Quantity, pgconv.DecimalToText(line.UnitPrice),
	)
	if err != nil {
		return wrapPgErr("failed to add order item", err)
	}
	return nil
}

func (r *OrderRepository) SetPayment(ctx context.Context, orderID int64, provider, reference string) error {
	const q = `
		UPDATE orders
		SET payment_provider = $2, payment_reference = $3, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, orderID, provider, reference)
	if err != nil {
		return wrapPgErr("failed to set payment reference", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", errNoRowsAffected, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status order.Status) error {
	const q = `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, orderID, status.String())
	if err != nil {
		return wrapPgErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", errNoRowsAffected, infra.KindNotFound)
	}
	return nil
}

// Delete removes the order header and, through the cascade, its items. Used
// only to undo an order whose payment preference could not be created.
func (r *OrderRepository) Delete(ctx context.Context, orderID int64) error {
	const q = `DELETE FROM orders WHERE id = $1`

	if _, err := r.db.Exec(ctx, q, orderID); err != nil {
		return wrapPgErr("failed to delete order", err)
	}
	return nil
}

func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
