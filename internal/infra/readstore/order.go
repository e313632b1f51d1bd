package readstore

import (
	"context"
	"time"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

const orderHeaderColumns = `
	o.id, o.user_id, o.status, o.shipping_address, o.observations,
	o.payment_provider, o.payment_reference, o.created_at, o.updated_at`

func (r *OrderReadStore) FindByID(ctx context.Context, id int64) (*queries.OrderView, error) {
	const q = `
		SELECT ` + orderHeaderColumns + `
		FROM orders o
		WHERE o.id = $1`

	return r.scanOrderView(ctx, q, id)
}

func (r *OrderReadStore) FindByIDForUser(ctx context.Context, id int64, userID uuid.UUID) (*queries.OrderView, error) {
	const q = `
		SELECT ` + orderHeaderColumns + `
		FROM orders o
		WHERE o.id = $1 AND o.user_id = $2`

	return r.scanOrderView(ctx, q, id, userID)
}

func (r *OrderReadStore) scanOrderView(ctx context.Context, query string, args ...any) (*queries.OrderView, error) {
	var (
		view      queries.OrderView
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&view.ID, &view.UserID, &view.Status, &view.ShippingAddress, &view.Observations,
		&view.PaymentProvider, &view.PaymentReference, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}
	view.CreatedAt = createdAt
	view.UpdatedAt = updatedAt

	items, total, err := r.findItems(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	view.Items = items
	view.TotalAmount = total

	return &view, nil
}

func (r *OrderReadStore) findItems(ctx context.Context, orderID int64) ([]queries.OrderItemView, decimal.Decimal, error) {
	const q = `
		SELECT oi.id, oi.product_id, p.name, oi.quantity, oi.price::text
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	rows, err := r.db.Query(ctx, q, orderID)
	if err != nil {
		return nil, decimal.Zero, infra.WrapRepoErr("failed to find order items", err)
	}
	defer rows.Close()

	items := make([]queries.OrderItemView, 0)
	total := decimal.Zero
	for rows.Next() {
		var (
			item      queries.OrderItemView
			priceText string
		)
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &priceText); err != nil {
			return nil, decimal.Zero, infra.WrapRepoErr("failed to scan order item", err)
		}
		item.UnitPrice, err = pgconv.DecimalFromText(priceText)
		if err != nil {
			return nil, decimal.Zero, infra.WrapRepoErr("invalid order item price", err)
		}
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt32(item.Quantity))
		total = total.Add(item.Subtotal)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, decimal.Zero, infra.WrapRepoErr("failed to iterate order items", err)
	}
	return items, total, nil
}

func (r *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.OrderListItem, error) {
	const q = `
		SELECT o.id, o.status, o.created_at,
		       COALESCE(SUM(oi.quantity), 0),
		       COALESCE(SUM(oi.quantity * oi.price), 0)::text
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1
		GROUP BY o.id, o.status, o.created_at
		ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	result := make([]*queries.OrderListItem, 0)
	for rows.Next() {
		var (
			item      queries.OrderListItem
			totalText string
		)
		if err := rows.Scan(&item.ID, &item.Status, &item.CreatedAt, &item.TotalItems, &totalText); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list item", err)
		}
		item.TotalAmount, err = pgconv.DecimalFromText(totalText)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid order total", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return result, nil
}
