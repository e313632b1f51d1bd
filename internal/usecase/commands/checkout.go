package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrCartEmpty               = errs.New("cart is empty")
	ErrProductNotFound         = errs.New("product not found or inactive")
	ErrGatewayFailed           = errs.New("payment preference creation failed")
	ErrBuyerNotFound           = errs.New("buyer not found")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// InsufficientStockError names the product whose stock ran out mid-checkout
// so the buyer knows which cart line to adjust.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %q", e.ProductName)
}

const paymentProviderName = "mercadopago"

type CheckoutParams struct {
	ShippingAddress string
	Observations    string
}

type CheckoutResult struct {
	Order       *queries.OrderView
	RedirectURL string
	Message     Message
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, userID uuid.UUID, params CheckoutParams) (*CheckoutResult, error)
}

type checkoutImpl struct {
	uow          UnitOfWork
	carts        CartStore
	users        UserReadStore
	gateway      PaymentGateway
	notifier     Notifier
	orderQueries queries.OrderQueries
}

func NewCheckoutCommands(
	uow UnitOfWork,
	carts CartStore,
	users UserReadStore,
	gateway PaymentGateway,
	notifier Notifier,
	orderQueries queries.OrderQueries,
) CheckoutCommands {
	return &checkoutImpl{
		uow:          uow,
		carts:        carts,
		users:        users,
		gateway:      gateway,
		notifier:     notifier,
		orderQueries: orderQueries,
	}
}

// Checkout converts the buyer's cart into a persisted order with reserved
// stock, then obtains a payment redirect. Order, items and stock decrements
// commit in one transaction before the gateway call; if the gateway fails the
// committed writes are undone with compensating writes, so no unpaid orphan
// order survives. The cart is cleared only after a preference exists.
func (c *checkoutImpl) Checkout(ctx context.Context, userID uuid.UUID, params CheckoutParams) (*CheckoutResult, error) {
	snap, err := c.carts.Snapshot(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap.IsEmpty() {
		return nil, ErrCartEmpty
	}

	payer, err := c.users.PayerByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBuyerNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	newOrder, err := order.NewOrder(userID, params.ShippingAddress, params.Observations)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	orderID, prefItems, err := c.reserveAndPersist(ctx, newOrder, snap)
	if err != nil {
		return nil, err
	}

	pref, err := c.gateway.CreatePreference(ctx, PreferenceRequest{
		OrderID: orderID,
		Items:   prefItems,
		Payer:   *payer,
	})
	if err != nil {
		c.compensate(ctx, orderID, snap)
		return nil, errs.Mark(err, ErrGatewayFailed)
	}

	if err := c.persistPayment(ctx, orderID, pref.ID); err != nil {
		c.compensate(ctx, orderID, snap)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.orderQueries.GetByIDSystem(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if notifyErr := c.notifier.OrderCreated(ctx, view, *payer); notifyErr != nil {
		// Best effort only: a failed notification never fails a checkout.
		slog.Warn("order notification failed", "order_id", orderID, "error", notifyErr.Error())
	}

	if clearErr := c.carts.Clear(ctx, userID); clearErr != nil {
		slog.Warn("failed to clear cart after checkout", "user_id", userID, "error", clearErr.Error())
	}

	return &CheckoutResult{
		Order:       view,
		RedirectURL: pref.RedirectURL,
		Message:     Message{Category: CategorySuccess, Text: "Order confirmed. Complete the payment to finish your purchase."},
	}, nil
}

// reserveAndPersist creates the order header, decrements stock and freezes
// line prices, all in one transaction. Stock is re-read from the store line
// by line; the cart's cached price is never trusted.
func (c *checkoutImpl) reserveAndPersist(ctx context.Context, newOrder *order.Order, snap cart.Snapshot) (int64, []PreferenceItem, error) {
	var (
		orderID   int64
		prefItems []PreferenceItem
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		orderID, err = tx.Orders().Create(ctx, newOrder)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		prefItems = prefItems[:0]
		for _, line := range snap.Lines() {
			charge, err := tx.Products().DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				switch {
				case infra.IsKind(err, infra.KindInsufficientStock):
					return &InsufficientStockError{ProductName: line.Name}
				case infra.IsKind(err, infra.KindNotFound):
					return errs.Mark(err, ErrProductNotFound)
				default:
					return errs.Mark(err, ErrDatabaseOperationFailed)
				}
			}

			item := order.Line{
				ProductID:   line.ProductID,
				ProductName: charge.Name,
				Quantity:    line.Quantity,
				UnitPrice:   charge.UnitPrice,
			}
			if err := tx.Orders().AddItem(ctx, orderID, item); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			prefItems = append(prefItems, PreferenceItem{
				ID:        strconv.FormatInt(line.ProductID, 10),
				Title:     charge.Name,
				Quantity:  line.Quantity,
				UnitPrice: charge.UnitPrice,
			})
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	return orderID, prefItems, nil
}

func (c *checkoutImpl) persistPayment(ctx context.Context, orderID int64, preferenceID string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Orders().SetPayment(ctx, orderID, paymentProviderName, preferenceID)
	})
}

// compensate undoes the committed checkout transaction: stock goes back and
// the order is deleted (items cascade). Holding a database transaction open
// across the gateway's network call would pin row locks for the duration, so
// the explicit undo is preferred.
func (c *checkoutImpl) compensate(ctx context.Context, orderID int64, snap cart.Snapshot) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		for _, line := range snap.Lines() {
			if err := tx.Products().RestoreStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return tx.Orders().Delete(ctx, orderID)
	})
	if err != nil {
		slog.Error("checkout compensation failed, order left pending",
			"order_id", orderID, "error", err.Error())
	}
}
