package commands

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"storefront/internal/domain/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidReference = errs.New("invalid external reference")
	ErrOrderNotFound    = errs.New("order not found")
)

// ReconcileParams carries the provider callback's query parameters.
type ReconcileParams struct {
	ExternalReference string
	PaymentID         string
	Status            string
	CollectionStatus  string
}

type ReconcileResult struct {
	Order   *queries.OrderView
	Message Message
}

type PaymentCommands interface {
	Reconcile(ctx context.Context, userID uuid.UUID, params ReconcileParams) (*ReconcileResult, error)
}

type paymentImpl struct {
	uow          UnitOfWork
	gateway      PaymentGateway
	orderQueries queries.OrderQueries
}

func NewPaymentCommands(uow UnitOfWork, gateway PaymentGateway, orderQueries queries.OrderQueries) PaymentCommands {
	return &paymentImpl{
		uow:          uow,
		gateway:      gateway,
		orderQueries: orderQueries,
	}
}

// Reconcile consumes a payment callback and drives the order status machine.
// The gateway's view of the payment is authoritative when reachable; the
// callback's own status parameters are the fallback. The mapping is
// idempotent: redelivering a callback re-applies the same status.
func (p *paymentImpl) Reconcile(ctx context.Context, userID uuid.UUID, params ReconcileParams) (*ReconcileResult, error) {
	orderID, err := strconv.ParseInt(params.ExternalReference, 10, 64)
	if err != nil || orderID <= 0 {
		return nil, ErrInvalidReference
	}

	view, err := p.orderQueries.GetByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, queries.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	state := p.resolvePaymentState(ctx, params)
	newStatus := order.StatusForPaymentState(state)

	current := order.Status(view.Status)
	if !current.CanTransitionTo(newStatus) {
		// Terminal orders never move; re-report the settled outcome instead.
		slog.Info("ignoring payment state for finalized order",
			"order_id", orderID, "status", current.String(), "payment_state", state)
		newStatus = current
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Orders().UpdateStatus(ctx, orderID, newStatus)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view.Status = newStatus.String()
	return &ReconcileResult{
		Order:   view,
		Message: messageForStatus(newStatus),
	}, nil
}

func (p *paymentImpl) resolvePaymentState(ctx context.Context, params ReconcileParams) string {
	payment, err := p.gateway.GetPayment(ctx, params.PaymentID)
	if err != nil {
		slog.Warn("payment lookup failed, falling back to callback status",
			"payment_id", params.PaymentID, "error", err.Error())
	} else if payment != nil {
		return payment.Status
	}

	if params.Status != "" {
		return params.Status
	}
	return params.CollectionStatus
}

func messageForStatus(s order.Status) Message {
	switch s {
	case order.StatusCompleted:
		return Message{Category: CategorySuccess, Text: "Payment approved. Thank you for your purchase!"}
	case order.StatusPending:
		return Message{Category: CategoryInfo, Text: "Payment is still being processed. We will update your order once it settles."}
	default:
		return Message{Category: CategoryWarning, Text: "Payment was not completed. The order has been cancelled."}
	}
}
