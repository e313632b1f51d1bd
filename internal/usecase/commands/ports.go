package commands

import (
	"context"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/order"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfWork runs fn inside a single database transaction; any error rolls
// every write back.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Orders() OrderRepository
	Products() ProductRepository
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) (int64, error)
	AddItem(ctx context.Context, orderID int64, line order.Line) error
	SetPayment(ctx context.Context, orderID int64, provider, reference string) error
	UpdateStatus(ctx context.Context, orderID int64, status order.Status) error
	Delete(ctx context.Context, orderID int64) error
}

// ProductCharge is the live product state captured while reserving stock:
// the name for messages and the current price frozen onto the order line.
type ProductCharge struct {
	Name      string
	UnitPrice decimal.Decimal
}

type ProductRepository interface {
	// DecrementStock atomically takes quantity from stock only when enough is
	// available, so concurrent checkouts can never drive stock negative.
	// Insufficiency surfaces as an INSUFFICIENT_STOCK repository error.
	DecrementStock(ctx context.Context, productID int64, quantity int32) (*ProductCharge, error)
	RestoreStock(ctx context.Context, productID int64, quantity int32) error
}

// CartStore is the session-scoped cart boundary, keyed by buyer.
type CartStore interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (cart.Snapshot, error)
	Save(ctx context.Context, userID uuid.UUID, snap cart.Snapshot) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type Payer struct {
	Name    string
	Surname string
	Email   string
}

type PreferenceItem struct {
	ID        string
	Title     string
	Quantity  int32
	UnitPrice decimal.Decimal
}

type PreferenceRequest struct {
	OrderID int64
	Items   []PreferenceItem
	Payer   Payer
}

// Preference is the provider-side right-to-pay record for an order.
type Preference struct {
	ID          string
	RedirectURL string
}

type Payment struct {
	ID                string
	Status            string
	ExternalReference string
}

type PaymentGateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
	// GetPayment returns (nil, nil) for an empty payment id: no information,
	// not an error.
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

type UserReadStore interface {
	PayerByID(ctx context.Context, id uuid.UUID) (*Payer, error)
}

// Notifier delivers a best-effort message about a newly created order. The
// checkout workflow deliberately discards its error.
type Notifier interface {
	OrderCreated(ctx context.Context, view *queries.OrderView, payer Payer) error
}

// Message is the flash-style outcome shown to the buyer; the category drives
// presentation and is part of the contract.
type MessageCategory string

const (
	CategorySuccess MessageCategory = "success"
	CategoryInfo    MessageCategory = "info"
	CategoryWarning MessageCategory = "warning"
	CategoryError   MessageCategory = "error"
)

type Message struct {
	Category MessageCategory `json:"category"`
	Text     string          `json:"text"`
}
