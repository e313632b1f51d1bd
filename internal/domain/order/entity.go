package order

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrNegativeUnitPrice      = errors.New("unit price cannot be negative")
	ErrShippingAddressTooLong = errors.New("shipping address too long")
)

const MaxShippingAddressLength = 250

// Line is an immutable snapshot of a product at purchase time. The unit price
// is frozen here and never re-read from the live product.
type Line struct {
	ProductID   int64
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

type Order struct {
	userID           uuid.UUID
	status           Status
	shippingAddress  string
	observations     string
	paymentProvider  string
	paymentReference string
	lines            []Line
}

// NewOrder builds a fresh order for the authenticated buyer. The status is
// forced to pending regardless of caller input. Shipping address and
// observations may both be blank.
func NewOrder(userID uuid.UUID, shippingAddress, observations string) (*Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if len(shippingAddress) > MaxShippingAddressLength {
		return nil, ErrShippingAddressTooLong
	}

	return &Order{
		userID:          userID,
		status:          StatusPending,
		shippingAddress: shippingAddress,
		observations:    strings.TrimSpace(observations),
	}, nil
}

func (o *Order) AddLine(productID int64, productName string, quantity int32, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	o.lines = append(o.lines, Line{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	})
	return nil
}

// TotalAmount is the sum of quantity times frozen unit price over all lines.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (o *Order) SetPayment(provider, reference string) {
	o.paymentProvider = provider
	o.paymentReference = reference
}

func (o *Order) UserID() uuid.UUID        { return o.userID }
func (o *Order) Status() Status           { return o.status }
func (o *Order) ShippingAddress() string  { return o.shippingAddress }
func (o *Order) Observations() string     { return o.observations }
func (o *Order) PaymentProvider() string  { return o.paymentProvider }
func (o *Order) PaymentReference() string { return o.paymentReference }
func (o *Order) Lines() []Line            { return o.lines }
