//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/order"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckoutTestSuite struct {
	suite.Suite
	userID   uuid.UUID
	uow      *stubUoW
	carts    *stubCartStore
	users    *stubUserStore
	gateway  *stubGateway
	notifier *stubNotifier
	orderQ   *stubOrderQueries
	checkout commands.CheckoutCommands
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) SetupTest() {
	s.userID = uuid.New()

	s.uow = newStubUoW()
	s.uow.products.seed(7, "Mate cup", "1500.50", 10)
	s.uow.products.seed(9, "Thermos", "8000.00", 3)

	snap := cart.NewSnapshot()
	s.Require().NoError(snap.Add(cart.Line{
		ProductID: 7, Name: "Mate cup", Slug: "mate-cup",
		UnitPrice: decimal.RequireFromString("1400.00"), // stale display price
		Quantity:  2,
	}, 10))
	s.Require().NoError(snap.Add(cart.Line{
		ProductID: 9, Name: "Thermos", Slug: "thermos",
		UnitPrice: decimal.RequireFromString("8000.00"),
		Quantity:  1,
	}, 3))
	s.carts = &stubCartStore{snap: snap}

	s.users = &stubUserStore{payer: &commands.Payer{Name: "Ana", Surname: "Diaz", Email: "ana@example.com"}}
	s.gateway = &stubGateway{pref: &commands.Preference{ID: "pref-1", RedirectURL: "https://mp.example/init"}}
	s.notifier = &stubNotifier{}

	s.orderQ = newStubOrderQueries()
	s.orderQ.views[1] = &queries.OrderView{
		ID: 1, UserID: s.userID, Status: "pending",
		TotalAmount: decimal.RequireFromString("11001.00"),
	}

	s.checkout = commands.NewCheckoutCommands(s.uow, s.carts, s.users, s.gateway, s.notifier, s.orderQ)
}

func (s *CheckoutTestSuite) params() commands.CheckoutParams {
	return commands.CheckoutParams{ShippingAddress: "123 Main St", Observations: "ring twice"}
}

func (s *CheckoutTestSuite) TestSuccessfulCheckout() {
	result, err := s.checkout.Checkout(context.Background(), s.userID, s.params())
	s.Require().NoError(err)
	s.Require().NotNil(result)

	s.Equal("https://mp.example/init", result.RedirectURL)
	s.Equal(commands.CategorySuccess, result.Message.Category)
	s.Equal(int64(1), result.Order.ID)

	// stock reserved
	s.Equal(int32(8), s.uow.products.stock[7])
	s.Equal(int32(2), s.uow.products.stock[9])

	// lines frozen at live prices, not the cart's stale display price
	items := s.uow.orders.items[1]
	s.Require().Len(items, 2)
	s.Equal(int64(7), items[0].ProductID)
	s.True(items[0].UnitPrice.Equal(decimal.RequireFromString("1500.50")))
	s.Equal(int32(2), items[0].Quantity)

	// payment reference persisted, cart cleared, notification sent
	s.Equal("pref-1", s.uow.orders.payments[1])
	s.Equal(1, s.carts.cleared)
	s.Equal([]int64{1}, s.notifier.calls)

	// gateway saw the live prices too
	s.Require().Len(s.gateway.prefCalls, 1)
	s.True(s.gateway.prefCalls[0].Items[0].UnitPrice.Equal(decimal.RequireFromString("1500.50")))
	s.Equal("Ana", s.gateway.prefCalls[0].Payer.Name)
}

func (s *CheckoutTestSuite) TestEmptyCart() {
	s.carts.snap = cart.NewSnapshot()

	_, err := s.checkout.Checkout(context.Background(), s.userID, s.params())
	s.ErrorIs(err, commands.ErrCartEmpty)
	s.Empty(s.uow.orders.created)
	s.Empty(s.gateway.prefCalls)
}

func (s *CheckoutTestSuite) TestInsufficientStock() {
	s.uow.products.stock[9] = 0

	_, err := s.checkout.Checkout(context.Background(), s.userID, s.params())

	var stockErr *commands.InsufficientStockError
	s.Require().ErrorAs(err, &stockErr)
	s.Equal("Thermos", stockErr.ProductName)

	// reservation rolled back: every stock untouched, no order persisted
	s.Equal(int32(10), s.uow.products.stock[7])
	s.Equal(int32(0), s.uow.products.stock[9])
	s.Empty(s.uow.orders.created)
	s.Empty(s.uow.orders.items)

	// no payment attempt, cart untouched
	s.Empty(s.gateway.prefCalls)
	s.Equal(0, s.carts.cleared)
}

func (s *CheckoutTestSuite) TestVanishedProduct() {
	delete(s.uow.products.stock, 7)

	_, err := s.checkout.Checkout(context.Background(), s.userID, s.params())
	s.ErrorIs(err, commands.ErrProductNotFound)
	s.Empty(s.uow.orders.created)
	s.Equal(int32(3), s.uow.products.stock[9])
	s.Empty(s.gateway.prefCalls)
}

func (s *CheckoutTestSuite) TestGatewayFailureCompensates() {
	s.gateway.prefErr = errBoom

	_, err := s.checkout.Checkout(context.Background(), s.userID, s.params())
	s.ErrorIs(err, commands.ErrGatewayFailed)

	// compensating writes: stock restored, order deleted, cart kept
	s.Equal(int32(10), s.uow.products.stock[7])
	s.Equal(int32(3), s.uow.products.stock[9])
	s.Equal([]int64{1}, s.uow.orders.deleted)
	s.Equal(0, s.carts.cleared)
}

func (s *CheckoutTestSuite) TestPaymentPersistFailureCompensates() {
	s.uow.orders.setPayErr = errBoom

	_, err := s.checkout.Checkout(context.Background(), s.userID, s.params())
	s.ErrorIs(err, commands.ErrDatabaseOperationFailed)

	s.Equal(int32(10), s.uow.products.stock[7])
	s.Equal([]int64{1}, s.uow.orders.deleted)
	s.Equal(0, s.carts.cleared)
}

func (s *CheckoutTestSuite) TestBuyerNotFound() {
	s.users.err = newNotFoundErr()

	_, err := s.checkout.Checkout(context.Background(), s.userID, s.params())
	s.ErrorIs(err, commands.ErrBuyerNotFound)
	s.Empty(s.uow.orders.created)
}

func (s *CheckoutTestSuite) TestBlankShippingAddressAccepted() {
	result, err := s.checkout.Checkout(context.Background(), s.userID, commands.CheckoutParams{ShippingAddress: "  "})
	s.Require().NoError(err)
	s.Equal(commands.CategorySuccess, result.Message.Category)
	s.Require().Len(s.uow.orders.created, 1)
	s.Equal("", s.uow.orders.created[0].Order.ShippingAddress())
}

func (s *CheckoutTestSuite) TestOverlongShippingAddress() {
	long := strings.Repeat("a", order.MaxShippingAddressLength+1)
	_, err := s.checkout.Checkout(context.Background(), s.userID, commands.CheckoutParams{ShippingAddress: long})
	s.ErrorIs(err, commands.ErrDomainValidation)
	s.ErrorIs(err, order.ErrShippingAddressTooLong)
	s.Empty(s.gateway.prefCalls)
}

func (s *CheckoutTestSuite) TestNotifierFailureDoesNotFailCheckout() {
	s.notifier.err = errBoom

	result, err := s.checkout.Checkout(context.Background(), s.userID, s.params())
	s.Require().NoError(err)
	s.Equal(commands.CategorySuccess, result.Message.Category)
	s.Equal(1, s.carts.cleared)
}

func (s *CheckoutTestSuite) TestCartClearFailureDoesNotFailCheckout() {
	s.carts.clearErr = errBoom

	result, err := s.checkout.Checkout(context.Background(), s.userID, s.params())
	s.Require().NoError(err)
	s.NotNil(result)
	s.Equal("pref-1", s.uow.orders.payments[1])
}
