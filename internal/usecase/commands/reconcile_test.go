//go:build unit

package commands_test

import (
	"context"
	"testing"

	"storefront/internal/domain/order"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ReconcileTestSuite struct {
	suite.Suite
	userID   uuid.UUID
	uow      *stubUoW
	gateway  *stubGateway
	orderQ   *stubOrderQueries
	payments commands.PaymentCommands
}

func TestReconcileSuite(t *testing.T) {
	suite.Run(t, new(ReconcileTestSuite))
}

func (s *ReconcileTestSuite) SetupTest() {
	s.userID = uuid.New()
	s.uow = newStubUoW()
	s.gateway = &stubGateway{}

	s.orderQ = newStubOrderQueries()
	s.orderQ.views[42] = &queries.OrderView{ID: 42, UserID: s.userID, Status: "pending"}

	s.payments = commands.NewPaymentCommands(s.uow, s.gateway, s.orderQ)
}

func (s *ReconcileTestSuite) params() commands.ReconcileParams {
	return commands.ReconcileParams{ExternalReference: "42", PaymentID: "555", Status: "approved"}
}

func (s *ReconcileTestSuite) TestApprovedCompletesOrder() {
	s.gateway.payment = &commands.Payment{ID: "555", Status: "approved", ExternalReference: "42"}

	result, err := s.payments.Reconcile(context.Background(), s.userID, s.params())
	s.Require().NoError(err)

	s.Equal("completed", result.Order.Status)
	s.Equal(order.StatusCompleted, s.uow.orders.statuses[42])
	s.Equal(commands.CategorySuccess, result.Message.Category)
}

func (s *ReconcileTestSuite) TestPendingStates() {
	for _, state := range []string{"pending", "in_process"} {
		s.SetupTest()
		s.gateway.payment = &commands.Payment{ID: "555", Status: state}

		result, err := s.payments.Reconcile(context.Background(), s.userID, s.params())
		s.Require().NoError(err)

		s.Equal("pending", result.Order.Status)
		s.Equal(commands.CategoryInfo, result.Message.Category)
	}
}

func (s *ReconcileTestSuite) TestUnknownStateCancels() {
	s.gateway.payment = &commands.Payment{ID: "555", Status: "rejected"}

	result, err := s.payments.Reconcile(context.Background(), s.userID, s.params())
	s.Require().NoError(err)

	s.Equal("cancelled", result.Order.Status)
	s.Equal(order.StatusCancelled, s.uow.orders.statuses[42])
	s.Equal(commands.CategoryWarning, result.Message.Category)
}

func (s *ReconcileTestSuite) TestInvalidExternalReference() {
	for _, ref := range []string{"", "abc", "-1", "0", "12.5"} {
		params := s.params()
		params.ExternalReference = ref

		_, err := s.payments.Reconcile(context.Background(), s.userID, params)
		s.ErrorIs(err, commands.ErrInvalidReference, "reference %q", ref)
	}
}

func (s *ReconcileTestSuite) TestForeignOrderReportedNotFound() {
	_, err := s.payments.Reconcile(context.Background(), uuid.New(), s.params())
	s.ErrorIs(err, commands.ErrOrderNotFound)
}

func (s *ReconcileTestSuite) TestGatewayFailureFallsBackToCallbackStatus() {
	s.gateway.paymentErr = errBoom

	params := s.params()
	params.Status = "approved"

	result, err := s.payments.Reconcile(context.Background(), s.userID, params)
	s.Require().NoError(err)
	s.Equal("completed", result.Order.Status)
}

func (s *ReconcileTestSuite) TestEmptyPaymentIDUsesCollectionStatus() {
	params := commands.ReconcileParams{
		ExternalReference: "42",
		CollectionStatus:  "in_process",
	}

	result, err := s.payments.Reconcile(context.Background(), s.userID, params)
	s.Require().NoError(err)
	s.Equal("pending", result.Order.Status)
	s.Equal(commands.CategoryInfo, result.Message.Category)
}

func (s *ReconcileTestSuite) TestTerminalOrderNeverReopens() {
	s.orderQ.views[42].Status = "completed"
	s.gateway.payment = &commands.Payment{ID: "555", Status: "rejected"}

	result, err := s.payments.Reconcile(context.Background(), s.userID, s.params())
	s.Require().NoError(err)

	s.Equal("completed", result.Order.Status)
	s.Equal(order.StatusCompleted, s.uow.orders.statuses[42])
	s.Equal(commands.CategorySuccess, result.Message.Category)
}

func (s *ReconcileTestSuite) TestRedeliveryIsIdempotent() {
	s.gateway.payment = &commands.Payment{ID: "555", Status: "approved"}

	first, err := s.payments.Reconcile(context.Background(), s.userID, s.params())
	s.Require().NoError(err)

	s.orderQ.views[42].Status = first.Order.Status

	second, err := s.payments.Reconcile(context.Background(), s.userID, s.params())
	s.Require().NoError(err)

	s.Equal(first.Order.Status, second.Order.Status)
	s.Equal(first.Message, second.Message)
}
