package order

import "errors"

var ErrInvalidStatus = errors.New("invalid order status")

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the payment workflow considers the status final.
// Reconciliation never moves an order out of a terminal status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) CanTransitionTo(to Status) bool {
	if s.IsTerminal() {
		return s == to
	}
	return true
}

// Payment states reported by the provider, either from the payment lookup or
// from the callback's own query parameters.
const (
	PaymentStateApproved  = "approved"
	PaymentStatePending   = "pending"
	PaymentStateInProcess = "in_process"
)

// StatusForPaymentState maps a provider-reported payment state onto the order
// status machine. Anything outside the known set, including an absent state,
// cancels the order.
func StatusForPaymentState(state string) Status {
	switch state {
	case PaymentStateApproved:
		return StatusCompleted
	case PaymentStatePending, PaymentStateInProcess:
		return StatusPending
	default:
		return StatusCancelled
	}
}
