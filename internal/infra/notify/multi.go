package notify

import (
	"context"
	"errors"

	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"
)

// MultiNotifier fans an event out to every configured channel and reports
// the combined failures. A partially delivered notification is still useful.
type MultiNotifier struct {
	notifiers []commands.Notifier
}

func NewMultiNotifier(notifiers ...commands.Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (m *MultiNotifier) OrderCreated(ctx context.Context, view *queries.OrderView, payer commands.Payer) error {
	var errList []error
	for _, n := range m.notifiers {
		if err := n.OrderCreated(ctx, view, payer); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
