package reconcile

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/payments"
	"github.com/anish-ck/oruva-settlement/settlement"
	"github.com/anish-ck/oruva-settlement/store"
)

// Service asks the payment gateway about an order and settles it when a webhook was missed.
type Service struct {
	orders   store.OrderStore
	payments payments.Gateway
	settler  settlement.Settler
}

func NewService(orders store.OrderStore, gateway payments.Gateway, settler settlement.Settler) *Service {
	return &Service{
		orders:   orders,
		payments: gateway,
		settler:  settler,
	}
}

// Reconcile is safe to call repeatedly. Terminal orders, including MINT_FAILED ones, are returned as stored.
func (x *Service) Reconcile(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := x.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return order, nil
	}

	logger := log.WithFields(log.Fields{
		"order_id":  order.OrderID,
		"reference": order.PaymentReference,
	})

	status, err := x.payments.GetOrder(ctx, order.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("error fetching payment status: %w", err)
	}

	if !status.IsPaid() {
		logger.Debug("[RECONCILE] Payment not completed: ", status.Status)
		return order, nil
	}
	if !status.Amount.Equal(order.RequestedAmount) {
		logger.WithFields(log.Fields{
			"requested": order.RequestedAmount.String(),
			"paid":      status.Amount.String(),
		}).Warn("[RECONCILE] Paid amount does not match the order, not settling")
		return order, nil
	}

	logger.Info("[RECONCILE] Payment confirmed by gateway, settling")
	return x.settler.Settle(ctx, order.OrderID, status.Amount)
}
