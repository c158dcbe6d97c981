package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/payments"
	"github.com/anish-ck/oruva-settlement/store"
)

const paymentReferencePrefix = "oinr_"

// OrderService opens a PENDING order and the matching checkout with the payment gateway.
type OrderService struct {
	orders   store.OrderStore
	payments payments.Gateway
}

func NewOrderService(orders store.OrderStore, gateway payments.Gateway) *OrderService {
	return &OrderService{orders: orders, payments: gateway}
}

// CreateOrder stores the order before contacting the gateway so a paid checkout always has an order to settle.
// When the gateway fails the order is returned with the error and stays PENDING without a checkout url.
func (x *OrderService) CreateOrder(ctx context.Context, wallet string, amount decimal.Decimal, customer models.Customer) (*models.Order, error) {
	reference := paymentReferencePrefix + uuid.NewString()

	order, err := x.orders.Create(ctx, wallet, amount, reference, customer)
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{
		"order_id":  order.OrderID,
		"reference": reference,
	})

	session, err := x.payments.CreateOrder(ctx, payments.CreateOrderRequest{
		Reference:     reference,
		Amount:        amount,
		WalletAddress: order.WalletAddress,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
	})
	if err != nil {
		logger.WithError(err).Error("[ORDERS] Error creating checkout")
		return order, fmt.Errorf("error creating checkout: %w", err)
	}

	if err := x.orders.SetCheckoutURL(ctx, order.OrderID, session.CheckoutURL); err != nil {
		logger.WithError(err).Warn("[ORDERS] Error saving checkout url")
	}
	order.CheckoutURL = session.CheckoutURL

	logger.WithField("amount", amount.String()).Info("[ORDERS] Order created")
	return order, nil
}
