package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMalformedPayload = errors.New("malformed webhook payload")

// event types that report a completed payment
const (
	EventPaymentSuccess = "PAYMENT_SUCCESS_WEBHOOK"
	EventOrderPaid      = "ORDER_PAID"
	EventPaymentLink    = "PAYMENT_LINK_EVENT"
)

var completedEvents = map[string]bool{
	EventPaymentSuccess: true,
	EventOrderPaid:      true,
	EventPaymentLink:    true,
}

var paidStatuses = map[string]bool{
	"PAID":    true,
	"SUCCESS": true,
}

// Event is the canonical form of both gateway payload shapes.
type Event struct {
	EventType      string
	OrderReference string
	PaidAmount     decimal.Decimal
	PaymentStatus  string
}

// IsCompletedPayment reports whether the event should trigger settlement.
func (e Event) IsCompletedPayment() bool {
	return completedEvents[e.EventType] && paidStatuses[e.PaymentStatus]
}

type orderSection struct {
	OrderID     string              `json:"order_id"`
	OrderAmount decimal.NullDecimal `json:"order_amount"`
	OrderStatus string              `json:"order_status"`
}

type paymentSection struct {
	PaymentStatus string              `json:"payment_status"`
	PaymentAmount decimal.NullDecimal `json:"payment_amount"`
}

type payloadData struct {
	orderSection

	Order   *orderSection   `json:"order"`
	Payment *paymentSection `json:"payment"`

	LinkID         string              `json:"link_id"`
	LinkAmountPaid decimal.NullDecimal `json:"link_amount_paid"`
	LinkStatus     string              `json:"link_status"`
}

type payload struct {
	Type string       `json:"type"`
	Data *payloadData `json:"data"`
}

// ParsePayload normalizes an order based or payment link based webhook body.
func ParsePayload(raw []byte) (Event, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.Type == "" || p.Data == nil {
		return Event{}, fmt.Errorf("%w: missing type or data", ErrMalformedPayload)
	}

	event := Event{EventType: strings.ToUpper(strings.TrimSpace(p.Type))}
	data := p.Data

	if data.LinkID != "" {
		event.OrderReference = data.LinkID
		event.PaymentStatus = data.LinkStatus
		if data.LinkAmountPaid.Valid {
			event.PaidAmount = data.LinkAmountPaid.Decimal
		}
	} else {
		order := data.orderSection
		if data.Order != nil {
			order = *data.Order
		}
		event.OrderReference = order.OrderID
		event.PaymentStatus = order.OrderStatus
		if order.OrderAmount.Valid {
			event.PaidAmount = order.OrderAmount.Decimal
		}

		if data.Payment != nil {
			if data.Payment.PaymentStatus != "" {
				event.PaymentStatus = data.Payment.PaymentStatus
			}
			if data.Payment.PaymentAmount.Valid {
				event.PaidAmount = data.Payment.PaymentAmount.Decimal
			}
		}
	}

	event.OrderReference = strings.TrimSpace(event.OrderReference)
	event.PaymentStatus = strings.ToUpper(strings.TrimSpace(event.PaymentStatus))

	if event.OrderReference == "" {
		return Event{}, fmt.Errorf("%w: missing order reference", ErrMalformedPayload)
	}
	return event, nil
}
