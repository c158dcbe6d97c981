package store

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anish-ck/oruva-settlement/common"
	"github.com/anish-ck/oruva-settlement/models"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidAddress    = errors.New("invalid wallet address")
	ErrInvalidTransition = errors.New("invalid order transition")
	ErrDuplicateOrder    = errors.New("duplicate payment reference")
)

// OrderStore is the only writer of order status, mint results and failures.
// Every transition out of PENDING is a conditional write so at most one succeeds.
type OrderStore interface {
	Create(ctx context.Context, wallet string, amount decimal.Decimal, paymentReference string, customer models.Customer) (*models.Order, error)
	Get(ctx context.Context, orderID string) (*models.Order, error)
	GetByPaymentReference(ctx context.Context, paymentReference string) (*models.Order, error)
	SetCheckoutURL(ctx context.Context, orderID string, checkoutURL string) error
	RecordSubmission(ctx context.Context, orderID string, txHash string) error
	MarkCompleted(ctx context.Context, orderID string, result models.MintResult) (*models.Order, error)
	MarkFailed(ctx context.Context, orderID string, reason string, kind models.FailureKind) (*models.Order, error)
	ListByWallet(ctx context.Context, wallet string) ([]models.Order, error)
	MarkReconciled(ctx context.Context, orderID string, at time.Time) error
	// ListPending returns PENDING orders created before olderThan, least recently reconciled first.
	ListPending(ctx context.Context, olderThan time.Time, limit int64) ([]models.Order, error)
	ListFailed(ctx context.Context, limit int64) ([]models.Order, error)
}

// newOrder validates input and builds a PENDING order.
func newOrder(wallet string, amount decimal.Decimal, paymentReference string, customer models.Customer) (*models.Order, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	normalized, ok := common.NormalizeAddress(wallet)
	if !ok {
		return nil, ErrInvalidAddress
	}

	orderID := uuid.NewString()
	if paymentReference == "" {
		paymentReference = orderID
	}

	now := time.Now().UTC()
	return &models.Order{
		OrderID:          orderID,
		WalletAddress:    normalized,
		RequestedAmount:  amount,
		Status:           models.OrderStatusPending,
		PaymentReference: paymentReference,
		Customer:         customer,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ResolveReference finds the order a gateway reference points at, by payment reference first and order id second.
func ResolveReference(ctx context.Context, orders OrderStore, reference string) (*models.Order, error) {
	order, err := orders.GetByPaymentReference(ctx, reference)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return order, err
	}
	return orders.Get(ctx, reference)
}

func normalizeWallet(wallet string) (string, error) {
	normalized, ok := common.NormalizeAddress(wallet)
	if !ok {
		return "", ErrInvalidAddress
	}
	return normalized, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(strings.TrimSpace(s), "")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

const maxFailureReasonLength = 1024
