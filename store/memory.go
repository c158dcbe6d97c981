package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anish-ck/oruva-settlement/models"
)

// MemoryOrderStore is a mutex guarded store used by tests. It is not selectable from configuration.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

var _ OrderStore = &MemoryOrderStore{}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: map[string]*models.Order{}}
}

func cloneOrder(order *models.Order) *models.Order {
	c := *order
	if order.MintResult != nil {
		result := *order.MintResult
		c.MintResult = &result
	}
	if order.LastReconciledAt != nil {
		reconciled := *order.LastReconciledAt
		c.LastReconciledAt = &reconciled
	}
	return &c
}

func (x *MemoryOrderStore) Create(ctx context.Context, wallet string, amount decimal.Decimal, paymentReference string, customer models.Customer) (*models.Order, error) {
	order, err := newOrder(wallet, amount, paymentReference, customer)
	if err != nil {
		return nil, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for _, existing := range x.orders {
		if existing.PaymentReference == order.PaymentReference {
			return nil, ErrDuplicateOrder
		}
	}
	x.orders[order.OrderID] = order
	return cloneOrder(order), nil
}

// Put stores an order as given, for seeding test fixtures.
func (x *MemoryOrderStore) Put(order models.Order) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.orders[order.OrderID] = cloneOrder(&order)
}

func (x *MemoryOrderStore) Get(ctx context.Context, orderID string) (*models.Order, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	order, ok := x.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(order), nil
}

func (x *MemoryOrderStore) GetByPaymentReference(ctx context.Context, paymentReference string) (*models.Order, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, order := range x.orders {
		if order.PaymentReference == paymentReference {
			return cloneOrder(order), nil
		}
	}
	return nil, ErrNotFound
}

func (x *MemoryOrderStore) transition(orderID string, apply func(order *models.Order)) (*models.Order, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	order, ok := x.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	if order.Status.IsTerminal() {
		return nil, ErrInvalidTransition
	}
	apply(order)
	order.UpdatedAt = time.Now().UTC()
	return cloneOrder(order), nil
}

func (x *MemoryOrderStore) SetCheckoutURL(ctx context.Context, orderID string, checkoutURL string) error {
	_, err := x.transition(orderID, func(order *models.Order) {
		order.CheckoutURL = checkoutURL
	})
	return err
}

func (x *MemoryOrderStore) RecordSubmission(ctx context.Context, orderID string, txHash string) error {
	_, err := x.transition(orderID, func(order *models.Order) {
		order.SubmittedTxHash = txHash
	})
	return err
}

func (x *MemoryOrderStore) MarkCompleted(ctx context.Context, orderID string, result models.MintResult) (*models.Order, error) {
	return x.transition(orderID, func(order *models.Order) {
		now := time.Now().UTC()
		order.Status = models.OrderStatusCompleted
		order.MintResult = &result
		order.CompletedAt = &now
	})
}

func (x *MemoryOrderStore) MarkFailed(ctx context.Context, orderID string, reason string, kind models.FailureKind) (*models.Order, error) {
	return x.transition(orderID, func(order *models.Order) {
		now := time.Now().UTC()
		order.Status = models.OrderStatusMintFailed
		order.FailureReason = truncate(reason, maxFailureReasonLength)
		order.FailureKind = kind
		order.FailedAt = &now
	})
}

func (x *MemoryOrderStore) MarkReconciled(ctx context.Context, orderID string, at time.Time) error {
	_, err := x.transition(orderID, func(order *models.Order) {
		reconciled := at.UTC()
		order.LastReconciledAt = &reconciled
	})
	return err
}

func (x *MemoryOrderStore) list(match func(order *models.Order) bool, less func(a, b *models.Order) bool, limit int64) []models.Order {
	x.mu.Lock()
	defer x.mu.Unlock()

	var matched []*models.Order
	for _, order := range x.orders {
		if match(order) {
			matched = append(matched, order)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}

	orders := make([]models.Order, 0, len(matched))
	for _, order := range matched {
		orders = append(orders, *cloneOrder(order))
	}
	return orders
}

func (x *MemoryOrderStore) ListByWallet(ctx context.Context, wallet string) ([]models.Order, error) {
	normalized, err := normalizeWallet(wallet)
	if err != nil {
		return nil, err
	}
	return x.list(
		func(order *models.Order) bool { return order.WalletAddress == normalized },
		func(a, b *models.Order) bool { return a.CreatedAt.After(b.CreatedAt) },
		0,
	), nil
}

func (x *MemoryOrderStore) ListPending(ctx context.Context, olderThan time.Time, limit int64) ([]models.Order, error) {
	return x.list(
		func(order *models.Order) bool {
			return order.Status == models.OrderStatusPending && order.CreatedAt.Before(olderThan)
		},
		reconciledFirst,
		limit,
	), nil
}

func (x *MemoryOrderStore) ListFailed(ctx context.Context, limit int64) ([]models.Order, error) {
	return x.list(
		func(order *models.Order) bool { return order.Status == models.OrderStatusMintFailed },
		func(a, b *models.Order) bool { return failedAt(a).After(failedAt(b)) },
		limit,
	), nil
}

// reconciledFirst orders never reconciled orders first, then by last reconciliation, then by age.
func reconciledFirst(a, b *models.Order) bool {
	switch {
	case a.LastReconciledAt == nil && b.LastReconciledAt != nil:
		return true
	case a.LastReconciledAt != nil && b.LastReconciledAt == nil:
		return false
	case a.LastReconciledAt != nil && !a.LastReconciledAt.Equal(*b.LastReconciledAt):
		return a.LastReconciledAt.Before(*b.LastReconciledAt)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func failedAt(order *models.Order) time.Time {
	if order.FailedAt == nil {
		return time.Time{}
	}
	return *order.FailedAt
}
