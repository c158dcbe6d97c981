package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/anish-ck/oruva-settlement/models"
)

const testWallet = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func init() {
	log.SetOutput(io.Discard)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Pending Order", func(t *testing.T) {
		orders := NewMemoryOrderStore()

		order, err := orders.Create(ctx, testWallet, decimal.NewFromInt(100), "oinr_ref", models.Customer{Email: "a@b.c"})

		assert.NoError(t, err)
		assert.NotEmpty(t, order.OrderID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, strings.ToLower(testWallet), order.WalletAddress)
		assert.Equal(t, "oinr_ref", order.PaymentReference)
		assert.Equal(t, "100", order.RequestedAmount.String())
		assert.Nil(t, order.MintResult)
	})

	t.Run("Reference Defaults To Order Id", func(t *testing.T) {
		orders := NewMemoryOrderStore()

		order, err := orders.Create(ctx, testWallet, decimal.NewFromInt(1), "", models.Customer{})

		assert.NoError(t, err)
		assert.Equal(t, order.OrderID, order.PaymentReference)
	})

	t.Run("Rejects Non Positive Amount", func(t *testing.T) {
		orders := NewMemoryOrderStore()

		_, err := orders.Create(ctx, testWallet, decimal.Zero, "", models.Customer{})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = orders.Create(ctx, testWallet, decimal.NewFromInt(-5), "", models.Customer{})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Rejects Invalid Wallet", func(t *testing.T) {
		orders := NewMemoryOrderStore()

		_, err := orders.Create(ctx, "0x1234", decimal.NewFromInt(1), "", models.Customer{})
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("Rejects Duplicate Reference", func(t *testing.T) {
		orders := NewMemoryOrderStore()

		_, err := orders.Create(ctx, testWallet, decimal.NewFromInt(1), "dup", models.Customer{})
		assert.NoError(t, err)
		_, err = orders.Create(ctx, testWallet, decimal.NewFromInt(2), "dup", models.Customer{})
		assert.ErrorIs(t, err, ErrDuplicateOrder)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()
	created, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(10), "ref-1", models.Customer{})

	order, err := orders.Get(ctx, created.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, created.OrderID, order.OrderID)

	order, err = orders.GetByPaymentReference(ctx, "ref-1")
	assert.NoError(t, err)
	assert.Equal(t, created.OrderID, order.OrderID)

	_, err = orders.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = orders.GetByPaymentReference(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveReference(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()
	byRef, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(10), "oinr_abc", models.Customer{})
	byID, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(10), "", models.Customer{})

	order, err := ResolveReference(ctx, orders, "oinr_abc")
	assert.NoError(t, err)
	assert.Equal(t, byRef.OrderID, order.OrderID)

	order, err = ResolveReference(ctx, orders, byID.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, byID.OrderID, order.OrderID)

	_, err = ResolveReference(ctx, orders, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()
	result := models.MintResult{
		TransactionHash: "0xabc",
		BlockNumber:     42,
		AmountMinted:    decimal.NewFromInt(100),
		NewBalance:      decimal.NewFromInt(250),
	}

	t.Run("Complete", func(t *testing.T) {
		orders := NewMemoryOrderStore()
		created, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(100), "", models.Customer{})

		order, err := orders.MarkCompleted(ctx, created.OrderID, result)

		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, order.Status)
		assert.Equal(t, result, *order.MintResult)
		assert.NotNil(t, order.CompletedAt)
	})

	t.Run("Fail", func(t *testing.T) {
		orders := NewMemoryOrderStore()
		created, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(100), "", models.Customer{})

		order, err := orders.MarkFailed(ctx, created.OrderID, "execution reverted", models.FailureKindPermanent)

		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusMintFailed, order.Status)
		assert.Equal(t, "execution reverted", order.FailureReason)
		assert.Equal(t, models.FailureKindPermanent, order.FailureKind)
		assert.NotNil(t, order.FailedAt)
		assert.Nil(t, order.MintResult)
	})

	t.Run("Terminal Orders Never Change", func(t *testing.T) {
		orders := NewMemoryOrderStore()
		created, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(100), "", models.Customer{})
		_, err := orders.MarkCompleted(ctx, created.OrderID, result)
		assert.NoError(t, err)

		_, err = orders.MarkCompleted(ctx, created.OrderID, result)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = orders.MarkFailed(ctx, created.OrderID, "late", models.FailureKindRetryable)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		err = orders.RecordSubmission(ctx, created.OrderID, "0xdef")
		assert.ErrorIs(t, err, ErrInvalidTransition)

		order, _ := orders.Get(ctx, created.OrderID)
		assert.Equal(t, models.OrderStatusCompleted, order.Status)
		assert.Equal(t, "0xabc", order.MintResult.TransactionHash)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		orders := NewMemoryOrderStore()

		_, err := orders.MarkCompleted(ctx, "missing", result)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Submission And Checkout Stay Pending", func(t *testing.T) {
		orders := NewMemoryOrderStore()
		created, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(100), "", models.Customer{})

		assert.NoError(t, orders.SetCheckoutURL(ctx, created.OrderID, "https://pay/checkout"))
		assert.NoError(t, orders.RecordSubmission(ctx, created.OrderID, "0xdef"))

		order, _ := orders.Get(ctx, created.OrderID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, "https://pay/checkout", order.CheckoutURL)
		assert.Equal(t, "0xdef", order.SubmittedTxHash)
	})

	t.Run("Long Failure Reason Is Truncated", func(t *testing.T) {
		orders := NewMemoryOrderStore()
		created, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(100), "", models.Customer{})

		order, err := orders.MarkFailed(ctx, created.OrderID, strings.Repeat("x", 5000), models.FailureKindRetryable)

		assert.NoError(t, err)
		assert.Len(t, order.FailureReason, maxFailureReasonLength)
	})

	t.Run("Concurrent Terminal Writes Have One Winner", func(t *testing.T) {
		orders := NewMemoryOrderStore()
		created, _ := orders.Create(ctx, testWallet, decimal.NewFromInt(100), "", models.Customer{})

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var err error
				if i%2 == 0 {
					_, err = orders.MarkCompleted(ctx, created.OrderID, result)
				} else {
					_, err = orders.MarkFailed(ctx, created.OrderID, "boom", models.FailureKindRetryable)
				}
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				} else {
					assert.True(t, errors.Is(err, ErrInvalidTransition))
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
	})
}

func TestLists(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()
	now := time.Now().UTC()
	failedEarly := now.Add(-2 * time.Hour)
	failedLate := now.Add(-1 * time.Hour)
	wallet := strings.ToLower(testWallet)

	orders.Put(models.Order{OrderID: "a", WalletAddress: wallet, Status: models.OrderStatusPending, CreatedAt: now.Add(-3 * time.Hour)})
	orders.Put(models.Order{OrderID: "b", WalletAddress: wallet, Status: models.OrderStatusPending, CreatedAt: now.Add(-10 * time.Minute)})
	orders.Put(models.Order{OrderID: "c", WalletAddress: wallet, Status: models.OrderStatusMintFailed, CreatedAt: now.Add(-4 * time.Hour), FailedAt: &failedEarly})
	orders.Put(models.Order{OrderID: "d", WalletAddress: "0x0000000000000000000000000000000000000001", Status: models.OrderStatusMintFailed, CreatedAt: now, FailedAt: &failedLate})

	byWallet, err := orders.ListByWallet(ctx, testWallet)
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, orderIDs(byWallet))

	_, err = orders.ListByWallet(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	pending, err := orders.ListPending(ctx, now.Add(-5*time.Minute), 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, orderIDs(pending))

	pending, err = orders.ListPending(ctx, now.Add(-1*time.Hour), 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a"}, orderIDs(pending))

	failed, err := orders.ListFailed(ctx, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"d", "c"}, orderIDs(failed))

	failed, err = orders.ListFailed(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"d"}, orderIDs(failed))
}

func orderIDs(orders []models.Order) []string {
	ids := []string{}
	for _, order := range orders {
		ids = append(ids, order.OrderID)
	}
	return ids
}

func TestMemoryJobQueue(t *testing.T) {
	ctx := context.Background()
	jobs := NewMemoryJobQueue()

	queued, err := jobs.Enqueue(ctx, models.SettlementJob{EventID: "evt-1", OrderReference: "ref"})
	assert.NoError(t, err)
	assert.True(t, queued)

	queued, err = jobs.Enqueue(ctx, models.SettlementJob{EventID: "evt-1", OrderReference: "ref"})
	assert.NoError(t, err)
	assert.False(t, queued)

	found, err := jobs.FindPending(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	err = jobs.MarkJob(ctx, "evt-1", JobUpdate{Status: models.JobStatusDone, Attempts: 1, OrderID: "order-1"})
	assert.NoError(t, err)

	job, ok := jobs.Job("evt-1")
	assert.True(t, ok)
	assert.Equal(t, models.JobStatusDone, job.Status)
	assert.Equal(t, "order-1", job.OrderID)

	found, _ = jobs.FindPending(ctx, 10)
	assert.Empty(t, found)

	err = jobs.MarkJob(ctx, "evt-1", JobUpdate{Status: models.JobStatusFailed})
	assert.NoError(t, err)
	job, _ = jobs.Job("evt-1")
	assert.Equal(t, models.JobStatusDone, job.Status)
}

func TestPendingRotation(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()
	now := time.Now().UTC()
	wallet := strings.ToLower(testWallet)

	orders.Put(models.Order{OrderID: "old", WalletAddress: wallet, Status: models.OrderStatusPending, CreatedAt: now.Add(-3 * time.Hour)})
	orders.Put(models.Order{OrderID: "older", WalletAddress: wallet, Status: models.OrderStatusPending, CreatedAt: now.Add(-4 * time.Hour)})
	orders.Put(models.Order{OrderID: "new", WalletAddress: wallet, Status: models.OrderStatusPending, CreatedAt: now.Add(-1 * time.Hour)})
	orders.Put(models.Order{OrderID: "done", WalletAddress: wallet, Status: models.OrderStatusCompleted, CreatedAt: now.Add(-5 * time.Hour)})

	pending, err := orders.ListPending(ctx, now, 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"older", "old"}, orderIDs(pending))

	assert.NoError(t, orders.MarkReconciled(ctx, "older", now.Add(-2*time.Minute)))
	assert.NoError(t, orders.MarkReconciled(ctx, "old", now.Add(-1*time.Minute)))

	pending, err = orders.ListPending(ctx, now, 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"new", "older"}, orderIDs(pending))

	order, err := orders.Get(ctx, "older")
	assert.NoError(t, err)
	if assert.NotNil(t, order.LastReconciledAt) {
		assert.True(t, order.LastReconciledAt.Equal(now.Add(-2*time.Minute)))
	}

	assert.ErrorIs(t, orders.MarkReconciled(ctx, "done", now), ErrInvalidTransition)
	assert.ErrorIs(t, orders.MarkReconciled(ctx, "missing", now), ErrNotFound)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("  short \n", 10))
	assert.Equal(t, "abc", truncate("abcdef", 3))

	// "₹" is three bytes; a cut inside it drops the whole rune
	assert.Equal(t, "a", truncate("a₹b", 2))
	assert.Equal(t, "a₹", truncate("a₹b", 4))

	reason := strings.Repeat("é", maxFailureReasonLength)
	cut := truncate(reason, maxFailureReasonLength)
	assert.True(t, utf8.ValidString(cut))
	assert.LessOrEqual(t, len(cut), maxFailureReasonLength)

	assert.Equal(t, "ab", truncate("a\xffb", 10))
}
