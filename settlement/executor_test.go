package settlement

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/app/mocks"
	"github.com/anish-ck/oruva-settlement/eth"
	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/store"
)

func init() {
	log.SetOutput(io.Discard)
}

const testWallet = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"

type fakeLocker struct {
	mu     sync.Mutex
	held   map[string]bool
	locks  int
	unlock int
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) XLock(resourceId string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[resourceId] {
		return "", app.ErrAlreadyLocked
	}
	l.held[resourceId] = true
	l.locks++
	return resourceId, nil
}

func (l *fakeLocker) Unlock(lockId string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, lockId)
	l.unlock++
	return nil
}

func newPendingOrder(t *testing.T, orders *store.MemoryOrderStore, amount int64) *models.Order {
	order, err := orders.Create(context.Background(), testWallet, decimal.NewFromInt(amount), "", models.Customer{})
	require.NoError(t, err)
	return order
}

func mintSucceeds(txHash string, balance int64) func(context.Context, string, decimal.Decimal, eth.SignedHook) (eth.MintReceipt, error) {
	return func(_ context.Context, _ string, _ decimal.Decimal, onSigned eth.SignedHook) (eth.MintReceipt, error) {
		if err := onSigned(txHash); err != nil {
			return eth.MintReceipt{}, &eth.ChainUnavailableError{Err: err}
		}
		return eth.MintReceipt{TransactionHash: txHash, BlockNumber: 12, NewBalance: decimal.NewFromInt(balance)}, nil
	}
}

func TestSettle(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy Path", func(t *testing.T) {
		orders := store.NewMemoryOrderStore()
		gateway := eth.NewMockChainGateway(t)
		locker := newFakeLocker()
		x := NewExecutor(orders, gateway, locker)
		created := newPendingOrder(t, orders, 500)

		gateway.EXPECT().Mint(mock.Anything, testWallet, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(500))
		}), mock.Anything).RunAndReturn(mintSucceeds("0xabc", 500)).Once()

		order, err := x.Settle(ctx, created.OrderID, decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, order.Status)
		assert.Equal(t, "500", order.MintResult.AmountMinted.String())
		assert.Equal(t, "0xabc", order.MintResult.TransactionHash)
		assert.Equal(t, uint64(12), order.MintResult.BlockNumber)
		assert.Equal(t, "0xabc", order.SubmittedTxHash)
		assert.Equal(t, 1, locker.locks)
		assert.Equal(t, 1, locker.unlock)
	})

	t.Run("Minted Amount Is The Paid Amount", func(t *testing.T) {
		orders := store.NewMemoryOrderStore()
		gateway := eth.NewMockChainGateway(t)
		x := NewExecutor(orders, gateway, newFakeLocker())
		created := newPendingOrder(t, orders, 500)

		gateway.EXPECT().Mint(mock.Anything, testWallet, mock.Anything, mock.Anything).RunAndReturn(mintSucceeds("0xabc", 450)).Once()

		order, err := x.Settle(ctx, created.OrderID, decimal.RequireFromString("450.50"))

		require.NoError(t, err)
		assert.Equal(t, "450.5", order.MintResult.AmountMinted.String())
	})

	t.Run("Caller Cancelled After Signing", func(t *testing.T) {
		orders := store.NewMemoryOrderStore()
		gateway := eth.NewMockChainGateway(t)
		x := NewExecutor(orders, gateway, newFakeLocker())
		created := newPendingOrder(t, orders, 500)

		callerCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		gateway.EXPECT().Mint(mock.Anything, testWallet, mock.Anything, mock.Anything).
			RunAndReturn(func(ctx context.Context, wallet string, amount decimal.Decimal, onSigned eth.SignedHook) (eth.MintReceipt, error) {
				require.NoError(t, onSigned("0xabc"))
				cancel()
				assert.NoError(t, ctx.Err())
				return eth.MintReceipt{TransactionHash: "0xabc", BlockNumber: 12, NewBalance: decimal.NewFromInt(500)}, nil
			}).Once()

		order, err := x.Settle(callerCtx, created.OrderID, decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Error(t, callerCtx.Err())
		assert.Equal(t, models.OrderStatusCompleted, order.Status)
		assert.Equal(t, "0xabc", order.MintResult.TransactionHash)
	})

	t.Run("Idempotent After Completion", func(t *testing.T) {
		orders := store.NewMemoryOrderStore()
		gateway := eth.NewMockChainGateway(t)
		x := NewExecutor(orders, gateway, newFakeLocker())
		created := newPendingOrder(t, orders, 500)

		gateway.EXPECT().Mint(mock.Anything, mock.Anything, mock.Anything, mock.Anything).RunAndReturn(mintSucceeds("0xabc", 500)).Once()

		first, err := x.Settle(ctx, created.OrderID, decimal.NewFromInt(500))
		require.NoError(t, err)

		second, err := x.Settle(ctx, created.OrderID, decimal.NewFromInt(900))
		require.NoError(t, err)

		assert.Equal(t, first.MintResult, second.MintResult)
		assert.Equal(t, "500", second.MintResult.AmountMinted.String())
	})

	t.Run("Unknown Order", func(t *testing.T) {
		x := NewExecutor(store.NewMemoryOrderStore(), eth.NewMockChainGateway(t), newFakeLocker())

		_, err := x.Settle(ctx, "missing", decimal.NewFromInt(1))

		assert.ErrorIs(t, err, ErrUnknownOrder)
	})

	t.Run("Non Positive Amount", func(t *testing.T) {
		x := NewExecutor(store.NewMemoryOrderStore(), eth.NewMockChainGateway(t), newFakeLocker())

		_, err := x.Settle(ctx, "any", decimal.Zero)

		assert.ErrorIs(t, err, store.ErrInvalidAmount)
	})

	t.Run("Reverted Mint Fails Permanently", func(t *testing.T) {
		orders := store.NewMemoryOrderStore()
		gateway := eth.NewMockChainGateway(t)
		x := NewExecutor(orders, gateway, newFakeLocker())
		created := newPendingOrder(t, orders, 500)

		gateway.EXPECT().Mint(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(eth.MintReceipt{}, &eth.ChainCallRevertedError{Reason: "caller is not a minter"}).Once()

		order, err := x.Settle(ctx, created.OrderID, decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusMintFailed, order.Status)
		assert.Equal(t, models.FailureKindPermanent, order.FailureKind)
		assert.Contains(t, order.FailureReason, "caller is not a minter")
		assert.Nil(t, order.MintResult)
	})

	t.Run("Unavailable Chain Fails Retryable And Is Not Retried", func(t *testing.T) {
		orders := store.NewMemoryOrderStore()
		gateway := eth.NewMockChainGateway(t)
		x := NewExecutor(orders, gateway, newFakeLocker())
		created := newPendingOrder(t, orders, 500)

		gateway.EXPECT().Mint(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(eth.MintReceipt{}, &eth.ChainUnavailableError{Err: errors.New("dial tcp: connection refused")}).Once()

		order, err := x.Settle(ctx, created.OrderID, decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusMintFailed, order.Status)
		assert.Equal(t, models.FailureKindRetryable, order.FailureKind)

		order, err = x.Settle(ctx, created.OrderID, decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusMintFailed, order.Status)
	})

	t.Run("Lock Held Elsewhere", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		x := NewExecutor(store.NewMemoryOrderStore(), eth.NewMockChainGateway(t), mockDB)

		mockDB.EXPECT().XLock("orders/o-1").Return("", app.ErrAlreadyLocked)

		_, err := x.Settle(ctx, "o-1", decimal.NewFromInt(1))

		assert.ErrorIs(t, err, ErrSettlementInProgress)
	})

	t.Run("Lock Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		x := NewExecutor(store.NewMemoryOrderStore(), eth.NewMockChainGateway(t), mockDB)

		mockDB.EXPECT().XLock("orders/o-1").Return("", errors.New("no primary"))

		_, err := x.Settle(ctx, "o-1", decimal.NewFromInt(1))

		assert.ErrorContains(t, err, "no primary")
	})

	t.Run("Unlocks Through Database", func(t *testing.T) {
		orders := store.NewMemoryOrderStore()
		mockDB := mocks.NewMockDatabase(t)
		gateway := eth.NewMockChainGateway(t)
		x := NewExecutor(orders, gateway, mockDB)
		created := newPendingOrder(t, orders, 5)

		mockDB.EXPECT().XLock("orders/"+created.OrderID).Return("lock-1", nil).Once()
		mockDB.EXPECT().Unlock("lock-1").Return(nil).Once()
		gateway.EXPECT().Mint(mock.Anything, mock.Anything, mock.Anything, mock.Anything).RunAndReturn(mintSucceeds("0x1", 5)).Once()

		_, err := x.Settle(ctx, created.OrderID, decimal.NewFromInt(5))

		assert.NoError(t, err)
	})
}

// failingSubmissionStore rejects RecordSubmission so the mint is aborted before broadcast.
type failingSubmissionStore struct {
	*store.MemoryOrderStore
	err error
}

func (s *failingSubmissionStore) RecordSubmission(ctx context.Context, orderID string, txHash string) error {
	return s.err
}

func TestSettleSubmissionNotRecorded(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemoryOrderStore()
	orders := &failingSubmissionStore{MemoryOrderStore: memory, err: errors.New("write concern timeout")}
	gateway := eth.NewMockChainGateway(t)
	x := NewExecutor(orders, gateway, newFakeLocker())
	created := newPendingOrder(t, memory, 500)

	gateway.EXPECT().Mint(mock.Anything, mock.Anything, mock.Anything, mock.Anything).RunAndReturn(mintSucceeds("0xabc", 500)).Once()

	_, err := x.Settle(ctx, created.OrderID, decimal.NewFromInt(500))

	assert.ErrorContains(t, err, "write concern timeout")
	order, _ := memory.Get(ctx, created.OrderID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Empty(t, order.SubmittedTxHash)
}

func TestSettleRecovery(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Executor, *store.MemoryOrderStore, *eth.MockChainGateway, string) {
		orders := store.NewMemoryOrderStore()
		gateway := eth.NewMockChainGateway(t)
		created := newPendingOrder(t, orders, 500)
		require.NoError(t, orders.RecordSubmission(ctx, created.OrderID, "0xprev"))
		return NewExecutor(orders, gateway, newFakeLocker()), orders, gateway, created.OrderID
	}

	t.Run("Previous Submission Landed", func(t *testing.T) {
		x, _, gateway, orderID := setup(t)

		gateway.EXPECT().ConfirmMint(mock.Anything, "0xprev", testWallet).
			Return(eth.MintReceipt{TransactionHash: "0xprev", BlockNumber: 3, NewBalance: decimal.NewFromInt(500)}, nil).Once()

		order, err := x.Settle(ctx, orderID, decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, order.Status)
		assert.Equal(t, "0xprev", order.MintResult.TransactionHash)
	})

	t.Run("Previous Submission Reverted", func(t *testing.T) {
		x, _, gateway, orderID := setup(t)

		gateway.EXPECT().ConfirmMint(mock.Anything, "0xprev", testWallet).
			Return(eth.MintReceipt{}, &eth.ChainCallRevertedError{Reason: "receipt status 0", TxHash: "0xprev"}).Once()

		order, err := x.Settle(ctx, orderID, decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusMintFailed, order.Status)
		assert.Equal(t, models.FailureKindPermanent, order.FailureKind)
	})

	t.Run("Previous Submission Unknown To Chain", func(t *testing.T) {
		x, _, gateway, orderID := setup(t)

		gateway.EXPECT().ConfirmMint(mock.Anything, "0xprev", testWallet).Return(eth.MintReceipt{}, eth.ErrTxNotFound).Once()

		order, err := x.Settle(ctx, orderID, decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusMintFailed, order.Status)
		assert.Equal(t, models.FailureKindRetryable, order.FailureKind)
		assert.Contains(t, order.FailureReason, "previous submission unconfirmed")
	})

	t.Run("Chain Unreachable Leaves Order Pending", func(t *testing.T) {
		x, orders, gateway, orderID := setup(t)

		gateway.EXPECT().ConfirmMint(mock.Anything, "0xprev", testWallet).
			Return(eth.MintReceipt{}, &eth.ChainUnavailableError{Err: errors.New("timeout")}).Once()

		_, err := x.Settle(ctx, orderID, decimal.NewFromInt(500))

		assert.ErrorIs(t, err, eth.ErrChainUnavailable)
		order, _ := orders.Get(ctx, orderID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
	})
}

func TestSettleConcurrent(t *testing.T) {
	ctx := context.Background()
	orders := store.NewMemoryOrderStore()
	gateway := eth.NewMockChainGateway(t)
	x := NewExecutor(orders, gateway, newFakeLocker())
	created := newPendingOrder(t, orders, 500)

	gateway.EXPECT().Mint(mock.Anything, mock.Anything, mock.Anything, mock.Anything).RunAndReturn(mintSucceeds("0xabc", 500)).Once()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := x.Settle(ctx, created.OrderID, decimal.NewFromInt(500))
			if err != nil {
				assert.ErrorIs(t, err, ErrSettlementInProgress)
			}
		}()
	}
	wg.Wait()

	order, _ := orders.Get(ctx, created.OrderID)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}
