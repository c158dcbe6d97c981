package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/eth"
	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/store"
)

var (
	ErrUnknownOrder         = errors.New("unknown order")
	ErrSettlementInProgress = errors.New("settlement already in progress")
)

// Locker is the part of app.Database used to serialize settlements per order.
type Locker interface {
	XLock(resourceId string) (string, error)
	Unlock(lockId string) error
}

// Settler is implemented by Executor; webhook, reconciliation and the API depend on it.
type Settler interface {
	Settle(ctx context.Context, orderID string, paidAmount decimal.Decimal) (*models.Order, error)
}

// Executor is the single path from a confirmed payment to a mint.
type Executor struct {
	orders  store.OrderStore
	gateway eth.ChainGateway
	locker  Locker
}

var _ Settler = &Executor{}

func NewExecutor(orders store.OrderStore, gateway eth.ChainGateway, locker Locker) *Executor {
	return &Executor{
		orders:  orders,
		gateway: gateway,
		locker:  locker,
	}
}

func lockResource(orderID string) string {
	return "orders/" + orderID
}

// Settle mints paidAmount to the order's wallet at most once and records the outcome.
// A terminal order is returned as stored without touching the chain.
func (x *Executor) Settle(ctx context.Context, orderID string, paidAmount decimal.Decimal) (*models.Order, error) {
	if !paidAmount.IsPositive() {
		return nil, store.ErrInvalidAmount
	}

	// a mint in flight must reach a recorded outcome; the gateway bounds chain calls with its own timeouts
	ctx = context.WithoutCancel(ctx)

	lockId, err := x.locker.XLock(lockResource(orderID))
	if err != nil {
		if errors.Is(err, app.ErrAlreadyLocked) {
			return nil, ErrSettlementInProgress
		}
		return nil, fmt.Errorf("error locking order: %w", err)
	}
	defer func() {
		if err := x.locker.Unlock(lockId); err != nil {
			log.WithField("order_id", orderID).Error("[SETTLEMENT] Error unlocking order: ", err)
		}
	}()

	order, err := x.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnknownOrder
		}
		return nil, err
	}

	if order.Status.IsTerminal() {
		log.WithField("order_id", orderID).Debug("[SETTLEMENT] Order already ", order.Status)
		return order, nil
	}

	if order.SubmittedTxHash != "" {
		return x.recoverSubmission(ctx, order, paidAmount)
	}
	return x.mint(ctx, order, paidAmount)
}

func (x *Executor) mint(ctx context.Context, order *models.Order, paidAmount decimal.Decimal) (*models.Order, error) {
	logger := log.WithFields(log.Fields{
		"order_id": order.OrderID,
		"wallet":   order.WalletAddress,
		"amount":   paidAmount.String(),
	})
	logger.Info("[SETTLEMENT] Minting")

	var hookErr error
	onSigned := func(txHash string) error {
		hookErr = x.orders.RecordSubmission(ctx, order.OrderID, txHash)
		return hookErr
	}

	receipt, err := x.gateway.Mint(ctx, order.WalletAddress, paidAmount, onSigned)
	if hookErr != nil {
		// nothing was broadcast, the order stays PENDING for the next attempt
		if errors.Is(hookErr, store.ErrInvalidTransition) {
			return x.reload(ctx, order.OrderID)
		}
		return nil, fmt.Errorf("error recording submission: %w", hookErr)
	}
	if err != nil {
		return x.fail(ctx, order, paidAmount, err)
	}
	return x.complete(ctx, order, paidAmount, receipt)
}

// recoverSubmission settles an order whose mint was signed by an earlier attempt that never recorded an outcome.
func (x *Executor) recoverSubmission(ctx context.Context, order *models.Order, paidAmount decimal.Decimal) (*models.Order, error) {
	logger := log.WithFields(log.Fields{
		"order_id": order.OrderID,
		"tx_hash":  order.SubmittedTxHash,
	})
	logger.Warn("[SETTLEMENT] Order has an unresolved submission, confirming")

	receipt, err := x.gateway.ConfirmMint(ctx, order.SubmittedTxHash, order.WalletAddress)
	switch {
	case err == nil:
		return x.complete(ctx, order, paidAmount, receipt)
	case errors.Is(err, eth.ErrChainCallReverted):
		return x.fail(ctx, order, paidAmount, err)
	case errors.Is(err, eth.ErrTxNotFound):
		return x.fail(ctx, order, paidAmount, &eth.ChainUnavailableError{
			Err:    errors.New("previous submission unconfirmed"),
			TxHash: order.SubmittedTxHash,
		})
	default:
		// the outcome is unknown so the order stays PENDING
		return nil, err
	}
}

func (x *Executor) complete(ctx context.Context, order *models.Order, paidAmount decimal.Decimal, receipt eth.MintReceipt) (*models.Order, error) {
	result := models.MintResult{
		TransactionHash: receipt.TransactionHash,
		BlockNumber:     receipt.BlockNumber,
		AmountMinted:    paidAmount,
		NewBalance:      receipt.NewBalance,
	}

	completed, err := x.orders.MarkCompleted(ctx, order.OrderID, result)
	if err != nil {
		if errors.Is(err, store.ErrInvalidTransition) {
			return x.reload(ctx, order.OrderID)
		}
		log.WithFields(log.Fields{
			"order_id": order.OrderID,
			"tx_hash":  receipt.TransactionHash,
		}).Error("[SETTLEMENT] Minted but could not record completion: ", err)
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id": order.OrderID,
		"tx_hash":  receipt.TransactionHash,
		"block":    receipt.BlockNumber,
	}).Info("[SETTLEMENT] Order completed")
	return completed, nil
}

func failureKind(err error) models.FailureKind {
	if errors.Is(err, eth.ErrChainCallReverted) {
		return models.FailureKindPermanent
	}
	return models.FailureKindRetryable
}

func (x *Executor) fail(ctx context.Context, order *models.Order, paidAmount decimal.Decimal, cause error) (*models.Order, error) {
	kind := failureKind(cause)

	log.WithFields(log.Fields{
		"order_id":     order.OrderID,
		"wallet":       order.WalletAddress,
		"amount":       paidAmount.String(),
		"tx_hash":      eth.TxHashOf(cause),
		"failure_kind": kind,
	}).Error("[SETTLEMENT] Mint failed: ", cause)

	failed, err := x.orders.MarkFailed(ctx, order.OrderID, cause.Error(), kind)
	if err != nil {
		if errors.Is(err, store.ErrInvalidTransition) {
			return x.reload(ctx, order.OrderID)
		}
		return nil, err
	}
	return failed, nil
}

func (x *Executor) reload(ctx context.Context, orderID string) (*models.Order, error) {
	log.WithField("order_id", orderID).Debug("[SETTLEMENT] Order changed concurrently, reloading")
	return x.orders.Get(ctx, orderID)
}
