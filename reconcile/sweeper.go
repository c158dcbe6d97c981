package reconcile

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/store"
)

const (
	SweeperName = "RECONCILER"
)

type Reconciler interface {
	Reconcile(ctx context.Context, orderID string) (*models.Order, error)
}

// SweeperRunner reconciles PENDING orders that have waited longer than staleAfter.
type SweeperRunner struct {
	orders     store.OrderStore
	reconciler Reconciler
	staleAfter time.Duration
	batchSize  int64

	mu        sync.Mutex
	processed int64
	failed    int64
}

func (x *SweeperRunner) Run() {
	x.SyncOrders(context.Background())
}

func (x *SweeperRunner) Resume(lastHealth models.ServiceHealth) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.processed = lastHealth.Processed
	x.failed = lastHealth.Failed
}

func (x *SweeperRunner) Status() models.RunnerStatus {
	x.mu.Lock()
	defer x.mu.Unlock()
	return models.RunnerStatus{
		Processed: x.processed,
		Failed:    x.failed,
	}
}

func (x *SweeperRunner) SyncOrders(ctx context.Context) bool {
	cutoff := time.Now().UTC().Add(-x.staleAfter)
	pending, err := x.orders.ListPending(ctx, cutoff, x.batchSize)
	if err != nil {
		log.Error("[RECONCILER] Error fetching pending orders: ", err)
		return false
	}
	log.Debug("[RECONCILER] Found stale pending orders: ", len(pending))

	success := true
	for _, order := range pending {
		reconciled, err := x.reconciler.Reconcile(ctx, order.OrderID)
		if err != nil {
			log.WithField("order_id", order.OrderID).Warn("[RECONCILER] Error reconciling order: ", err)
			x.count(true)
			success = false
			x.markReconciled(ctx, order.OrderID)
			continue
		}
		if reconciled.Status != models.OrderStatusPending {
			log.WithField("order_id", order.OrderID).Info("[RECONCILER] Order reconciled to ", reconciled.Status)
			x.count(reconciled.Status == models.OrderStatusMintFailed)
			continue
		}
		x.markReconciled(ctx, order.OrderID)
	}
	return success
}

// markReconciled moves a still pending order behind the others in the next sweep.
func (x *SweeperRunner) markReconciled(ctx context.Context, orderID string) {
	err := x.orders.MarkReconciled(ctx, orderID, time.Now().UTC())
	if err != nil && !errors.Is(err, store.ErrInvalidTransition) {
		log.WithField("order_id", orderID).Warn("[RECONCILER] Error recording reconcile attempt: ", err)
	}
}

func (x *SweeperRunner) count(failed bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if failed {
		x.failed++
	} else {
		x.processed++
	}
}

func NewSweeperRunner(orders store.OrderStore, reconciler Reconciler) *SweeperRunner {
	return &SweeperRunner{
		orders:     orders,
		reconciler: reconciler,
		staleAfter: time.Duration(app.Config.Reconciler.StaleAfterSecs) * time.Second,
		batchSize:  app.Config.Settlement.JobBatchSize,
	}
}

func NewSweeper(wg *sync.WaitGroup, orders store.OrderStore, reconciler Reconciler) app.Service {
	if !app.Config.Reconciler.Enabled {
		log.Debug("[RECONCILER] Reconciler disabled")
		return app.NewEmptyService(wg)
	}

	log.Debug("[RECONCILER] Initializing reconciler")
	runner := NewSweeperRunner(orders, reconciler)

	log.Info("[RECONCILER] Initialized reconciler")
	return app.NewRunnerService(
		SweeperName,
		runner,
		wg,
		time.Duration(app.Config.Reconciler.IntervalMillis)*time.Millisecond,
	)
}
