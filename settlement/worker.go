package settlement

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
	WorkerName = "SETTLEMENT WORKER"
)

// LockPurger releases locks left behind by crashed holders.
type LockPurger interface {
	PurgeLocks() (int, error)
}

// WorkerRunner drains the settlement job queue. It is the only consumer that calls Settle for webhook events.
type WorkerRunner struct {
	jobs        store.JobQueue
	orders      store.OrderStore
	settler     Settler
	purger      LockPurger
	batchSize   int64
	maxAttempts int

	mu        sync.Mutex
	processed int64
	failed    int64
}

func (x *WorkerRunner) Run() {
	x.purgeLocks()
	x.SyncJobs(context.Background())
}

func (x *WorkerRunner) Resume(lastHealth models.ServiceHealth) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.processed = lastHealth.Processed
	x.failed = lastHealth.Failed
}

func (x *WorkerRunner) Status() models.RunnerStatus {
	x.mu.Lock()
	defer x.mu.Unlock()
	return models.RunnerStatus{
		Processed: x.processed,
		Failed:    x.failed,
	}
}

func (x *WorkerRunner) purgeLocks() {
	if x.purger == nil {
		return
	}
	purged, err := x.purger.PurgeLocks()
	if err != nil {
		log.Error("[SETTLEMENT WORKER] Error purging expired locks: ", err)
		return
	}
	if purged > 0 {
		log.Warn("[SETTLEMENT WORKER] Purged expired locks: ", purged)
	}
}

// SyncJobs handles one batch of queued jobs and reports whether all of them were handled cleanly.
func (x *WorkerRunner) SyncJobs(ctx context.Context) bool {
	jobs, err := x.jobs.FindPending(ctx, x.batchSize)
	if err != nil {
		log.Error("[SETTLEMENT WORKER] Error fetching queued jobs: ", err)
		return false
	}
	log.Debug("[SETTLEMENT WORKER] Found queued jobs: ", len(jobs))

	success := true
	for _, job := range jobs {
		success = x.HandleJob(ctx, job) && success
	}
	return success
}

func (x *WorkerRunner) HandleJob(ctx context.Context, job models.SettlementJob) bool {
	logger := log.WithFields(log.Fields{
		"event_id":  job.EventID,
		"reference": job.OrderReference,
	})
	attempts := job.Attempts + 1

	order, err := store.ResolveReference(ctx, x.orders, job.OrderReference)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn("[SETTLEMENT WORKER] Discarding job for unknown order")
			return x.mark(ctx, job, store.JobUpdate{Status: models.JobStatusDiscarded, Attempts: attempts, LastError: ErrUnknownOrder.Error()})
		}
		return x.retryLater(ctx, job, attempts, err)
	}

	settled, err := x.settler.Settle(ctx, order.OrderID, job.PaidAmount)
	switch {
	case err == nil:
		logger.WithField("order_id", order.OrderID).Info("[SETTLEMENT WORKER] Job settled, order ", settled.Status)
		x.count(settled.Status == models.OrderStatusMintFailed)
		return x.mark(ctx, job, store.JobUpdate{Status: models.JobStatusDone, Attempts: attempts, OrderID: order.OrderID})
	case errors.Is(err, ErrSettlementInProgress):
		logger.Debug("[SETTLEMENT WORKER] Order is being settled elsewhere, leaving job queued")
		return true
	case errors.Is(err, ErrUnknownOrder), errors.Is(err, store.ErrInvalidAmount):
		logger.Warn("[SETTLEMENT WORKER] Discarding job: ", err)
		return x.mark(ctx, job, store.JobUpdate{Status: models.JobStatusDiscarded, Attempts: attempts, OrderID: order.OrderID, LastError: err.Error()})
	default:
		return x.retryLater(ctx, job, attempts, err)
	}
}

func (x *WorkerRunner) retryLater(ctx context.Context, job models.SettlementJob, attempts int, cause error) bool {
	logger := log.WithFields(log.Fields{
		"event_id": job.EventID,
		"attempts": attempts,
	})

	if attempts >= x.maxAttempts {
		logger.Error("[SETTLEMENT WORKER] Giving up on job: ", cause)
		x.count(true)
		x.mark(ctx, job, store.JobUpdate{Status: models.JobStatusFailed, Attempts: attempts, LastError: cause.Error()})
		return false
	}

	logger.Warn("[SETTLEMENT WORKER] Job will be retried: ", cause)
	x.mark(ctx, job, store.JobUpdate{Status: models.JobStatusQueued, Attempts: attempts, LastError: cause.Error()})
	return false
}

func (x *WorkerRunner) mark(ctx context.Context, job models.SettlementJob, update store.JobUpdate) bool {
	if err := x.jobs.MarkJob(ctx, job.EventID, update); err != nil {
		log.WithField("event_id", job.EventID).Error("[SETTLEMENT WORKER] Error updating job: ", err)
		return false
	}
	return true
}

func (x *WorkerRunner) count(failed bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if failed {
		x.failed++
	} else {
		x.processed++
	}
}

func NewWorkerRunner(jobs store.JobQueue, orders store.OrderStore, settler Settler, purger LockPurger) *WorkerRunner {
	return &WorkerRunner{
		jobs:        jobs,
		orders:      orders,
		settler:     settler,
		purger:      purger,
		batchSize:   app.Config.Settlement.JobBatchSize,
		maxAttempts: app.Config.Settlement.JobMaxAttempts,
	}
}

func NewWorker(wg *sync.WaitGroup, jobs store.JobQueue, orders store.OrderStore, settler Settler, purger LockPurger) app.Service {
	if !app.Config.SettlementWorker.Enabled {
		log.Debug("[SETTLEMENT WORKER] Settlement worker disabled")
		return app.NewEmptyService(wg)
	}

	log.Debug("[SETTLEMENT WORKER] Initializing settlement worker")
	runner := NewWorkerRunner(jobs, orders, settler, purger)

	log.Info("[SETTLEMENT WORKER] Initialized settlement worker")
	return app.NewRunnerService(
		WorkerName,
		runner,
		wg,
		time.Duration(app.Config.SettlementWorker.IntervalMillis)*time.Millisecond,
	)
}
