package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/models"
)

// JobQueue is the durable at-least-once queue between webhook acknowledgement and settlement.
type JobQueue interface {
	// Enqueue returns false when a job for the same event id already exists.
	Enqueue(ctx context.Context, job models.SettlementJob) (bool, error)
	FindPending(ctx context.Context, limit int64) ([]models.SettlementJob, error)
	MarkJob(ctx context.Context, eventID string, update JobUpdate) error
}

type JobUpdate struct {
	Status    string
	Attempts  int
	OrderID   string
	LastError string
}

type MongoJobQueue struct {
	db app.Database
}

var _ JobQueue = &MongoJobQueue{}

func NewMongoJobQueue(db app.Database) *MongoJobQueue {
	return &MongoJobQueue{db: db}
}

func (x *MongoJobQueue) Enqueue(ctx context.Context, job models.SettlementJob) (bool, error) {
	now := time.Now().UTC()
	job.Status = models.JobStatusQueued
	job.CreatedAt = now
	job.UpdatedAt = now

	err := x.db.InsertOne(models.CollectionSettlementJobs, job)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (x *MongoJobQueue) FindPending(ctx context.Context, limit int64) ([]models.SettlementJob, error) {
	jobs := []models.SettlementJob{}
	err := x.db.FindManySorted(
		models.CollectionSettlementJobs,
		bson.M{"status": models.JobStatusQueued},
		bson.D{{Key: "created_at", Value: 1}},
		limit,
		&jobs,
	)
	return jobs, err
}

func (x *MongoJobQueue) MarkJob(ctx context.Context, eventID string, update JobUpdate) error {
	filter := bson.M{
		"event_id": eventID,
		"status":   models.JobStatusQueued,
	}
	set := bson.M{
		"status":     update.Status,
		"attempts":   update.Attempts,
		"last_error": update.LastError,
		"updated_at": time.Now().UTC(),
	}
	if update.OrderID != "" {
		set["order_id"] = update.OrderID
	}
	return x.db.UpdateOne(models.CollectionSettlementJobs, filter, bson.M{"$set": set})
}

// MemoryJobQueue is a process-local queue for tests.
type MemoryJobQueue struct {
	mu   sync.Mutex
	jobs map[string]*models.SettlementJob
}

var _ JobQueue = &MemoryJobQueue{}

func NewMemoryJobQueue() *MemoryJobQueue {
	return &MemoryJobQueue{jobs: map[string]*models.SettlementJob{}}
}

func (x *MemoryJobQueue) Enqueue(ctx context.Context, job models.SettlementJob) (bool, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.jobs[job.EventID]; ok {
		return false, nil
	}
	now := time.Now().UTC()
	job.Status = models.JobStatusQueued
	job.CreatedAt = now
	job.UpdatedAt = now
	x.jobs[job.EventID] = &job
	return true, nil
}

func (x *MemoryJobQueue) FindPending(ctx context.Context, limit int64) ([]models.SettlementJob, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	var jobs []models.SettlementJob
	for _, job := range x.jobs {
		if job.Status == models.JobStatusQueued {
			jobs = append(jobs, *job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.Before(jobs[j].CreatedAt) })
	if limit > 0 && int64(len(jobs)) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (x *MemoryJobQueue) MarkJob(ctx context.Context, eventID string, update JobUpdate) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	job, ok := x.jobs[eventID]
	if !ok {
		return errors.New("job not found")
	}
	if job.Status != models.JobStatusQueued {
		return nil
	}
	job.Status = update.Status
	job.Attempts = update.Attempts
	job.LastError = update.LastError
	if update.OrderID != "" {
		job.OrderID = update.OrderID
	}
	job.UpdatedAt = time.Now().UTC()
	return nil
}

// Job returns a copy of the job for an event id.
func (x *MemoryJobQueue) Job(eventID string) (models.SettlementJob, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	job, ok := x.jobs[eventID]
	if !ok {
		return models.SettlementJob{}, false
	}
	return *job, true
}
