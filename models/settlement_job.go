package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionSettlementJobs = "settlement_jobs"
)

// types of settlement job status
const (
	JobStatusQueued    = "queued"
	JobStatusDone      = "done"
	JobStatusDiscarded = "discarded"
	JobStatusFailed    = "failed"
)

type SettlementJob struct {
	Id             *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventID        string              `bson:"event_id" json:"eventId"`
	EventType      string              `bson:"event_type" json:"eventType"`
	OrderReference string              `bson:"order_reference" json:"orderReference"`
	PaidAmount     decimal.Decimal     `bson:"paid_amount" json:"paidAmount"`
	PaymentStatus  string              `bson:"payment_status" json:"paymentStatus"`
	Status         string              `bson:"status" json:"status"`
	Attempts       int                 `bson:"attempts" json:"attempts"`
	LastError      string              `bson:"last_error,omitempty" json:"lastError,omitempty"`
	OrderID        string              `bson:"order_id,omitempty" json:"orderId,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updatedAt"`
}
