package webhook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/store"
)

type Outcome string

// results of handling one delivery
const (
	OutcomeRejected  Outcome = "rejected"
	OutcomeMalformed Outcome = "malformed"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeQueued    Outcome = "queued"
	OutcomeDuplicate Outcome = "duplicate"
)

// Handler verifies and queues gateway notifications. It never settles inline.
type Handler struct {
	secret string
	jobs   store.JobQueue
}

func NewHandler(secret string, jobs store.JobQueue) *Handler {
	return &Handler{secret: secret, jobs: jobs}
}

// EventID identifies a delivery by the SHA-256 of its raw body so redeliveries collapse.
func EventID(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Handle only returns an error when a completed payment could not be queued.
func (x *Handler) Handle(ctx context.Context, raw []byte, headers http.Header) (Outcome, error) {
	err := VerifySignature(x.secret, headers.Get(HeaderTimestamp), raw, headers.Get(HeaderSignature))
	if err != nil {
		log.Warn("[WEBHOOK] Rejected delivery: ", err)
		return OutcomeRejected, nil
	}

	event, err := ParsePayload(raw)
	if err != nil {
		log.Warn("[WEBHOOK] Ignoring delivery: ", err)
		return OutcomeMalformed, nil
	}

	logger := log.WithFields(log.Fields{
		"event_type": event.EventType,
		"reference":  event.OrderReference,
		"status":     event.PaymentStatus,
	})

	if !event.IsCompletedPayment() {
		logger.Debug("[WEBHOOK] Ignoring event")
		return OutcomeIgnored, nil
	}

	job := models.SettlementJob{
		EventID:        EventID(raw),
		EventType:      event.EventType,
		OrderReference: event.OrderReference,
		PaidAmount:     event.PaidAmount,
		PaymentStatus:  event.PaymentStatus,
	}
	queued, err := x.jobs.Enqueue(ctx, job)
	if err != nil {
		logger.Error("[WEBHOOK] Error queueing settlement: ", err)
		return "", err
	}
	if !queued {
		logger.Debug("[WEBHOOK] Duplicate delivery")
		return OutcomeDuplicate, nil
	}

	logger.WithField("amount", event.PaidAmount.String()).Info("[WEBHOOK] Settlement queued")
	return OutcomeQueued, nil
}
