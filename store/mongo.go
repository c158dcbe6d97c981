package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/models"
)

// MongoOrderStore keeps orders in the orders collection through app.DB.
type MongoOrderStore struct {
	db app.Database
}

var _ OrderStore = &MongoOrderStore{}

func NewMongoOrderStore(db app.Database) *MongoOrderStore {
	return &MongoOrderStore{db: db}
}

func (x *MongoOrderStore) Create(ctx context.Context, wallet string, amount decimal.Decimal, paymentReference string, customer models.Customer) (*models.Order, error) {
	order, err := newOrder(wallet, amount, paymentReference, customer)
	if err != nil {
		return nil, err
	}

	err = x.db.InsertOne(models.CollectionOrders, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateOrder
		}
		return nil, err
	}

	log.WithField("order_id", order.OrderID).Debug("[STORE] Order created")
	return order, nil
}

func (x *MongoOrderStore) findOne(filter bson.M) (*models.Order, error) {
	var order models.Order
	err := x.db.FindOne(models.CollectionOrders, filter, &order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (x *MongoOrderStore) Get(ctx context.Context, orderID string) (*models.Order, error) {
	return x.findOne(bson.M{"order_id": orderID})
}

func (x *MongoOrderStore) GetByPaymentReference(ctx context.Context, paymentReference string) (*models.Order, error) {
	return x.findOne(bson.M{"payment_reference": paymentReference})
}

// transition applies update only while the order is still PENDING.
func (x *MongoOrderStore) transition(orderID string, set bson.M) (*models.Order, error) {
	filter := bson.M{
		"order_id": orderID,
		"status":   models.OrderStatusPending,
	}
	set["updated_at"] = time.Now().UTC()
	update := bson.M{"$set": set}

	var order models.Order
	err := x.db.FindOneAndUpdate(models.CollectionOrders, filter, update, &order)
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if _, getErr := x.Get(context.Background(), orderID); getErr != nil {
		return nil, getErr
	}
	return nil, ErrInvalidTransition
}

func (x *MongoOrderStore) SetCheckoutURL(ctx context.Context, orderID string, checkoutURL string) error {
	_, err := x.transition(orderID, bson.M{"checkout_url": checkoutURL})
	return err
}

func (x *MongoOrderStore) RecordSubmission(ctx context.Context, orderID string, txHash string) error {
	_, err := x.transition(orderID, bson.M{"submitted_tx_hash": txHash})
	return err
}

func (x *MongoOrderStore) MarkCompleted(ctx context.Context, orderID string, result models.MintResult) (*models.Order, error) {
	now := time.Now().UTC()
	return x.transition(orderID, bson.M{
		"status":       models.OrderStatusCompleted,
		"mint_result":  result,
		"completed_at": now,
	})
}

func (x *MongoOrderStore) MarkFailed(ctx context.Context, orderID string, reason string, kind models.FailureKind) (*models.Order, error) {
	now := time.Now().UTC()
	return x.transition(orderID, bson.M{
		"status":         models.OrderStatusMintFailed,
		"failure_reason": truncate(reason, maxFailureReasonLength),
		"failure_kind":   kind,
		"failed_at":      now,
	})
}

func (x *MongoOrderStore) MarkReconciled(ctx context.Context, orderID string, at time.Time) error {
	_, err := x.transition(orderID, bson.M{"last_reconciled_at": at.UTC()})
	return err
}

func (x *MongoOrderStore) findMany(filter bson.M, sort bson.D, limit int64) ([]models.Order, error) {
	orders := []models.Order{}
	err := x.db.FindManySorted(models.CollectionOrders, filter, sort, limit, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (x *MongoOrderStore) ListByWallet(ctx context.Context, wallet string) ([]models.Order, error) {
	normalized, err := normalizeWallet(wallet)
	if err != nil {
		return nil, err
	}
	return x.findMany(
		bson.M{"wallet_address": normalized},
		bson.D{{Key: "created_at", Value: -1}},
		0,
	)
}

func (x *MongoOrderStore) ListPending(ctx context.Context, olderThan time.Time, limit int64) ([]models.Order, error) {
	return x.findMany(
		bson.M{"status": models.OrderStatusPending, "created_at": bson.M{"$lt": olderThan}},
		bson.D{{Key: "last_reconciled_at", Value: 1}, {Key: "created_at", Value: 1}},
		limit,
	)
}

func (x *MongoOrderStore) ListFailed(ctx context.Context, limit int64) ([]models.Order, error) {
	return x.findMany(
		bson.M{"status": models.OrderStatusMintFailed},
		bson.D{{Key: "failed_at", Value: -1}},
		limit,
	)
}
