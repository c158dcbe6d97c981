package app

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	lock "github.com/square/mongo-lock"

	"github.com/anish-ck/oruva-settlement/models"
)

const (
	CollectionLocks = "locks"

	// locks left behind by a crashed holder become purgeable after this many seconds
	lockTTLSecs = 300
)

var (
	DB Database

	ErrAlreadyLocked = lock.ErrAlreadyLocked
)

type Database interface {
	Connect() error
	SetupLockers() error
	SetupIndexes() error
	Disconnect() error
	InsertOne(collection string, data interface{}) error
	FindOne(collection string, filter interface{}, result interface{}) error
	FindMany(collection string, filter interface{}, result interface{}) error
	FindManySorted(collection string, filter interface{}, sort interface{}, limit int64, result interface{}) error
	FindOneAndUpdate(collection string, filter interface{}, update interface{}, result interface{}) error
	UpdateOne(collection string, filter interface{}, update interface{}) error
	UpsertOne(collection string, filter interface{}, update interface{}) error

	XLock(resourceId string) (string, error)
	SLock(resourceId string) (string, error)
	Unlock(lockId string) error
	PurgeLocks() (int, error)
}

// mongoDatabase is a wrapper around the mongo database
type mongoDatabase struct {
	db       *mongo.Database
	uri      string
	database string
	timeout  time.Duration
	host     string
	locker   *lock.Client
	purger   lock.Purger
}

func (d *mongoDatabase) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.timeout)
}

// Connect connects to the database
func (d *mongoDatabase) Connect() error {
	log.Debug("[DB] Connecting to database")
	wcMajority := writeconcern.Majority()
	wcMajority.WTimeout = d.timeout

	ctx, cancel := d.ctx()
	defer cancel()

	opts := options.Client().
		ApplyURI(d.uri).
		SetWriteConcern(wcMajority).
		SetRegistry(NewBSONRegistry())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return err
	}
	d.db = client.Database(d.database)

	log.Info("[DB] Connected to mongo database: ", d.database)
	return nil
}

// SetupLockers sets up the locker and its purger
func (d *mongoDatabase) SetupLockers() error {
	log.Debug("[DB] Setting up locker")

	ctx, cancel := d.ctx()
	defer cancel()

	locker := lock.NewClient(d.db.Collection(CollectionLocks))
	if err := locker.CreateIndexes(ctx); err != nil {
		return err
	}
	d.locker = locker
	d.purger = lock.NewPurger(locker)

	log.Info("[DB] Locker setup")
	return nil
}

func (d *mongoDatabase) lockDetails() lock.LockDetails {
	return lock.LockDetails{
		Owner: d.host,
		Host:  d.host,
		TTL:   lockTTLSecs,
	}
}

// XLock locks a resource for exclusive access
func (d *mongoDatabase) XLock(resourceId string) (string, error) {
	ctx, cancel := d.ctx()
	defer cancel()

	lockId := uuid.NewString()
	err := d.locker.XLock(ctx, resourceId, lockId, d.lockDetails())
	return lockId, err
}

// SLock locks a resource for shared access
func (d *mongoDatabase) SLock(resourceId string) (string, error) {
	ctx, cancel := d.ctx()
	defer cancel()

	lockId := uuid.NewString()
	err := d.locker.SLock(ctx, resourceId, lockId, d.lockDetails(), -1)
	return lockId, err
}

// Unlock unlocks a resource
func (d *mongoDatabase) Unlock(lockId string) error {
	ctx, cancel := d.ctx()
	defer cancel()

	_, err := d.locker.Unlock(ctx, lockId)
	return err
}

// PurgeLocks removes expired locks and returns how many were released
func (d *mongoDatabase) PurgeLocks() (int, error) {
	ctx, cancel := d.ctx()
	defer cancel()

	purged, err := d.purger.Purge(ctx)
	return len(purged), err
}

func (d *mongoDatabase) createIndex(collection string, keys bson.D, unique bool) error {
	ctx, cancel := d.ctx()
	defer cancel()

	model := mongo.IndexModel{Keys: keys}
	if unique {
		model.Options = options.Index().SetUnique(true)
	}
	_, err := d.db.Collection(collection).Indexes().CreateOne(ctx, model)
	return err
}

// SetupIndexes creates the unique and lookup indexes used by the stores
func (d *mongoDatabase) SetupIndexes() error {
	log.Debug("[DB] Setting up indexes")

	log.Debug("[DB] Setting up indexes for orders")
	if err := d.createIndex(models.CollectionOrders, bson.D{{Key: "order_id", Value: 1}}, true); err != nil {
		return err
	}
	if err := d.createIndex(models.CollectionOrders, bson.D{{Key: "payment_reference", Value: 1}}, true); err != nil {
		return err
	}
	if err := d.createIndex(models.CollectionOrders, bson.D{{Key: "wallet_address", Value: 1}, {Key: "created_at", Value: -1}}, false); err != nil {
		return err
	}
	if err := d.createIndex(models.CollectionOrders, bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: 1}}, false); err != nil {
		return err
	}
	if err := d.createIndex(models.CollectionOrders, bson.D{{Key: "status", Value: 1}, {Key: "last_reconciled_at", Value: 1}, {Key: "created_at", Value: 1}}, false); err != nil {
		return err
	}

	log.Debug("[DB] Setting up indexes for settlement jobs")
	if err := d.createIndex(models.CollectionSettlementJobs, bson.D{{Key: "event_id", Value: 1}}, true); err != nil {
		return err
	}
	if err := d.createIndex(models.CollectionSettlementJobs, bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}, false); err != nil {
		return err
	}

	log.Debug("[DB] Setting up indexes for healthchecks")
	if err := d.createIndex(models.CollectionHealthChecks, bson.D{{Key: "instance_id", Value: 1}, {Key: "hostname", Value: 1}}, true); err != nil {
		return err
	}

	log.Info("[DB] Indexes setup")
	return nil
}

// Disconnect disconnects from the database
func (d *mongoDatabase) Disconnect() error {
	log.Debug("[DB] Disconnecting from database")
	ctx, cancel := d.ctx()
	defer cancel()
	err := d.db.Client().Disconnect(ctx)
	log.Info("[DB] Disconnected from database")
	return err
}

// method for insert single value in a collection
func (d *mongoDatabase) InsertOne(collection string, data interface{}) error {
	ctx, cancel := d.ctx()
	defer cancel()
	_, err := d.db.Collection(collection).InsertOne(ctx, data)
	return err
}

// method for find single value in a collection
func (d *mongoDatabase) FindOne(collection string, filter interface{}, result interface{}) error {
	ctx, cancel := d.ctx()
	defer cancel()
	return d.db.Collection(collection).FindOne(ctx, filter).Decode(result)
}

// method for find multiple values in a collection
func (d *mongoDatabase) FindMany(collection string, filter interface{}, result interface{}) error {
	ctx, cancel := d.ctx()
	defer cancel()
	cursor, err := d.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return err
	}
	return cursor.All(ctx, result)
}

// method for find multiple values in a collection with a sort order and limit, limit <= 0 means no limit
func (d *mongoDatabase) FindManySorted(collection string, filter interface{}, sort interface{}, limit int64, result interface{}) error {
	ctx, cancel := d.ctx()
	defer cancel()

	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := d.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, result)
}

// method for atomically updating a single document and reading it back after the update
func (d *mongoDatabase) FindOneAndUpdate(collection string, filter interface{}, update interface{}, result interface{}) error {
	ctx, cancel := d.ctx()
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return d.db.Collection(collection).FindOneAndUpdate(ctx, filter, update, opts).Decode(result)
}

// method for update single value in a collection
func (d *mongoDatabase) UpdateOne(collection string, filter interface{}, update interface{}) error {
	ctx, cancel := d.ctx()
	defer cancel()
	_, err := d.db.Collection(collection).UpdateOne(ctx, filter, update)
	return err
}

// method for upsert single value in a collection
func (d *mongoDatabase) UpsertOne(collection string, filter interface{}, update interface{}) error {
	ctx, cancel := d.ctx()
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err := d.db.Collection(collection).UpdateOne(ctx, filter, update, opts)
	return err
}

// InitDB creates a new database wrapper
func InitDB() {
	hostname, _ := os.Hostname()
	DB = &mongoDatabase{
		uri:      Config.MongoDB.URI,
		database: Config.MongoDB.Database,
		timeout:  time.Duration(Config.MongoDB.TimeoutMillis) * time.Millisecond,
		host:     hostname,
	}

	err := DB.Connect()
	if err != nil {
		log.Fatal("[DB] Error connecting to database: ", err)
	}
	err = DB.SetupIndexes()
	if err != nil {
		log.Fatal("[DB] Error setting up indexes: ", err)
	}
	err = DB.SetupLockers()
	if err != nil {
		log.Fatal("[DB] Error setting up lockers: ", err)
	}
	log.Info("[DB] Database initialized")
}
