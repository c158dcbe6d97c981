package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
)

// OpenOrderStore returns the configured order backend and a function that releases it.
// The mongo backend shares app.DB, which must already be initialized.
func OpenOrderStore(ctx context.Context) (OrderStore, func(), error) {
	switch app.Config.OrderStore.Driver {
	case app.OrderStorePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		pool, err := ConnectPostgres(connectCtx, app.Config.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		orders := NewPostgresOrderStore(pool)
		if err := orders.Migrate(connectCtx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("[STORE] Using postgres order store")
		return orders, orders.Close, nil
	default:
		log.Info("[STORE] Using mongodb order store")
		return NewMongoOrderStore(app.DB), func() {}, nil
	}
}
