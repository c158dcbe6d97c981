package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/common"
	"github.com/anish-ck/oruva-settlement/eth"
	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/payments"
	"github.com/anish-ck/oruva-settlement/reconcile"
	"github.com/anish-ck/oruva-settlement/settlement"
	"github.com/anish-ck/oruva-settlement/store"
	"github.com/anish-ck/oruva-settlement/vault"
)

type vaultReader interface {
	Snapshot(ctx context.Context, address string) (models.VaultSnapshot, error)
}

// opsContext holds what the commands share. Fields set before open are kept, which is how tests inject stores.
type opsContext struct {
	configPath string
	envPath    string
	asJSON     bool
	out        io.Writer

	orders     store.OrderStore
	reconcile  reconcile.Reconciler
	vault      vaultReader
	signer     common.Signer
	gateway    eth.ChainGateway
	closeStore func()
	opened     bool
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func (x *opsContext) open(ctx context.Context) error {
	if x.orders != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log.SetOutput(os.Stderr)
	app.InitConfig(absPath(x.configPath), absPath(x.envPath))
	app.InitLogger()
	app.InitDB()
	x.opened = true

	orders, closeStore, err := store.OpenOrderStore(ctx)
	if err != nil {
		return err
	}
	x.orders = orders
	x.closeStore = closeStore
	return nil
}

func (x *opsContext) chain() (eth.ChainGateway, error) {
	if x.gateway != nil {
		return x.gateway, nil
	}
	signer, err := app.CreateEthereumSigner()
	if err != nil {
		return nil, err
	}
	x.signer = signer
	x.gateway = eth.NewGateway(signer)
	return x.gateway, nil
}

func (x *opsContext) reconciler() (reconcile.Reconciler, error) {
	if x.reconcile != nil {
		return x.reconcile, nil
	}
	gateway, err := x.chain()
	if err != nil {
		return nil, err
	}
	executor := settlement.NewExecutor(x.orders, gateway, app.DB)
	x.reconcile = reconcile.NewService(x.orders, payments.NewClient(), executor)
	return x.reconcile, nil
}

func (x *opsContext) vaults() (vaultReader, error) {
	if x.vault != nil {
		return x.vault, nil
	}
	gateway, err := x.chain()
	if err != nil {
		return nil, err
	}
	x.vault = vault.NewService(gateway)
	return x.vault, nil
}

func (x *opsContext) close() {
	if x.closeStore != nil {
		x.closeStore()
	}
	if x.signer != nil {
		x.signer.Destroy()
	}
	if x.opened && app.DB != nil {
		if err := app.DB.Disconnect(); err != nil {
			log.Warn("[OPS] Error disconnecting database: ", err)
		}
	}
}
