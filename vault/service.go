package vault

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/common"
	"github.com/anish-ck/oruva-settlement/eth"
	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/store"
)

type Service struct {
	gateway            eth.ChainGateway
	prices             PriceSource
	minimumRatioBps    int64
	collateralDecimals int32
	tokenDecimals      int32
}

// Snapshot reads the vault from chain and evaluates it against the current collateral price.
func (x *Service) Snapshot(ctx context.Context, address string) (models.VaultSnapshot, error) {
	normalized, ok := common.NormalizeAddress(address)
	if !ok {
		return models.VaultSnapshot{}, store.ErrInvalidAddress
	}
	logger := log.WithField("vault", normalized)

	info, err := x.gateway.GetVaultInfo(ctx, normalized)
	if err != nil {
		logger.WithError(err).Warn("[VAULT] Error reading vault info")
		return models.VaultSnapshot{}, fmt.Errorf("read vault: %w", err)
	}

	price, err := x.prices.Price(ctx)
	if err != nil {
		logger.WithError(err).Warn("[VAULT] Error reading collateral price")
		return models.VaultSnapshot{}, fmt.Errorf("read price: %w", err)
	}

	collateral := common.FromBaseUnits(info.Collateral, x.collateralDecimals)
	debt := common.FromBaseUnits(info.Debt, x.tokenDecimals)

	snapshot := Evaluate(collateral, debt, price, x.minimumRatioBps)
	snapshot.Address = normalized
	if info.RatioBps != nil {
		snapshot.OnChainRatioBps = info.RatioBps.String()
	}
	onChainHealthy := info.IsHealthy
	snapshot.OnChainHealthy = &onChainHealthy

	if onChainHealthy != snapshot.IsHealthy {
		logger.Warn("[VAULT] Local health disagrees with chain, price source may be stale")
	}
	return snapshot, nil
}

// Preflight evaluates the vault and checks a pending borrow or buy against it.
func (x *Service) Preflight(ctx context.Context, address string, action models.VaultAction, amount string) (models.VaultSnapshot, error) {
	if !isKnownAction(action) {
		return models.VaultSnapshot{}, ErrUnknownAction
	}
	parsed, err := parseAmount(amount)
	if err != nil {
		return models.VaultSnapshot{}, err
	}
	snapshot, err := x.Snapshot(ctx, address)
	if err != nil {
		return models.VaultSnapshot{}, err
	}
	return snapshot, Preflight(snapshot, action, parsed)
}

func NewServiceWith(gateway eth.ChainGateway, prices PriceSource, minimumRatioBps int64, collateralDecimals int32, tokenDecimals int32) *Service {
	return &Service{
		gateway:            gateway,
		prices:             prices,
		minimumRatioBps:    minimumRatioBps,
		collateralDecimals: collateralDecimals,
		tokenDecimals:      tokenDecimals,
	}
}

func NewService(gateway eth.ChainGateway) *Service {
	return NewServiceWith(
		gateway,
		NewPriceSource(),
		app.Config.Vault.MinimumRatioBps,
		app.Config.Ethereum.CollateralDecimals,
		app.Config.Ethereum.TokenDecimals,
	)
}
