package models

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// VaultInfo is the raw getVaultInfo read, in token base units.
type VaultInfo struct {
	Collateral          *big.Int
	Debt                *big.Int
	CollateralValueFiat *big.Int
	RatioBps            *big.Int
	IsHealthy           bool
}

type VaultSnapshot struct {
	Address             string           `json:"address,omitempty"`
	Collateral          decimal.Decimal  `json:"collateral"`
	Debt                decimal.Decimal  `json:"debt"`
	PriceFiat           decimal.Decimal  `json:"priceFiat"`
	CollateralValueFiat decimal.Decimal  `json:"collateralValueFiat"`
	RatioPercent        *decimal.Decimal `json:"ratioPercent"`
	RatioInfinite       bool             `json:"ratioInfinite"`
	MinimumRatioBps     int64            `json:"minimumRatioBps"`
	IsHealthy           bool             `json:"isHealthy"`
	MaxBorrowable       decimal.Decimal  `json:"maxBorrowable"`
	OnChainRatioBps     string           `json:"onChainRatioBps,omitempty"`
	OnChainHealthy      *bool            `json:"onChainHealthy,omitempty"`
}

type VaultAction string

const (
	VaultActionBorrow VaultAction = "borrow"
	VaultActionBuy    VaultAction = "buy"
)
