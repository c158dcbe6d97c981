package vault

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/anish-ck/oruva-settlement/models"
)

var (
	ErrExceedsBorrowCapacity = errors.New("amount exceeds borrow capacity")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUnknownAction         = errors.New("unknown vault action")
)

var (
	bpsDenominator = decimal.NewFromInt(10000)
	hundred        = decimal.NewFromInt(100)
)

// Evaluate derives a vault's health from raw collateral and debt. A vault without debt is always healthy.
func Evaluate(collateral decimal.Decimal, debt decimal.Decimal, price decimal.Decimal, minimumRatioBps int64) models.VaultSnapshot {
	value := collateral.Mul(price)
	minimum := decimal.NewFromInt(minimumRatioBps)

	snapshot := models.VaultSnapshot{
		Collateral:          collateral,
		Debt:                debt,
		PriceFiat:           price,
		CollateralValueFiat: value,
		MinimumRatioBps:     minimumRatioBps,
		MaxBorrowable:       MaxBorrowable(value, minimumRatioBps, debt),
	}

	if !debt.IsPositive() {
		snapshot.RatioInfinite = true
		snapshot.IsHealthy = true
		return snapshot
	}

	ratio := value.Mul(hundred).Div(debt).Round(2)
	snapshot.RatioPercent = &ratio
	// compared in integers so rounding never flips the boundary
	snapshot.IsHealthy = value.Mul(bpsDenominator).GreaterThanOrEqual(debt.Mul(minimum))
	return snapshot
}

// MaxBorrowable is collateralValue × 10000 / minimumRatioBps − debt, floored at zero.
func MaxBorrowable(collateralValue decimal.Decimal, minimumRatioBps int64, debt decimal.Decimal) decimal.Decimal {
	if minimumRatioBps <= 0 {
		return decimal.Zero
	}
	capacity := collateralValue.Mul(bpsDenominator).Div(decimal.NewFromInt(minimumRatioBps))
	remaining := capacity.Sub(debt)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Preflight rejects a borrow or buy that would leave the vault under the minimum ratio.
func Preflight(snapshot models.VaultSnapshot, action models.VaultAction, amount decimal.Decimal) error {
	if !isKnownAction(action) {
		return ErrUnknownAction
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(snapshot.MaxBorrowable) {
		return ErrExceedsBorrowCapacity
	}
	return nil
}

func parseAmount(amount string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil || !parsed.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return parsed, nil
}

func isKnownAction(action models.VaultAction) bool {
	return action == models.VaultActionBorrow || action == models.VaultActionBuy
}
