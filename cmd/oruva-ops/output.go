package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/anish-ck/oruva-settlement/models"
)

func (x *opsContext) printJSON(v interface{}) error {
	encoder := json.NewEncoder(x.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outcome(order models.Order) string {
	switch order.Status {
	case models.OrderStatusCompleted:
		if order.MintResult != nil {
			return order.MintResult.TransactionHash
		}
	case models.OrderStatusMintFailed:
		return fmt.Sprintf("[%s] %s", order.FailureKind, order.FailureReason)
	default:
		if order.SubmittedTxHash != "" {
			return "submitted " + order.SubmittedTxHash
		}
	}
	return "-"
}

func (x *opsContext) printOrders(orders []models.Order) error {
	if x.asJSON {
		if orders == nil {
			orders = []models.Order{}
		}
		return x.printJSON(orders)
	}
	if len(orders) == 0 {
		fmt.Fprintln(x.out, "No orders")
		return nil
	}

	w := tabwriter.NewWriter(x.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER ID\tWALLET\tAMOUNT\tSTATUS\tCREATED\tOUTCOME")
	for _, order := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			order.OrderID,
			order.WalletAddress,
			order.RequestedAmount.String(),
			order.Status,
			order.CreatedAt.Format(time.RFC3339),
			outcome(order),
		)
	}
	return w.Flush()
}

func (x *opsContext) printOrder(order *models.Order) error {
	if x.asJSON {
		return x.printJSON(order)
	}

	w := tabwriter.NewWriter(x.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Order:\t%s\n", order.OrderID)
	fmt.Fprintf(w, "Wallet:\t%s\n", order.WalletAddress)
	fmt.Fprintf(w, "Amount:\t%s\n", order.RequestedAmount.String())
	fmt.Fprintf(w, "Status:\t%s\n", order.Status)
	fmt.Fprintf(w, "Reference:\t%s\n", order.PaymentReference)
	fmt.Fprintf(w, "Created:\t%s\n", order.CreatedAt.Format(time.RFC3339))
	if order.SubmittedTxHash != "" {
		fmt.Fprintf(w, "Submitted tx:\t%s\n", order.SubmittedTxHash)
	}
	if order.MintResult != nil {
		fmt.Fprintf(w, "Mint tx:\t%s\n", order.MintResult.TransactionHash)
		fmt.Fprintf(w, "Block:\t%d\n", order.MintResult.BlockNumber)
		fmt.Fprintf(w, "Minted:\t%s\n", order.MintResult.AmountMinted.String())
		fmt.Fprintf(w, "New balance:\t%s\n", order.MintResult.NewBalance.String())
	}
	if order.Status == models.OrderStatusMintFailed {
		fmt.Fprintf(w, "Failure:\t[%s] %s\n", order.FailureKind, order.FailureReason)
	}
	return w.Flush()
}

func (x *opsContext) printVault(snapshot models.VaultSnapshot) error {
	if x.asJSON {
		return x.printJSON(snapshot)
	}

	ratio := "infinite"
	if !snapshot.RatioInfinite && snapshot.RatioPercent != nil {
		ratio = snapshot.RatioPercent.String() + "%"
	}
	health := "HEALTHY"
	if !snapshot.IsHealthy {
		health = "UNDERCOLLATERALIZED"
	}

	w := tabwriter.NewWriter(x.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Vault:\t%s\n", snapshot.Address)
	fmt.Fprintf(w, "Collateral:\t%s\n", snapshot.Collateral.String())
	fmt.Fprintf(w, "Price:\t%s\n", snapshot.PriceFiat.String())
	fmt.Fprintf(w, "Value:\t%s\n", snapshot.CollateralValueFiat.String())
	fmt.Fprintf(w, "Debt:\t%s\n", snapshot.Debt.String())
	fmt.Fprintf(w, "Ratio:\t%s (minimum %d bps)\n", ratio, snapshot.MinimumRatioBps)
	fmt.Fprintf(w, "Health:\t%s\n", health)
	fmt.Fprintf(w, "Max borrowable:\t%s\n", snapshot.MaxBorrowable.String())
	if snapshot.OnChainHealthy != nil {
		fmt.Fprintf(w, "On chain:\tratio %s bps, healthy %t\n", snapshot.OnChainRatioBps, *snapshot.OnChainHealthy)
	}
	return w.Flush()
}
