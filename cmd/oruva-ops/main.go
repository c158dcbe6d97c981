package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	x := &opsContext{out: os.Stdout}
	err := newRootCmd(x).Execute()
	x.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(x *opsContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "oruva-ops",
		Short:         "Operator tools for the oruva settlement backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return x.open(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&x.configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&x.envPath, "env", "e", "", "path to env file")
	rootCmd.PersistentFlags().BoolVarP(&x.asJSON, "json", "j", false, "output as JSON")

	rootCmd.AddCommand(orderCmd(x))
	rootCmd.AddCommand(failedCmd(x))
	rootCmd.AddCommand(reconcileCmd(x))
	rootCmd.AddCommand(vaultCmd(x))

	return rootCmd
}

func orderCmd(x *opsContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect orders",
	}
	cmd.AddCommand(orderGetCmd(x))
	cmd.AddCommand(orderListCmd(x))
	return cmd
}

func orderGetCmd(x *opsContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get [orderId]",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := x.orders.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return x.printOrder(order)
		},
	}
}

func orderListCmd(x *opsContext) *cobra.Command {
	var wallet string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a wallet's orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := x.orders.ListByWallet(cmd.Context(), wallet)
			if err != nil {
				return err
			}
			return x.printOrders(orders)
		},
	}
	cmd.Flags().StringVarP(&wallet, "wallet", "w", "", "wallet address")
	cmd.MarkFlagRequired("wallet")
	return cmd
}

func failedCmd(x *opsContext) *cobra.Command {
	var limit int64
	cmd := &cobra.Command{
		Use:   "failed",
		Short: "List MINT_FAILED orders for review, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := x.orders.ListFailed(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return x.printOrders(orders)
		},
	}
	cmd.Flags().Int64VarP(&limit, "limit", "n", 50, "maximum results")
	return cmd
}

func reconcileCmd(x *opsContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [orderId]",
		Short: "Check the payment with the gateway and settle the order if it was paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reconciler, err := x.reconciler()
			if err != nil {
				return err
			}
			order, err := reconciler.Reconcile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return x.printOrder(order)
		},
	}
}

func vaultCmd(x *opsContext) *cobra.Command {
	return &cobra.Command{
		Use:   "vault [address]",
		Short: "Evaluate a vault's collateral health",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaults, err := x.vaults()
			if err != nil {
				return err
			}
			snapshot, err := vaults.Snapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return x.printVault(snapshot)
		},
	}
}
