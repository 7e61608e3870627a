// Package payment handles driver payment recording commands
package payment

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/taxi-ledger/cmd/root"
)

var (
	driver int
	amount string
)

// Cmd represents the payment command
var Cmd = &cobra.Command{
	Use:   "payment",
	Short: "Record a payment from a driver",
	Long: `Record a payment received from a driver. The amount is subtracted from
the driver's balance due and appended to the payment log.`,
	RunE: paymentFunc,
}

func init() {
	Cmd.Flags().IntVarP(&driver, "driver", "d", 0, "Driver number")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Payment amount")
	Cmd.MarkFlagRequired("driver")
	Cmd.MarkFlagRequired("amount")
}

func paymentFunc(cmd *cobra.Command, args []string) error {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid payment amount %q: %w", amount, err)
	}

	receipt, err := root.AppContainer.Engine().RecordPayment(driver, amt)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Payment of %s recorded for driver %d (%s). New balance due: %s.\n",
		receipt.Payment.Amount.StringFixed(2), driver, receipt.DriverName, receipt.NewBalance.StringFixed(2))
	return nil
}
