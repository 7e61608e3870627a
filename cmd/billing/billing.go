// Package billing handles the monthly stand-fee billing command
package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/taxi-ledger/cmd/root"
	"fjacquet/taxi-ledger/internal/billing"
	"fjacquet/taxi-ledger/internal/dateutils"
)

var (
	asOf  string
	force bool
)

// Cmd represents the billing command
var Cmd = &cobra.Command{
	Use:   "billing",
	Short: "Run the monthly stand-fee billing",
	Long: `Charge the monthly stand fee: one revenue transaction is recorded and the
fee is added to every driver's balance due. The run is idempotent per
calendar month; use --force to bill an already-billed month again.`,
	RunE: billingFunc,
}

func init() {
	Cmd.Flags().StringVarP(&asOf, "as-of", "t", "", "Billing date (YYYY-MM-DD, default today)")
	Cmd.Flags().BoolVarP(&force, "force", "f", false, "Bill even if this month was already billed")
}

func billingFunc(cmd *cobra.Command, args []string) error {
	engine := root.AppContainer.Engine()

	if _, err := engine.Bootstrap(); err != nil {
		return err
	}

	billingDate := time.Now()
	if asOf != "" {
		parsed, err := dateutils.ParseISODate(asOf)
		if err != nil {
			return fmt.Errorf("invalid billing date: %w", err)
		}
		billingDate = parsed
	}

	run, err := engine.BillStandFees(billingDate, force)
	if errors.Is(err, billing.ErrAlreadyBilled) {
		fmt.Fprintf(cmd.OutOrStdout(), "Stand fees for %s already billed; use --force to bill again.\n",
			dateutils.MonthKey(billingDate))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stand fee of %s billed for %s: transaction %d, %d driver(s) charged.\n",
		run.Transaction.Amount.StringFixed(2), run.Month, run.Transaction.TransactionNumber, run.DriversCharged)
	return nil
}
