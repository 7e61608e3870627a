// Package report handles the reporting commands
package report

import (
	"github.com/spf13/cobra"

	"fjacquet/taxi-ledger/cmd/root"
)

var outFormat string

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate company reports",
	Long:  `Generate the company profit listing or the per-driver financial listing.`,
}

var profitCmd = &cobra.Command{
	Use:   "profit",
	Short: "Company profit listing (revenue minus expenses)",
	RunE:  profitFunc,
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "Per-driver financial listing",
	RunE:  driversFunc,
}

func init() {
	Cmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "text", "Output format (text, json or yaml)")
	Cmd.AddCommand(profitCmd)
	Cmd.AddCommand(driversCmd)
}

func profitFunc(cmd *cobra.Command, args []string) error {
	reports := root.AppContainer.Reports()

	listing, err := reports.Profit()
	if err != nil {
		return err
	}
	out, err := reports.RenderProfit(listing, outFormat)
	if err != nil {
		return err
	}

	cmd.OutOrStdout().Write(out)
	return nil
}

func driversFunc(cmd *cobra.Command, args []string) error {
	reports := root.AppContainer.Reports()

	listing, err := reports.Drivers()
	if err != nil {
		return err
	}
	out, err := reports.RenderDrivers(listing, outFormat)
	if err != nil {
		return err
	}

	cmd.OutOrStdout().Write(out)
	return nil
}
