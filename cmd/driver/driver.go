// Package driver handles driver management commands
package driver

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/taxi-ledger/cmd/root"
	"fjacquet/taxi-ledger/internal/billing"
	"fjacquet/taxi-ledger/internal/models"
)

var (
	name      string
	address   string
	phone     string
	license   string
	expiry    string
	insurer   string
	policy    string
	ownsCar   bool
	outFormat string
)

// Cmd represents the driver command
var Cmd = &cobra.Command{
	Use:   "driver",
	Short: "Manage drivers",
	Long:  `Add new drivers to the company and list their financial standing.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new driver",
	Long: `Add a new driver. The driver number is assigned automatically and the
balance due starts at zero.`,
	RunE: addFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List drivers with balances and payment totals",
	RunE:  listFunc,
}

func init() {
	addCmd.Flags().StringVarP(&name, "name", "n", "", "Driver name")
	addCmd.Flags().StringVarP(&address, "address", "a", "", "Street address")
	addCmd.Flags().StringVarP(&phone, "phone", "p", "", "Phone number (10 digits)")
	addCmd.Flags().StringVarP(&license, "license", "l", "", "Driver's license number")
	addCmd.Flags().StringVarP(&expiry, "expiry", "e", "", "License expiry date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&insurer, "insurer", "i", "", "Insurance company name")
	addCmd.Flags().StringVarP(&policy, "policy", "c", "", "Insurance policy number")
	addCmd.Flags().BoolVarP(&ownsCar, "owns-car", "o", false, "Driver owns their car")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("address")
	addCmd.MarkFlagRequired("phone")
	addCmd.MarkFlagRequired("license")
	addCmd.MarkFlagRequired("expiry")
	addCmd.MarkFlagRequired("insurer")
	addCmd.MarkFlagRequired("policy")

	listCmd.Flags().StringVarP(&outFormat, "format", "f", "text", "Output format (text, json or yaml)")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
}

func addFunc(cmd *cobra.Command, args []string) error {
	expiryDate, err := models.ParseDate(expiry)
	if err != nil {
		return fmt.Errorf("invalid expiry date: %w", err)
	}

	rec, err := root.AppContainer.Engine().AddDriver(billing.NewDriver{
		Name:             name,
		Address:          address,
		Phone:            phone,
		LicenseNumber:    license,
		LicenseExpiry:    expiryDate,
		InsuranceCompany: insurer,
		PolicyNumber:     policy,
		OwnsCar:          ownsCar,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Driver %d (%s) added.\n", rec.DriverNumber, rec.Name)
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
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
